package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/memohai/agentcore/cmd/agentcore/modules"
	"github.com/memohai/agentcore/internal/agentfs"
	"github.com/memohai/agentcore/internal/config"
	"github.com/memohai/agentcore/internal/retry"
	"github.com/memohai/agentcore/internal/signature"
	"github.com/memohai/agentcore/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath string
}

// deps is everything a command may need from the fx graph.
type deps struct {
	fx.In

	Config   config.Config
	Logger   *slog.Logger
	Layout   agentfs.Layout
	Verifier *signature.Verifier
	Retry    retry.Policy
}

func (o *cliOptions) resolve() (deps, error) {
	var d deps
	app := fx.New(
		fx.NopLogger,
		fx.Supply(modules.ConfigPath(o.configPath)),
		modules.InfraModule,
		modules.DomainModule,
		fx.Invoke(func(in deps) { d = in }),
	)
	if err := app.Err(); err != nil {
		return deps{}, err
	}
	return d, nil
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "agentcore",
		Short:         "Channel encoding, signature verification and agent state tooling",
		Version:       version.GetInfo(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.toml (default $CONFIG_PATH or ./config.toml)")

	root.AddCommand(
		newChannelCmd(),
		newVerifyCmd(opts),
		newPathsCmd(opts),
		newGitStateCmd(opts),
		newActionsCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agentcore %s\n", version.GetInfo())
		},
	}
}
