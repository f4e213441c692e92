package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/memohai/agentcore/internal/agentfs"
	"github.com/memohai/agentcore/internal/retry"
)

func newPathsCmd(opts *cliOptions) *cobra.Command {
	var ensure bool
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the agent home directory layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			if ensure {
				if err := d.Layout.EnsureHome(); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			for _, e := range d.Layout.Entries() {
				fmt.Fprintf(out, "%-15s %s\n", e.Name, e.Path)
			}
			fmt.Fprintf(out, "%-15s %t\n", "monitoring", d.Config.Monitoring.Enabled)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ensure, "ensure", false, "Create the home directory if missing")
	return cmd
}

func newGitStateCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-state",
		Short: "Inspect or record the checked out agent code revision",
	}

	var state agentfs.GitState
	bindFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&state.RepositoryURL, "repo", "", "Repository URL")
		c.Flags().StringVar(&state.Branch, "branch", "", "Branch name")
		c.Flags().StringVar(&state.Commit, "commit", "", "Commit hash")
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the recorded git state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			current, err := d.Layout.LoadGitState()
			if err != nil {
				return err
			}
			return printJSON(cmd, current)
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Report whether the recorded git state differs from the given one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			current, err := d.Layout.LoadGitState()
			switch {
			case errors.Is(err, fs.ErrNotExist):
				fmt.Fprintln(cmd.OutOrStdout(), "changed")
				return nil
			case err != nil:
				return err
			}
			if current.Equal(state) {
				fmt.Fprintln(cmd.OutOrStdout(), "unchanged")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "changed")
			}
			return nil
		},
	}
	bindFlags(check)

	save := &cobra.Command{
		Use:   "save",
		Short: "Record the given git state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			err = retry.Run(cmd.Context(), func(context.Context) error {
				return d.Layout.SaveGitState(state)
			}, retry.WithPolicy(d.Retry), retry.WithLogger(d.Logger.With(slog.String("file", d.Layout.GitStateFile()))))
			if err != nil {
				return err
			}
			d.Logger.Info("git state saved", "commit", state.Commit, "file", d.Layout.GitStateFile())
			return nil
		},
	}
	bindFlags(save)

	cmd.AddCommand(show, check, save)
	return cmd
}
