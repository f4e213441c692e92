package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memohai/agentcore/internal/logger"
	"github.com/memohai/agentcore/internal/message"
)

func newActionsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "actions <responses.json>",
		Short: "Report whether any agent response in the file requests an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var responses []message.Memory
			if err := json.Unmarshal(raw, &responses); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			ctx := logger.WithContext(cmd.Context(), d.Logger)
			fmt.Fprintln(cmd.OutOrStdout(), message.HasActions(ctx, responses))
			return nil
		},
	}
}
