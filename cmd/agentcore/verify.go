package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memohai/agentcore/internal/agentfs"
	"github.com/memohai/agentcore/internal/logger"
	"github.com/memohai/agentcore/internal/retry"
)

var errInvalidSignature = errors.New("signature is not valid")

func newVerifyCmd(opts *cliOptions) *cobra.Command {
	var publicKey string
	cmd := &cobra.Command{
		Use:   "verify <message> <signature-hex>",
		Short: "Verify an ECDSA signature over a message",
		Long: "Verify a hex DER ECDSA signature over sha256(message). The public key is taken\n" +
			"from --pubkey or, when omitted, from the agent keypair file.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.resolve()
			if err != nil {
				return err
			}
			ctx := logger.WithContext(cmd.Context(), d.Logger)

			key := strings.TrimSpace(publicKey)
			if key == "" {
				key, err = loadPublicKey(ctx, d.Layout, d.Retry)
				if err != nil {
					return err
				}
			}
			if !d.Verifier.Verify(args[0], key, args[1]) {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errInvalidSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&publicKey, "pubkey", "", "Hex public key (uncompressed or compressed)")
	return cmd
}

// loadPublicKey waits for the keypair file, which the provisioning process may
// still be writing. Only a missing file is retried.
func loadPublicKey(ctx context.Context, layout agentfs.Layout, policy retry.Policy) (string, error) {
	return retry.Do(ctx, func(context.Context) (string, error) {
		key, err := layout.LoadPublicKey()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", retry.Permanent(err)
		}
		return key, err
	}, retry.WithPolicy(policy), retry.WithLogger(logger.FromContext(ctx).With(slog.String("file", layout.KeyPairFile()))))
}
