package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/memohai/agentcore/internal/channel"
	"github.com/memohai/agentcore/internal/identity"
)

func newChannelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "channel",
		Short: "Encode, decode and describe chat channel strings",
	}
	cmd.AddCommand(newChannelEncodeCmd(), newChannelDecodeCmd(), newChannelSchemaCmd())
	return cmd
}

func newChannelEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a channel to its wire string",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "coin <chain-id> <address>",
			Short: "Encode a coin channel",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				chainID, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("%w: chain id %q: %w", channel.ErrInvalidChannel, args[0], err)
				}
				c, err := channel.NewCoinChannel(chainID, args[1])
				if err != nil {
					return err
				}
				return printWire(cmd, c)
			},
		},
		&cobra.Command{
			Use:   "dm <identity> <identity>",
			Short: "Encode a direct-message channel; argument order does not matter",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := identity.Parse(args[0])
				if err != nil {
					return err
				}
				b, err := identity.Parse(args[1])
				if err != nil {
					return err
				}
				c, err := channel.NewDMChannel(a, b)
				if err != nil {
					return err
				}
				return printWire(cmd, c)
			},
		},
	)
	return cmd
}

func printWire(cmd *cobra.Command, c channel.Channel) error {
	wire, err := channel.Serialize(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), wire)
	return nil
}

func newChannelDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <wire>",
		Short: "Decode and validate a channel string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := channel.Deserialize(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, describe(c))
		},
	}
}

type participant struct {
	Identity string        `json:"identity"`
	Kind     identity.Kind `json:"kind"`
}

type decodedChannel struct {
	channel.Document
	Participants []participant `json:"participants,omitempty"`
}

func describe(c channel.Channel) decodedChannel {
	out := decodedChannel{Document: c.Document()}
	if c.Kind == channel.KindDM {
		for _, id := range []identity.Identity{c.First, c.Second} {
			out.Participants = append(out.Participants, participant{Identity: id.String(), Kind: id.Kind()})
		}
	}
	return out
}

func newChannelSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema <coin|dm>",
		Short:     "Print the JSON schema of a channel kind",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(channel.KindCoin), string(channel.KindDM)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := channel.ParseKind(args[0])
			if err != nil {
				return err
			}
			var schema *jsonschema.Schema
			switch kind {
			case channel.KindCoin:
				schema = channel.CoinSchema()
			default:
				schema = channel.DMSchema()
			}
			return printJSON(cmd, schema)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
