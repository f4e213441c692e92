package channel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/memohai/agentcore/internal/identity"
)

// Delimiter separates the fields of an encoded channel.
const Delimiter = identity.Delimiter

const fieldCount = 3

// Serialize encodes c as "coin:{chainId}:{address}" or "dm:{first}:{second}".
// DM participants are written in canonical order with their original casing.
func Serialize(c Channel) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	switch c.Kind {
	case KindCoin:
		return join(KindCoin, strconv.FormatInt(c.ChainID, 10), c.Address), nil
	case KindDM:
		first, second := identity.Order(c.First, c.Second)
		return join(KindDM, first.String(), second.String()), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidChannel, c.Kind)
	}
}

// Deserialize parses an encoded channel. DM participants are re-ordered
// canonically even when the input was not.
func Deserialize(s string) (Channel, error) {
	parts := strings.Split(s, Delimiter)
	if len(parts) != fieldCount {
		return Channel{}, fmt.Errorf("%w: want %d fields, got %d", ErrInvalidChannelFormat, fieldCount, len(parts))
	}
	kind, err := ParseKind(parts[0])
	if err != nil {
		return Channel{}, err
	}
	switch kind {
	case KindCoin:
		chainID, err := parseChainID(parts[1])
		if err != nil {
			return Channel{}, err
		}
		return NewCoinChannel(chainID, parts[2])
	case KindDM:
		first, err := identity.Parse(parts[1])
		if err != nil {
			return Channel{}, fmt.Errorf("first identity: %w", err)
		}
		second, err := identity.Parse(parts[2])
		if err != nil {
			return Channel{}, fmt.Errorf("second identity: %w", err)
		}
		return NewDMChannel(first, second)
	default:
		return Channel{}, fmt.Errorf("%w: %q", ErrUnknownChannelKind, parts[0])
	}
}

func parseChainID(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty chain id", ErrInvalidChannel)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: chain id %q is not a decimal integer", ErrInvalidChannel, raw)
		}
	}
	chainID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: chain id %q: %w", ErrInvalidChannel, raw, err)
	}
	return chainID, nil
}

func join(kind Kind, a, b string) string {
	return kind.String() + Delimiter + a + Delimiter + b
}

// String returns the encoded form of c, or an empty string if c is invalid.
func (c Channel) String() string {
	s, err := Serialize(c)
	if err != nil {
		return ""
	}
	return s
}

// MarshalText implements encoding.TextMarshaler using the wire format, so a
// Channel is written as a plain string in JSON and TOML documents.
func (c Channel) MarshalText() ([]byte, error) {
	s, err := Serialize(c)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Channel) UnmarshalText(text []byte) error {
	parsed, err := Deserialize(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
