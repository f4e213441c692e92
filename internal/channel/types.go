package channel

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/memohai/agentcore/internal/identity"
)

// Kind tags the variant of a Channel.
type Kind string

const (
	KindCoin Kind = "coin"
	KindDM   Kind = "dm"
)

func (k Kind) String() string {
	return string(k)
}

// Known reports whether k is a supported channel kind.
func (k Kind) Known() bool {
	switch k {
	case KindCoin, KindDM:
		return true
	default:
		return false
	}
}

// ParseKind matches raw exactly against the known kind tags.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(raw)
	if !kind.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannelKind, raw)
	}
	return kind, nil
}

// Channel names a chat conversation: either a coin channel scoped to an
// on-chain asset, or a direct-message channel between two identities.
//
// Only the fields of the active Kind are set. Channels are values; every
// transformation returns a new Channel.
type Channel struct {
	Kind Kind

	// Coin channel.
	ChainID int64
	Address string

	// DM channel, canonical order once built by NewDMChannel or Deserialize.
	First  identity.Identity
	Second identity.Identity
}

// NewCoinChannel builds and validates a coin channel.
func NewCoinChannel(chainID int64, address string) (Channel, error) {
	c := Channel{Kind: KindCoin, ChainID: chainID, Address: address}
	if err := c.Validate(); err != nil {
		return Channel{}, err
	}
	return c, nil
}

// NewDMChannel builds a DM channel with its participants in canonical order,
// so NewDMChannel(a, b) and NewDMChannel(b, a) return equal values.
func NewDMChannel(a, b identity.Identity) (Channel, error) {
	first, second := identity.Order(a, b)
	c := Channel{Kind: KindDM, First: first, Second: second}
	if err := c.Validate(); err != nil {
		return Channel{}, err
	}
	return c, nil
}

// Canonical returns c with DM participants in canonical order. Coin channels
// are returned unchanged.
func (c Channel) Canonical() Channel {
	if c.Kind != KindDM {
		return c
	}
	c.First, c.Second = identity.Order(c.First, c.Second)
	return c
}

// Equal reports whether two channels name the same conversation.
func (c Channel) Equal(other Channel) bool {
	return c.Canonical() == other.Canonical()
}

// Participant reports whether id takes part in a DM channel, ignoring case.
func (c Channel) Participant(id identity.Identity) bool {
	if c.Kind != KindDM {
		return false
	}
	return c.First.EqualFold(id) || c.Second.EqualFold(id)
}

// Peer returns the other participant of a DM channel.
func (c Channel) Peer(self identity.Identity) (identity.Identity, bool) {
	if c.Kind != KindDM {
		return "", false
	}
	switch {
	case c.First.EqualFold(self):
		return c.Second, true
	case c.Second.EqualFold(self):
		return c.First, true
	default:
		return "", false
	}
}

// Validate checks c against the schema of its kind.
func (c Channel) Validate() error {
	if !c.Kind.Known() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidChannel, c.Kind)
	}
	if c.Kind == KindCoin {
		if err := validateAddress(c.Address); err != nil {
			return err
		}
	}
	if err := validateSchema(c); err != nil {
		return err
	}
	if c.Kind == KindDM {
		if _, err := identity.Parse(c.First.String()); err != nil {
			return fmt.Errorf("%w: first identity: %w", ErrInvalidChannel, err)
		}
		if _, err := identity.Parse(c.Second.String()); err != nil {
			return fmt.Errorf("%w: second identity: %w", ErrInvalidChannel, err)
		}
	}
	return nil
}

// validateAddress runs the checks the schema pattern cannot express: RE2 \s
// is ASCII only and the JSON encoder rewrites invalid UTF-8.
func validateAddress(address string) error {
	if !utf8.ValidString(address) {
		return fmt.Errorf("%w: address is not valid utf-8", ErrInvalidChannel)
	}
	for _, r := range address {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: address %q contains whitespace or control characters", ErrInvalidChannel, address)
		}
	}
	return nil
}
