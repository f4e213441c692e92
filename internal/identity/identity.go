// Package identity validates chat participant identifiers and defines the
// case-insensitive canonical order used for symmetric (DM) channels.
package identity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxLength bounds the byte length of a single identity.
const MaxLength = 256

// Delimiter separates fields in encoded channel strings and is therefore
// never allowed inside an identity.
const Delimiter = ":"

// ErrInvalidIdentity is returned when a string does not conform to the identity format.
var ErrInvalidIdentity = errors.New("invalid identity")

// Kind classifies a valid identity by its shape.
type Kind string

const (
	KindUUID    Kind = "uuid"
	KindAddress Kind = "address"
	KindHandle  Kind = "handle"
)

// Five groups of hex digits separated by hyphens, any case.
var (
	uuidPattern    = regexp.MustCompile(`(?i)^[0-9a-f]+-[0-9a-f]+-[0-9a-f]+-[0-9a-f]+-[0-9a-f]+$`)
	addressPattern = regexp.MustCompile(`^0[xX][0-9a-fA-F]{40}$`)
)

// Identity is an opaque, validated participant identifier. The zero value is
// not a valid identity; obtain one through Parse.
type Identity string

// Parse validates s and returns it as an Identity. No case normalization is
// applied; the original casing is kept for re-emission.
func Parse(s string) (Identity, error) {
	if err := validate(s); err != nil {
		return "", err
	}
	return Identity(s), nil
}

// MustParse is like Parse but panics on invalid input. Intended for constants and tests.
func MustParse(s string) Identity {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func validate(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	if len(s) > MaxLength {
		return fmt.Errorf("%w: length %d exceeds %d", ErrInvalidIdentity, len(s), MaxLength)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: not valid utf-8", ErrInvalidIdentity)
	}
	if strings.Contains(s, Delimiter) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidIdentity, s, Delimiter)
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidIdentity, s)
		}
	}
	return nil
}

// String returns the identity unchanged.
func (i Identity) String() string {
	return string(i)
}

// Valid reports whether i passes the identity format check.
func (i Identity) Valid() bool {
	return validate(string(i)) == nil
}

// Kind reports what the identity looks like. Only meaningful for valid identities.
func (i Identity) Kind() Kind {
	s := string(i)
	switch {
	case addressPattern.MatchString(s):
		return KindAddress
	case uuidPattern.MatchString(s):
		if _, err := uuid.Parse(s); err == nil {
			return KindUUID
		}
		return KindHandle
	default:
		return KindHandle
	}
}

// EqualFold reports whether two identities are equal ignoring case.
func (i Identity) EqualFold(other Identity) bool {
	return strings.EqualFold(string(i), string(other))
}

func (i Identity) key() string {
	return strings.ToLower(string(i))
}
