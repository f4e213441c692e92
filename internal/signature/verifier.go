// Package signature verifies ECDSA signatures over chat messages.
//
// Verification is a security gate: Verify never returns an error and never
// panics. Anything that prevents a positive answer (bad hex, a point off the
// curve, a malformed or mismatched signature) yields false and a diagnostic
// log record.
package signature

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/memohai/agentcore/internal/logger"
)

// Curve is an immutable elliptic-curve configuration. Build it once at
// startup and hand it to every Verifier.
type Curve struct {
	name  string
	curve elliptic.Curve
}

// P256 is the NIST P-256 curve configuration.
var P256 = Curve{name: "p256", curve: elliptic.P256()}

// CurveByName returns the configuration for a named curve.
func CurveByName(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "p256", "p-256", "secp256r1", "prime256v1":
		return P256, nil
	default:
		return Curve{}, fmt.Errorf("unsupported curve: %q", name)
	}
}

// Name returns the short curve name.
func (c Curve) Name() string { return c.name }

func (c Curve) byteLen() int {
	return (c.curve.Params().BitSize + 7) / 8
}

// Verifier checks hex-encoded ECDSA signatures over SHA-256 message digests.
type Verifier struct {
	curve  Curve
	logger *slog.Logger
}

// NewVerifier returns a Verifier for curve. A nil log falls back to the global logger.
func NewVerifier(curve Curve, log *slog.Logger) *Verifier {
	if curve.curve == nil {
		curve = P256
	}
	return &Verifier{
		curve:  curve,
		logger: logger.OrDefault(log).With(slog.String("component", "signature"), slog.String("curve", curve.name)),
	}
}

// Curve returns the configuration the verifier was built with.
func (v *Verifier) Curve() Curve { return v.curve }

// Verify reports whether signatureHex is a valid DER-encoded ECDSA signature
// of sha256(message) under publicKeyHex. It never fails; any error is logged
// and reported as false.
func (v *Verifier) Verify(message, publicKeyHex, signatureHex string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("signature verification panicked", slog.Any("panic", r))
			ok = false
		}
	}()
	if err := v.verify(message, publicKeyHex, signatureHex); err != nil {
		v.logger.Warn("signature verification failed", slog.Any("error", err))
		return false
	}
	return true
}

var errMismatch = errors.New("signature does not match")

func (v *Verifier) verify(message, publicKeyHex, signatureHex string) error {
	pub, err := ParsePublicKey(v.curve, publicKeyHex)
	if err != nil {
		return err
	}
	sig, err := decodeHex(signatureHex)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	digest := sha256.Sum256([]byte(message))
	if !ecdsa.VerifyASN1(pub, digest[:], sig) {
		return errMismatch
	}
	return nil
}

// ParsePublicKey decodes a hex public key on curve. Both the uncompressed
// (04||X||Y) and compressed (02/03||X) SEC 1 encodings are accepted.
func ParsePublicKey(curve Curve, publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := decodeHex(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	size := curve.byteLen()
	switch {
	case len(raw) == 1+2*size && raw[0] == 0x04:
	case len(raw) == 1+size && (raw[0] == 0x02 || raw[0] == 0x03):
		x, y := elliptic.UnmarshalCompressed(curve.curve, raw)
		if x == nil {
			return nil, errors.New("public key is not a point on the curve")
		}
		raw = make([]byte, 1+2*size)
		raw[0] = 0x04
		x.FillBytes(raw[1 : 1+size])
		y.FillBytes(raw[1+size:])
	default:
		return nil, fmt.Errorf("public key has unexpected encoding (%d bytes)", len(raw))
	}
	pub, err := ecdsa.ParseUncompressedPublicKey(curve.curve, raw)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return pub, nil
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty hex string")
	}
	return hex.DecodeString(s)
}
