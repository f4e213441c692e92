package signature

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Sign returns the hex DER signature of sha256(message) under priv. It is the
// counterpart of Verifier.Verify for tooling and tests; keys are never generated
// or stored here.
func Sign(priv *ecdsa.PrivateKey, message string) (string, error) {
	digest := sha256.Sum256([]byte(message))
	sig, err := ecdsa.SignASN1(rand.Reader, priv, digest[:])
	if err != nil {
		return "", fmt.Errorf("sign message: %w", err)
	}
	return hex.EncodeToString(sig), nil
}

// EncodePublicKey hex-encodes pub in SEC 1 form, compressed when requested.
func EncodePublicKey(pub *ecdsa.PublicKey, compressed bool) (string, error) {
	raw, err := pub.Bytes()
	if err != nil {
		return "", fmt.Errorf("encode public key: %w", err)
	}
	if !compressed {
		return hex.EncodeToString(raw), nil
	}
	size := (len(raw) - 1) / 2
	out := make([]byte, 1+size)
	out[0] = 0x02 | (raw[len(raw)-1] & 1)
	copy(out[1:], raw[1:1+size])
	return hex.EncodeToString(out), nil
}

// Prepend0x returns value with a "0x" prefix, adding one only if missing.
func Prepend0x(value string) string {
	if strings.HasPrefix(value, "0x") {
		return value
	}
	return "0x" + value
}
