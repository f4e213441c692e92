package identity

import (
	"slices"
	"unicode/utf16"
)

// Order returns the pair in canonical order: ascending by lowercase form.
// Identities that differ only in case fall back to a byte-wise comparison of
// their original form, so Order(a, b) and Order(b, a) always agree.
func Order(a, b Identity) (Identity, Identity) {
	if Compare(a, b) <= 0 {
		return a, b
	}
	return b, a
}

// Compare returns -1, 0 or 1 comparing a and b in canonical order.
func Compare(a, b Identity) int {
	if c := compareStrings(a.key(), b.key()); c != 0 {
		return c
	}
	return compareStrings(string(a), string(b))
}

// compareStrings orders by UTF-16 code units, so characters outside the BMP
// sort before U+E000..U+FFFF rather than after them as in UTF-8 byte order.
func compareStrings(a, b string) int {
	if a == b {
		return 0
	}
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
