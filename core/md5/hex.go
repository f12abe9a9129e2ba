package md5

import (
	"encoding/hex"

	"github.com/storacha/go-keyminer/core/failure"
)

// Digits is the number of hex digits in a digest.
const Digits = Size * 2

// StartsWithZeroes reports whether the n most significant hex digits of d are
// zero, i.e. d < 2^(128-4n).
func StartsWithZeroes(d Digest, n int) bool {
	if n <= 0 {
		return true
	}
	hi, lo := d.Uint128()
	if n >= Digits {
		return hi == 0 && lo == 0
	}
	bits := uint(4 * n)
	if bits <= 64 {
		return hi>>(64-bits) == 0
	}
	return hi == 0 && lo>>(128-bits) == 0
}

// LeadingZeroes counts the consecutive zero hex digits at the start of d.
func LeadingZeroes(d Digest) int {
	n := 0
	for _, b := range d {
		if b != 0 {
			if b>>4 == 0 {
				n++
			}
			return n
		}
		n += 2
	}
	return n
}

// HexDigit returns the nibble at 1-based position index, counted from the most
// significant hex digit.
func HexDigit(d Digest, index int) (uint8, error) {
	if index < 1 || index > Digits {
		return 0, failure.NewInvalidArgumentError("index", "hex digit position %d outside 1..%d", index, Digits)
	}
	b := d[(index-1)/2]
	if index%2 == 1 {
		return b >> 4, nil
	}
	return b & 0x0f, nil
}

// HexString renders d as 32 lowercase, zero padded hex characters.
func HexString(d Digest) string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return HexString(d)
}

// ParseHex is the inverse of HexString.
func ParseHex(s string) (Digest, error) {
	var d Digest
	if len(s) != Digits {
		return d, failure.NewInvalidArgumentError("digest", "expected %d hex characters, got %d", Digits, len(s))
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return d, failure.NewInvalidArgumentError("digest", "%s", err)
	}
	return d, nil
}
