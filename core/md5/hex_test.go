package md5

import (
	"strings"
	"testing"

	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/testing/helpers"
	"github.com/stretchr/testify/require"
)

func TestHexString(t *testing.T) {
	var zero Digest
	require.Equal(t, strings.Repeat("0", Digits), HexString(zero))
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", Sum([]byte("abc")).String())
}

func TestParseHex(t *testing.T) {
	d := Sum([]byte("123"))
	parsed, err := ParseHex(d.String())
	require.NoError(t, err)
	require.Equal(t, d, parsed)

	_, err = ParseHex("abc")
	require.True(t, failure.IsNamed(err, failure.InvalidArgumentErrorName))

	_, err = ParseHex(strings.Repeat("z", Digits))
	require.True(t, failure.IsNamed(err, failure.InvalidArgumentErrorName))
}

func TestStartsWithZeroes(t *testing.T) {
	d := Digest{0x00, 0x00, 0x0f}
	require.True(t, StartsWithZeroes(d, 0))
	require.True(t, StartsWithZeroes(d, 4))
	require.True(t, StartsWithZeroes(d, 5))
	require.False(t, StartsWithZeroes(d, 6))

	var zero Digest
	require.True(t, StartsWithZeroes(zero, Digits))
	require.True(t, StartsWithZeroes(zero, Digits+1))

	// crossing the boundary between the high and low 64-bit halves
	half := Digest{8: 0x0f}
	require.True(t, StartsWithZeroes(half, 16))
	require.True(t, StartsWithZeroes(half, 17))
	require.False(t, StartsWithZeroes(half, 18))
	require.False(t, StartsWithZeroes(Digest{15: 1}, Digits))
	require.True(t, StartsWithZeroes(Digest{15: 1}, Digits-1))

	t.Run("agrees with hex prefix", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			d := Sum(helpers.RandomBytes(8))
			// force a few leading zero nibbles so the interesting cases occur
			d[0] &= 0x0f
			if i%2 == 0 {
				d[0] = 0
			}
			s := HexString(d)
			for z := 0; z <= 6; z++ {
				require.Equal(t, strings.HasPrefix(s, strings.Repeat("0", z)), StartsWithZeroes(d, z), "%s %d", s, z)
			}
		}
	})
}

func TestLeadingZeroes(t *testing.T) {
	require.Equal(t, 5, LeadingZeroes(Digest{0x00, 0x00, 0x0f}))
	require.Equal(t, 4, LeadingZeroes(Digest{0x00, 0x00, 0xf0}))
	require.Equal(t, Digits, LeadingZeroes(Digest{}))
}

func TestHexDigit(t *testing.T) {
	d := Sum([]byte("abc")) // 900150983cd2...
	s := HexString(d)
	for i := 1; i <= Digits; i++ {
		n, err := HexDigit(d, i)
		require.NoError(t, err)
		require.Equal(t, strings.IndexByte("0123456789abcdef", s[i-1]), int(n))
	}

	for _, i := range []int{0, -1, Digits + 1} {
		_, err := HexDigit(d, i)
		require.Error(t, err)
		require.True(t, failure.IsNamed(err, failure.InvalidArgumentErrorName))
	}
}
