package key

import (
	"strconv"
	"testing"

	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	k := New("abc")
	require.False(t, k.Cached())

	d := k.Digest()
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", d.String())
	require.True(t, k.Cached())
	require.Equal(t, d, k.Digest())
	require.Equal(t, md5.Sum([]byte("abc")), k.Digest())
}

func TestIncrement(t *testing.T) {
	testcases := []struct {
		from, to string
	}{
		{"abc", "abc1"},
		{"abc1", "abc2"},
		{"abc9", "abc10"},
		{"abc199", "abc200"},
		{"abc099", "abc100"},
		{"abc009", "abc010"},
		{"x999", "x1000"},
		{"a", "a1"},
		{"0", "1"},
		{"9", "10"},
		{"99", "100"},
		{"12a", "12a1"},
	}
	for _, tc := range testcases {
		t.Run(tc.from, func(t *testing.T) {
			k := New(tc.from)
			require.NoError(t, k.Increment())
			require.Equal(t, tc.to, k.String())
		})
	}
}

func TestIncrementInvalidatesCache(t *testing.T) {
	k := New("abcdef")
	before := k.Digest()
	require.True(t, k.Cached())

	require.NoError(t, k.Increment())
	require.False(t, k.Cached())

	after := k.Digest()
	require.NotEqual(t, before, after)
	require.Equal(t, md5.Sum([]byte("abcdef1")), after)
}

func TestIncrementEmpty(t *testing.T) {
	k := New("")
	err := k.Increment()
	require.Error(t, err)
	require.True(t, failure.IsNamed(err, failure.InvalidStateErrorName))
	require.Equal(t, 0, k.Len())

	err = k.Add(3)
	require.True(t, failure.IsNamed(err, failure.InvalidStateErrorName))
}

func TestDecimalSequence(t *testing.T) {
	k := New("0")
	for i := 1; i <= 12345; i++ {
		require.NoError(t, k.Increment())
		require.Equal(t, strconv.Itoa(i), k.String())
	}
}

func TestAdd(t *testing.T) {
	seeds := []string{"abc", "abc7", "abc0099", "9", "x", "998"}
	for _, seed := range seeds {
		t.Run(seed, func(t *testing.T) {
			for _, n := range []uint64{1, 2, 9, 10, 11, 99, 100, 1234} {
				stepped := New(seed)
				for i := uint64(0); i < n; i++ {
					require.NoError(t, stepped.Increment())
				}
				added := New(seed)
				require.NoError(t, added.Add(n))
				require.Equal(t, stepped.String(), added.String(), "add %d", n)
			}
		})
	}

	t.Run("zero keeps cache", func(t *testing.T) {
		k := New("abc")
		k.Digest()
		require.NoError(t, k.Add(0))
		require.True(t, k.Cached())
	})

	t.Run("large", func(t *testing.T) {
		k := New("abcdef")
		require.NoError(t, k.Add(609043))
		require.Equal(t, "abcdef609043", k.String())
	})
}

func TestClone(t *testing.T) {
	k := New("abc1")
	k.Digest()
	c := k.Clone()
	require.True(t, c.Cached())
	require.NoError(t, c.Increment())
	require.Equal(t, "abc1", k.String())
	require.Equal(t, "abc2", c.String())
	require.True(t, k.Cached())
}

func TestBytesIsCopy(t *testing.T) {
	src := []byte("abc")
	k := New(src)
	src[0] = 'z'
	b := k.Bytes()
	b[1] = 'z'
	require.Equal(t, "abc", k.String())
}

func TestCallerMutationKeepsCache(t *testing.T) {
	src := []byte("abc")
	k := New(src)
	d := k.Digest()
	src[0] = 'z'
	require.Equal(t, "abc", k.String())
	require.True(t, k.Cached())
	require.Equal(t, d, k.Digest())
	require.Equal(t, md5.Sum([]byte("abc")), k.Digest())
}
