package mine

import (
	"context"
	"testing"
	"time"

	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/storacha/go-keyminer/testing/fixtures"
	"github.com/stretchr/testify/require"
)

func mined(t *testing.T) []fixtures.Mining {
	if testing.Short() {
		return fixtures.Mined[:1]
	}
	return fixtures.Mined
}

func TestSearchLeadingZeroes(t *testing.T) {
	for _, f := range mined(t) {
		t.Run(f.Seed, func(t *testing.T) {
			k := key.New(f.Seed)
			steps, err := SearchLeadingZeroes(k, f.Zeroes)
			require.NoError(t, err)
			require.Equal(t, f.Steps, steps)
			require.Equal(t, f.Key, k.String())
			require.True(t, k.Cached())
			require.True(t, md5.StartsWithZeroes(k.Digest(), f.Zeroes))
		})
	}

	t.Run("small target", func(t *testing.T) {
		k := key.New("abc")
		steps, err := SearchLeadingZeroes(k, 1)
		require.NoError(t, err)
		require.Positive(t, steps)
		require.Equal(t, md5.Sum(k.Bytes()), k.Digest())
		require.True(t, md5.StartsWithZeroes(k.Digest(), 1))

		// every earlier candidate must have failed
		probe := key.New("abc")
		for i := 1; i < steps; i++ {
			require.NoError(t, probe.Increment())
			require.False(t, md5.StartsWithZeroes(probe.Digest(), 1))
		}
	})

	t.Run("empty key", func(t *testing.T) {
		_, err := SearchLeadingZeroes(key.New(""), 1)
		require.True(t, failure.IsNamed(err, failure.InvalidStateErrorName))
	})
}

func TestSearch(t *testing.T) {
	for _, f := range mined(t) {
		t.Run(f.Seed+" sequential", func(t *testing.T) {
			k := key.New(f.Seed)
			res, err := Search(t.Context(), k, f.Zeroes)
			require.NoError(t, err)
			require.Equal(t, f.Steps, res.Steps)
			require.Equal(t, f.Key, string(res.Key))
			require.Equal(t, f.Key, k.String())
		})

		t.Run(f.Seed+" parallel", func(t *testing.T) {
			k := key.New(f.Seed)
			res, err := Search(t.Context(), k, f.Zeroes, WithWorkers(4), WithBatchSize(1000))
			require.NoError(t, err)
			require.Equal(t, f.Steps, res.Steps)
			require.Equal(t, f.Key, string(res.Key))
			require.Equal(t, f.Key, k.String())
			require.Equal(t, md5.Sum(res.Key), res.Digest)
		})
	}

	t.Run("parallel matches sequential on small targets", func(t *testing.T) {
		for _, seed := range []string{"abc", "xyz42", "q"} {
			seq, err := Search(t.Context(), key.New(seed), 3)
			require.NoError(t, err)
			par, err := Search(t.Context(), key.New(seed), 3, WithWorkers(8), WithBatchSize(7))
			require.NoError(t, err)
			require.Equal(t, seq, par)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()
		_, err := Search(ctx, key.New("abc"), md5.Digits, WithCheckInterval(128))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("parallel cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
		defer cancel()
		_, err := Search(ctx, key.New("abc"), md5.Digits, WithWorkers(2), WithBatchSize(64))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("parallel empty key", func(t *testing.T) {
		_, err := Search(t.Context(), key.New(""), 1, WithWorkers(2))
		require.True(t, failure.IsNamed(err, failure.InvalidStateErrorName))
	})

	t.Run("invalid options", func(t *testing.T) {
		for _, opt := range []Option{WithWorkers(0), WithBatchSize(-1), WithCheckInterval(0)} {
			_, err := Search(t.Context(), key.New("abc"), 1, opt)
			require.True(t, failure.IsNamed(err, failure.InvalidArgumentErrorName))
		}
	})
}
