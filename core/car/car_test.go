package car

import (
	"bytes"
	"io"
	"runtime"
	"testing"
	"time"

	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	"github.com/storacha/go-keyminer/core/ipld/hash/md5"
	"github.com/storacha/go-keyminer/core/ipld/hash/sha256"
	"github.com/storacha/go-keyminer/core/iterable"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/mine"
	"github.com/storacha/go-keyminer/core/proof"
	"github.com/storacha/go-keyminer/testing/helpers/printer"
	"github.com/stretchr/testify/require"
)

func minedBlocks(t *testing.T) []ipld.Block {
	hashers := []hash.Hasher{md5.Hasher, sha256.Hasher}
	var blks []ipld.Block
	for i, seed := range []string{"abc", "pqr", "xyz"} {
		res, err := mine.Search(t.Context(), key.New(seed), 2)
		require.NoError(t, err)
		b, err := proof.New(seed, 2, res).Block(hashers[i%len(hashers)])
		require.NoError(t, err)
		blks = append(blks, b)
	}
	return blks
}

func TestEncodeDecodeCAR(t *testing.T) {
	blks := minedBlocks(t)
	roots := []ipld.Link{blks[len(blks)-1].Link()}

	data, err := io.ReadAll(Encode(roots, iterable.From(blks)))
	require.NoError(t, err)

	decodedRoots, it, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, decodedRoots, 1)
	require.Equal(t, roots[0].String(), decodedRoots[0].String())

	decoded, err := iterable.Collect(it)
	require.NoError(t, err)
	require.Len(t, decoded, len(blks))
	for i, b := range blks {
		require.Equal(t, b.Link().String(), decoded[i].Link().String())
		require.Equal(t, b.Bytes(), decoded[i].Bytes())
		printer.PrintBlock(t, decoded[i])

		p, err := proof.FromBlock(decoded[i])
		require.NoError(t, err)
		require.NoError(t, p.Verify())
	}

	t.Run("re-encodes identically", func(t *testing.T) {
		again, err := io.ReadAll(Encode(decodedRoots, iterable.From(decoded)))
		require.NoError(t, err)
		require.Equal(t, data, again)
	})
}

func TestDecodeCorruptBlock(t *testing.T) {
	blks := minedBlocks(t)
	data, err := io.ReadAll(Encode([]ipld.Link{blks[0].Link()}, iterable.From(blks[:1])))
	require.NoError(t, err)

	// the last byte belongs to the block payload
	data[len(data)-1] ^= 0xff

	_, it, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = iterable.Collect(it)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mismatch in content integrity")
}

func TestDecodeInvalidHeader(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte{0x02, 0xa0, 0x00}))
	require.Error(t, err)
}

func TestEncodeStopsWhenClosed(t *testing.T) {
	blk := minedBlocks(t)[0]
	endless := iterable.NewIterator(func() (ipld.Block, error) {
		return blk, nil
	})

	before := runtime.NumGoroutine()
	r := Encode([]ipld.Link{blk.Link()}, endless)
	_, err := r.Read(make([]byte, 1))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.Read(make([]byte, 1))
	require.ErrorIs(t, err, io.ErrClosedPipe)
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, time.Second, 10*time.Millisecond)
}
