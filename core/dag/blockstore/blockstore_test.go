package blockstore

import (
	"testing"

	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/ipld/hash/md5"
	"github.com/storacha/go-keyminer/core/iterable"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/mine"
	"github.com/storacha/go-keyminer/core/proof"
	"github.com/storacha/go-keyminer/testing/helpers"
	"github.com/stretchr/testify/require"
)

func proofBlock(t *testing.T, seed string) ipld.Block {
	res, err := mine.Search(t.Context(), key.New(seed), 1)
	require.NoError(t, err)
	b, err := proof.New(seed, 1, res).Block(md5.Hasher)
	require.NoError(t, err)
	return b
}

func TestBlockStore(t *testing.T) {
	a := proofBlock(t, "a")
	b := proofBlock(t, "b")

	bs, err := NewBlockStore(WithBlocks([]ipld.Block{a}))
	require.NoError(t, err)
	require.Equal(t, 1, bs.Len())

	require.NoError(t, bs.Put(b))
	require.NoError(t, bs.Put(a))
	require.Equal(t, 2, bs.Len())

	got, ok, err := bs.Get(b.Link())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, b.Bytes(), got.Bytes())

	_, ok, err = bs.Get(helpers.RandomMD5CID())
	require.NoError(t, err)
	require.False(t, ok)

	blks, err := iterable.Collect(bs.Iterator())
	require.NoError(t, err)
	require.Len(t, blks, 2)
	require.Equal(t, a.Link().String(), blks[0].Link().String())
	require.Equal(t, b.Link().String(), blks[1].Link().String())
}
