package blockstore

import (
	"fmt"
	"io"
	"sync"

	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/iterable"
)

type BlockReader interface {
	Get(link ipld.Link) (ipld.Block, bool, error)
	// Iterator returns blocks in insertion order.
	Iterator() iterable.Iterator[ipld.Block]
	Len() int
}

type BlockWriter interface {
	Put(block ipld.Block) error
}

type BlockStore interface {
	BlockReader
	BlockWriter
}

type blockstore struct {
	mutex sync.RWMutex
	keys  []string
	blks  map[string]ipld.Block
}

// Put adds a block. Blocks already present are ignored.
func (bs *blockstore) Put(block ipld.Block) error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	k := block.Link().String()
	if _, ok := bs.blks[k]; ok {
		return nil
	}
	bs.blks[k] = block
	bs.keys = append(bs.keys, k)
	return nil
}

func (bs *blockstore) Get(link ipld.Link) (ipld.Block, bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()
	b, ok := bs.blks[link.String()]
	return b, ok, nil
}

func (bs *blockstore) Len() int {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()
	return len(bs.keys)
}

func (bs *blockstore) Iterator() iterable.Iterator[ipld.Block] {
	bs.mutex.RLock()
	keys := append([]string(nil), bs.keys...)
	bs.mutex.RUnlock()

	i := 0
	return iterable.NewIterator(func() (ipld.Block, error) {
		if i >= len(keys) {
			return nil, io.EOF
		}
		k := keys[i]
		i++
		bs.mutex.RLock()
		blk, ok := bs.blks[k]
		bs.mutex.RUnlock()
		if !ok {
			return nil, fmt.Errorf("missing block for key: %s", k)
		}
		return blk, nil
	})
}

// Option is an option configuring a block store.
type Option func(cfg *bsConfig) error

type bsConfig struct {
	blks []ipld.Block
}

// WithBlocks configures the blocks the blockstore should contain.
func WithBlocks(blks []ipld.Block) Option {
	return func(cfg *bsConfig) error {
		cfg.blks = blks
		return nil
	}
}

func NewBlockStore(options ...Option) (BlockStore, error) {
	cfg := bsConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	bs := &blockstore{blks: map[string]ipld.Block{}}
	for _, b := range cfg.blks {
		if err := bs.Put(b); err != nil {
			return nil, err
		}
	}
	return bs, nil
}
