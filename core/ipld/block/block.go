package block

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/schema"
	"github.com/storacha/go-keyminer/core/ipld/codec"
	"github.com/storacha/go-keyminer/core/ipld/hash"
)

type Block interface {
	Link() ipld.Link
	Bytes() []byte
}

type block struct {
	link  ipld.Link
	bytes []byte
}

func (b *block) Link() ipld.Link {
	return b.link
}

func (b *block) Bytes() []byte {
	return b.bytes
}

func NewBlock(link ipld.Link, bytes []byte) Block {
	return &block{link, bytes}
}

// Encode serializes value with the codec and addresses the bytes with a CIDv1
// built from the codec code and the hasher's multihash.
func Encode(value any, typ schema.Type, enc codec.Encoder, hasher hash.Hasher) (Block, error) {
	bytes, err := enc.Encode(value, typ)
	if err != nil {
		return nil, fmt.Errorf("encoding block: %w", err)
	}
	digest, err := hasher.Sum(bytes)
	if err != nil {
		return nil, fmt.Errorf("hashing block: %w", err)
	}
	c := cid.NewCidV1(enc.Code(), digest.Bytes())
	return NewBlock(cidlink.Link{Cid: c}, bytes), nil
}
