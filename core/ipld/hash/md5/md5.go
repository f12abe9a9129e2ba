// Package md5 addresses content with the md5 multihash, computed by the
// keyminer digest engine.
package md5

import (
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	engine "github.com/storacha/go-keyminer/core/md5"
)

const Code = uint64(multicodec.Md5)

const Size = engine.Size

type hasher struct{}

func (hasher) Code() uint64 {
	return Code
}

func (hasher) Size() uint64 {
	return Size
}

func (hasher) Sum(b []byte) (hash.Digest, error) {
	sum := engine.Sum(b)
	d, err := multihash.Encode(sum[:], Code)
	if err != nil {
		return nil, err
	}
	return hash.NewDigest(Code, Size, sum[:], d), nil
}

var Hasher = hasher{}
