package hash

import (
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"
)

type Hasher interface {
	Sum(bytes []byte) (Digest, error)
}

// Digest is a multihash: Code and Size describe Digest, Bytes is the
// varint prefixed encoding.
type Digest interface {
	Code() uint64
	Size() uint64
	Digest() []byte
	Bytes() []byte
}

type digest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *digest) Bytes() []byte {
	return d.bytes
}

func (d *digest) Code() uint64 {
	return d.code
}

func (d *digest) Digest() []byte {
	return d.digest
}

func (d *digest) Size() uint64 {
	return d.size
}

func NewDigest(code uint64, size uint64, digst []byte, bytes []byte) Digest {
	return &digest{code, size, digst, bytes}
}

// Decode parses multihash bytes into a Digest.
func Decode(bytes []byte) (Digest, error) {
	code, n, err := varint.FromUvarint(bytes)
	if err != nil {
		return nil, fmt.Errorf("reading multihash code: %w", err)
	}
	size, m, err := varint.FromUvarint(bytes[n:])
	if err != nil {
		return nil, fmt.Errorf("reading multihash length: %w", err)
	}
	digst := bytes[n+m:]
	if uint64(len(digst)) != size {
		return nil, fmt.Errorf("multihash length mismatch: header says %d, got %d bytes", size, len(digst))
	}
	return NewDigest(code, size, digst, bytes), nil
}

// Format renders the raw digest (without the multihash prefix) in the named
// multibase, e.g. "base16", "base32" or "base58btc".
func Format(d Digest, base string) (string, error) {
	enc, err := multibase.EncoderByName(base)
	if err != nil {
		return "", err
	}
	return enc.Encode(d.Digest()), nil
}
