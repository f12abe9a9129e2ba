// Package proof records a mined key so that the work can be checked later
// without repeating the search.
package proof

import (
	"fmt"

	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/ipld/block"
	"github.com/storacha/go-keyminer/core/ipld/codec"
	"github.com/storacha/go-keyminer/core/ipld/codec/cbor"
	"github.com/storacha/go-keyminer/core/ipld/hash"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/storacha/go-keyminer/core/mine"
	pdm "github.com/storacha/go-keyminer/core/proof/datamodel"
)

const InvalidProofErrorName = "InvalidProof"

type InvalidProofError interface {
	failure.Failure
	Proof() Proof
}

type invalidProofError struct {
	proof  Proof
	reason string
}

func (e invalidProofError) Error() string {
	return fmt.Sprintf("invalid proof for seed %q at step %d: %s", e.proof.Seed, e.proof.Steps, e.reason)
}

func (e invalidProofError) Name() string {
	return InvalidProofErrorName
}

func (e invalidProofError) Proof() Proof {
	return e.proof
}

// Proof states that Key is Steps increments after Seed and that its digest
// starts with Zeroes zero hex digits.
type Proof struct {
	Seed   string
	Key    string
	Steps  int
	Zeroes int
	Digest md5.Digest
}

func New(seed string, zeroes int, res mine.Result) Proof {
	return Proof{
		Seed:   seed,
		Key:    string(res.Key),
		Steps:  res.Steps,
		Zeroes: zeroes,
		Digest: res.Digest,
	}
}

// Verify replays the counter from Seed and recomputes the digest.
func (p Proof) Verify() error {
	if p.Steps < 1 {
		return invalidProofError{p, "steps must be positive"}
	}
	if p.Zeroes < 0 || p.Zeroes > md5.Digits {
		return invalidProofError{p, fmt.Sprintf("zeroes must be between 0 and %d", md5.Digits)}
	}
	k := key.New(p.Seed)
	if err := k.Add(uint64(p.Steps)); err != nil {
		return invalidProofError{p, err.Error()}
	}
	if k.String() != p.Key {
		return invalidProofError{p, fmt.Sprintf("key %q does not follow from seed, expected %q", p.Key, k.String())}
	}
	d := k.Digest()
	if d != p.Digest {
		return invalidProofError{p, fmt.Sprintf("digest %s does not match key, expected %s", p.Digest, d)}
	}
	if !md5.StartsWithZeroes(d, p.Zeroes) {
		return invalidProofError{p, fmt.Sprintf("digest %s has fewer than %d leading zeroes", d, p.Zeroes)}
	}
	return nil
}

func (p Proof) Model() *pdm.ProofModel {
	return &pdm.ProofModel{
		Seed:   p.Seed,
		Key:    p.Key,
		Steps:  int64(p.Steps),
		Zeroes: int64(p.Zeroes),
		Digest: p.Digest.Bytes(),
	}
}

func FromModel(m pdm.ProofModel) (Proof, error) {
	if len(m.Digest) != md5.Size {
		return Proof{}, failure.NewInvalidArgumentError("digest", "expected %d bytes, got %d", md5.Size, len(m.Digest))
	}
	p := Proof{Seed: m.Seed, Key: m.Key, Steps: int(m.Steps), Zeroes: int(m.Zeroes)}
	copy(p.Digest[:], m.Digest)
	return p, nil
}

// Encode serializes the proof with the given codec, e.g. cbor.Codec or
// json.Codec.
func Encode(p Proof, enc codec.Encoder) ([]byte, error) {
	return enc.Encode(p.Model(), pdm.Type())
}

func Decode(b []byte, dec codec.Decoder) (Proof, error) {
	var m pdm.ProofModel
	if err := dec.Decode(b, &m, pdm.Type()); err != nil {
		return Proof{}, fmt.Errorf("decoding proof: %w", err)
	}
	return FromModel(m)
}

// Block encodes the proof as dag-cbor, addressed with the given hasher.
func (p Proof) Block(hasher hash.Hasher) (block.Block, error) {
	return block.Encode(p.Model(), pdm.Type(), cbor.Codec, hasher)
}

// FromBlock decodes a dag-cbor proof block.
func FromBlock(b block.Block) (Proof, error) {
	link, ok := b.Link().(cidlink.Link)
	if !ok {
		return Proof{}, fmt.Errorf("unsupported link type: %T", b.Link())
	}
	if link.Cid.Prefix().Codec != cbor.Code {
		return Proof{}, fmt.Errorf("unexpected codec 0x%x for proof block %s", link.Cid.Prefix().Codec, link)
	}
	return Decode(b.Bytes(), cbor.Codec)
}
