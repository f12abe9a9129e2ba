// Package md5 is a self contained implementation of the MD5 message digest
// (RFC 1321) used for key mining.
//
// MD5 is cryptographically broken. It is implemented here for compatibility
// with puzzle inputs and content addressed with the md5 multihash code, never
// as a security primitive.
package md5

import (
	"encoding/binary"
	"math/bits"
)

// Size of an MD5 digest in bytes.
const Size = 16

// BlockSize is the size of a single compression block in bytes.
const BlockSize = 64

// Digest is a 128-bit MD5 value. Byte 0 is the most significant byte, which is
// also the order of the conventional hex rendering.
type Digest [Size]byte

// Uint128 returns the digest as high and low 64-bit halves.
func (d Digest) Uint128() (hi, lo uint64) {
	return binary.BigEndian.Uint64(d[:8]), binary.BigEndian.Uint64(d[8:])
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// Sum computes the MD5 digest of data.
func Sum(data []byte) Digest {
	s := [4]uint32{init0, init1, init2, init3}
	padded := pad(data)
	var words [16]uint32
	for off := 0; off < len(padded); off += BlockSize {
		decode(&words, padded[off:off+BlockSize])
		compress(&s, &words)
	}

	var d Digest
	for i, v := range s {
		binary.LittleEndian.PutUint32(d[i*4:], v)
	}
	return d
}

// pad appends 0x80, zero fill up to 56 mod 64 and the original bit length as a
// little endian uint64. The result length is always a multiple of BlockSize.
func pad(data []byte) []byte {
	k := (56 - (len(data)+1)%BlockSize + BlockSize) % BlockSize
	padded := make([]byte, len(data)+1+k+8)
	copy(padded, data)
	padded[len(data)] = 0x80
	binary.LittleEndian.PutUint64(padded[len(padded)-8:], uint64(len(data))<<3)
	return padded
}

func decode(words *[16]uint32, chunk []byte) {
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(chunk[i*4:])
	}
}

func compress(s *[4]uint32, m *[16]uint32) {
	a, b, c, d := s[0], s[1], s[2], s[3]
	for i := 0; i < 64; i++ {
		var f uint32
		var g int
		switch i / 16 {
		case 0:
			f = (b & c) | (^b & d)
			g = i
		case 1:
			f = (d & b) | (^d & c)
			g = (5*i + 1) % 16
		case 2:
			f = b ^ c ^ d
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * i) % 16
		}
		f += a + table[i] + m[g]
		a, d, c = d, c, b
		b += bits.RotateLeft32(f, int(shifts[i]))
	}
	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
}
