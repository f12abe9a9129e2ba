// Package key implements the mutable candidate message of a mining search: a
// byte buffer whose trailing ASCII digits behave like a decimal counter, with a
// memoized MD5 digest that is dropped on every mutation.
package key

import (
	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/md5"
)

// cache is either dirty (no digest) or holds the digest of the current data.
type cache struct {
	valid  bool
	digest md5.Digest
}

func dirty() cache {
	return cache{}
}

func cached(d md5.Digest) cache {
	return cache{valid: true, digest: d}
}

type Key struct {
	data  []byte
	cache cache
}

// New creates a key from an initial value. The value is copied.
func New[T ~string | ~[]byte](init T) *Key {
	data := make([]byte, len(init))
	copy(data, init)
	return &Key{data: data, cache: dirty()}
}

// Digest returns the MD5 digest of the current key, computing it only if the
// key changed since the last call.
func (k *Key) Digest() md5.Digest {
	if k.cache.valid {
		return k.cache.digest
	}
	d := md5.Sum(k.data)
	k.cache = cached(d)
	return d
}

// Cached reports whether a digest is memoized for the current content.
func (k *Key) Cached() bool {
	return k.cache.valid
}

// Increment advances the trailing decimal counter of the key by one.
//
// Trailing '9's roll over to '0'. If the carry reaches a non-digit byte a new
// '1' column is inserted after it, so "abc" becomes "abc1" and "x99" becomes
// "x100". A key made only of '9's grows a leading '1'.
func (k *Key) Increment() error {
	if len(k.data) == 0 {
		return failure.NewInvalidStateError("cannot increment an empty key")
	}
	k.mutate(func(data []byte) []byte {
		i := len(data) - 1
		for i > 0 && data[i] == '9' {
			data[i] = '0'
			i--
		}
		switch {
		case !isDigit(data[i]):
			return insert(data, i+1, '1')
		case data[i] == '9':
			data[i] = '0'
			return insert(data, 0, '1')
		default:
			data[i]++
			return data
		}
	})
	return nil
}

// Add advances the key by n, with the same result as n calls to Increment.
func (k *Key) Add(n uint64) error {
	if len(k.data) == 0 {
		return failure.NewInvalidStateError("cannot increment an empty key")
	}
	if n == 0 {
		return nil
	}
	k.mutate(func(data []byte) []byte {
		start := len(data)
		for start > 0 && isDigit(data[start-1]) {
			start--
		}
		return append(data[:start:start], addDecimal(data[start:], n)...)
	})
	return nil
}

// Clone returns an independent copy of the key, including its cached digest.
func (k *Key) Clone() *Key {
	data := make([]byte, len(k.data))
	copy(data, k.data)
	return &Key{data: data, cache: k.cache}
}

// Bytes returns a copy of the current key.
func (k *Key) Bytes() []byte {
	b := make([]byte, len(k.data))
	copy(b, k.data)
	return b
}

func (k *Key) String() string {
	return string(k.data)
}

func (k *Key) Len() int {
	return len(k.data)
}

// mutate is the only path through which data changes.
func (k *Key) mutate(fn func([]byte) []byte) {
	k.data = fn(k.data)
	k.cache = dirty()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func insert(data []byte, at int, b byte) []byte {
	data = append(data, 0)
	copy(data[at+1:], data[at:])
	data[at] = b
	return data
}

// addDecimal adds n to the ASCII decimal digits, keeping their width unless
// the sum needs more columns.
func addDecimal(digits []byte, n uint64) []byte {
	out := make([]byte, len(digits), len(digits)+20)
	copy(out, digits)
	carry := n
	for i := len(out) - 1; i >= 0 && carry > 0; i-- {
		v := uint64(out[i]-'0') + carry%10
		carry /= 10
		if v >= 10 {
			v -= 10
			carry++
		}
		out[i] = byte('0' + v)
	}
	for carry > 0 {
		out = insert(out, 0, byte('0'+carry%10))
		carry /= 10
	}
	return out
}
