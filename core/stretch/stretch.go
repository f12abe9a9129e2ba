// Package stretch computes stretched MD5 digests of salted indices and finds
// one-time-pad keys among them.
package stretch

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/md5"
)

var log = logging.Logger("keyminer/stretch")

// DefaultCacheSize comfortably holds one lookahead window.
var DefaultCacheSize = 2048

// Lookahead is the number of following indices searched for a confirming run
// of five.
const Lookahead = 1000

// Stretcher hashes salt+index and then re-hashes the lowercase hex rendering of
// the digest rounds more times. Results are memoized in an LRU keyed by index.
type Stretcher struct {
	salt   string
	rounds int
	cache  *lru.Cache[int, md5.Digest]
}

// New creates a stretcher. Pass a size less than 1 to use DefaultCacheSize.
func New(salt string, rounds int, size int) (*Stretcher, error) {
	if rounds < 0 {
		return nil, failure.NewInvalidArgumentError("rounds", "must not be negative, got %d", rounds)
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[int, md5.Digest](size)
	if err != nil {
		return nil, fmt.Errorf("creating stretched digest LRU: %w", err)
	}
	return &Stretcher{salt: salt, rounds: rounds, cache: cache}, nil
}

// Digest returns the stretched digest for index.
func (s *Stretcher) Digest(index int) md5.Digest {
	if d, ok := s.cache.Get(index); ok {
		return d
	}
	d := md5.Sum([]byte(s.salt + strconv.Itoa(index)))
	var buf [md5.Digits]byte
	for r := 0; r < s.rounds; r++ {
		hex.Encode(buf[:], d[:])
		d = md5.Sum(buf[:])
	}
	s.cache.Add(index, d)
	return d
}

// Option is an option configuring a key search.
type Option func(cfg *config) error

type config struct {
	rounds    int
	cacheSize int
}

// WithRounds sets the number of extra hashing rounds.
func WithRounds(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return failure.NewInvalidArgumentError("rounds", "must not be negative, got %d", n)
		}
		cfg.rounds = n
		return nil
	}
}

// WithCacheSize sets the number of memoized digests.
func WithCacheSize(n int) Option {
	return func(cfg *config) error {
		cfg.cacheSize = n
		return nil
	}
}

// KeyIndex returns the index that produces the nth key. An index is a key when
// its digest contains a run of three equal hex digits and one of the next
// Lookahead digests contains a run of five of the first such digit.
func KeyIndex(ctx context.Context, salt string, nth int, options ...Option) (int, error) {
	if nth < 1 {
		return 0, failure.NewInvalidArgumentError("nth", "must be at least 1, got %d", nth)
	}
	cfg := config{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return 0, err
		}
	}
	s, err := New(salt, cfg.rounds, cfg.cacheSize)
	if err != nil {
		return 0, err
	}

	found := 0
	for i := 0; ; i++ {
		if i%Lookahead == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		c, ok := run(s.Digest(i).String(), 3)
		if !ok {
			continue
		}
		for j := i + 1; j <= i+Lookahead; j++ {
			if hasRun(s.Digest(j).String(), c, 5) {
				found++
				log.Debugw("pad key", "index", i, "confirmed", j, "count", found)
				break
			}
		}
		if found == nth {
			return i, nil
		}
	}
}

// run returns the first character repeated n times in a row.
func run(s string, n int) (byte, bool) {
	count := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			count++
			if count == n {
				return s[i], true
			}
		} else {
			count = 1
		}
	}
	return 0, false
}

func hasRun(s string, c byte, n int) bool {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			count = 0
			continue
		}
		count++
		if count == n {
			return true
		}
	}
	return false
}
