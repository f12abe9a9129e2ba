// Package mine searches for keys whose MD5 digest starts with a number of zero
// hex digits.
package mine

import (
	"context"
	"math"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/md5"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

var log = logging.Logger("keyminer/mine")

// Result is a winning key found by a search.
type Result struct {
	// Steps is the 1-based number of increments from the starting key.
	Steps  int
	Key    []byte
	Digest md5.Digest
}

// SearchLeadingZeroes increments k until its digest starts with zeroes zero
// hex digits and returns the number of increments performed. k is left at the
// winning value with its digest cached. There is no upper bound on the number
// of steps.
func SearchLeadingZeroes(k *key.Key, zeroes int) (int, error) {
	steps := 0
	for {
		if err := k.Increment(); err != nil {
			return steps, err
		}
		steps++
		if md5.StartsWithZeroes(k.Digest(), zeroes) {
			return steps, nil
		}
	}
}

// Search is SearchLeadingZeroes with cancellation and an optional parallel
// mode. Both modes report the lowest winning step and leave k at the winning
// value.
func Search(ctx context.Context, k *key.Key, zeroes int, options ...Option) (Result, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return Result{}, err
	}
	if cfg.workers == 1 {
		return sequential(ctx, k, zeroes, cfg.interval)
	}
	return parallel(ctx, k, zeroes, cfg)
}

func sequential(ctx context.Context, k *key.Key, zeroes int, interval int) (Result, error) {
	steps := 0
	for {
		if steps%interval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if err := k.Increment(); err != nil {
			return Result{}, err
		}
		steps++
		d := k.Digest()
		if md5.StartsWithZeroes(d, zeroes) {
			log.Debugw("found key", "steps", steps, "key", k.String(), "digest", d.String())
			return Result{Steps: steps, Key: k.Bytes(), Digest: d}, nil
		}
	}
}

// parallel hands out disjoint batches of consecutive steps. A worker that finds
// a winner lowers best, and no batch starting at or after best is processed, so
// every step below the final best has been tested by the time workers exit.
func parallel(ctx context.Context, k *key.Key, zeroes int, cfg config) (Result, error) {
	if err := k.Clone().Increment(); err != nil {
		return Result{}, err
	}

	batch := int64(cfg.batch)
	next := atomic.NewInt64(-1)
	best := atomic.NewInt64(math.MaxInt64)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.workers; w++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return err
				}
				start := next.Inc() * batch
				if start >= best.Load() {
					return nil
				}
				candidate := k.Clone()
				if err := candidate.Add(uint64(start)); err != nil {
					return err
				}
				for i := int64(1); i <= batch; i++ {
					if err := candidate.Increment(); err != nil {
						return err
					}
					if md5.StartsWithZeroes(candidate.Digest(), zeroes) {
						lower(best, start+i)
						log.Debugw("worker found key", "worker", w, "steps", start+i, "key", candidate.String())
						break
					}
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	steps := best.Load()
	if err := k.Add(uint64(steps)); err != nil {
		return Result{}, err
	}
	d := k.Digest()
	log.Debugw("found key", "steps", steps, "workers", cfg.workers, "key", k.String(), "digest", d.String())
	return Result{Steps: int(steps), Key: k.Bytes(), Digest: d}, nil
}

func lower(best *atomic.Int64, v int64) {
	for {
		cur := best.Load()
		if v >= cur || best.CompareAndSwap(cur, v) {
			return
		}
	}
}
