package mine

import "github.com/storacha/go-keyminer/core/failure"

// DefaultBatchSize is the number of consecutive steps a parallel worker claims
// at once.
const DefaultBatchSize = 4096

// DefaultCheckInterval is the number of steps between context checks in
// sequential mode.
const DefaultCheckInterval = 1 << 14

// Option is an option configuring a search.
type Option func(cfg *config) error

type config struct {
	workers  int
	batch    int
	interval int
}

// WithWorkers sets the number of parallel workers. One worker (the default)
// runs the deterministic sequential loop on the caller's goroutine.
func WithWorkers(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return failure.NewInvalidArgumentError("workers", "must be at least 1, got %d", n)
		}
		cfg.workers = n
		return nil
	}
}

// WithBatchSize sets how many steps a parallel worker claims per batch.
func WithBatchSize(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return failure.NewInvalidArgumentError("batch", "must be at least 1, got %d", n)
		}
		cfg.batch = n
		return nil
	}
}

// WithCheckInterval sets how many sequential steps run between context checks.
func WithCheckInterval(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return failure.NewInvalidArgumentError("interval", "must be at least 1, got %d", n)
		}
		cfg.interval = n
		return nil
	}
}

func newConfig(options ...Option) (config, error) {
	cfg := config{workers: 1, batch: DefaultBatchSize, interval: DefaultCheckInterval}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}
