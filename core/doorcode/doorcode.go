// Package doorcode derives door passwords from a door ID by mining successive
// keys whose digests start with five zero hex digits.
package doorcode

import (
	"context"
	"fmt"

	logging "github.com/ipfs/go-log/v2"
	"github.com/storacha/go-keyminer/core/failure"
	"github.com/storacha/go-keyminer/core/key"
	"github.com/storacha/go-keyminer/core/md5"
	"github.com/storacha/go-keyminer/core/mine"
)

var log = logging.Logger("keyminer/doorcode")

const (
	DefaultLength = 8
	DefaultZeroes = 5
	blank         = '_'
	hexDigits     = "0123456789abcdef"
)

type Option func(cfg *config) error

type config struct {
	length   int
	zeroes   int
	progress func(string)
	mine     []mine.Option
}

// WithLength sets the password length. Positional passwords are limited to 16
// characters since a position is a single hex digit.
func WithLength(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > 16 {
			return failure.NewInvalidArgumentError("length", "must be between 1 and 16, got %d", n)
		}
		cfg.length = n
		return nil
	}
}

// WithZeroes sets the leading zero count a key must reach to yield a character.
func WithZeroes(n int) Option {
	return func(cfg *config) error {
		if n < 0 || n > md5.Digits-2 {
			return failure.NewInvalidArgumentError("zeroes", "must be between 0 and %d, got %d", md5.Digits-2, n)
		}
		cfg.zeroes = n
		return nil
	}
}

// WithProgress registers a callback that receives the partial password each
// time a character is filled in. Unknown characters are '_'.
func WithProgress(fn func(string)) Option {
	return func(cfg *config) error {
		cfg.progress = fn
		return nil
	}
}

// WithMineOptions passes options through to the underlying key searches.
func WithMineOptions(options ...mine.Option) Option {
	return func(cfg *config) error {
		cfg.mine = append(cfg.mine, options...)
		return nil
	}
}

func newConfig(options ...Option) (config, error) {
	cfg := config{length: DefaultLength, zeroes: DefaultZeroes}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// Password appends, for each mined key, the hex digit that directly follows the
// zero prefix.
func Password(ctx context.Context, doorID string, options ...Option) (string, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return "", err
	}

	k := key.New(doorID)
	password := make([]byte, 0, cfg.length)
	for len(password) < cfg.length {
		res, err := mine.Search(ctx, k, cfg.zeroes, cfg.mine...)
		if err != nil {
			return "", fmt.Errorf("mining password character %d: %w", len(password), err)
		}
		c, err := md5.HexDigit(res.Digest, cfg.zeroes+1)
		if err != nil {
			return "", err
		}
		password = append(password, hexDigits[c])
		log.Debugw("password character", "key", string(res.Key), "password", string(password))
		if cfg.progress != nil {
			cfg.progress(pad(password, cfg.length))
		}
	}
	return string(password), nil
}

// PositionalPassword uses the digit after the zero prefix as a position and the
// one after it as the character. Out of range and already filled positions are
// skipped.
func PositionalPassword(ctx context.Context, doorID string, options ...Option) (string, error) {
	cfg, err := newConfig(options...)
	if err != nil {
		return "", err
	}

	k := key.New(doorID)
	password := make([]byte, cfg.length)
	for i := range password {
		password[i] = blank
	}
	for filled := 0; filled < cfg.length; {
		res, err := mine.Search(ctx, k, cfg.zeroes, cfg.mine...)
		if err != nil {
			return "", fmt.Errorf("mining positional password: %w", err)
		}
		pos, err := md5.HexDigit(res.Digest, cfg.zeroes+1)
		if err != nil {
			return "", err
		}
		if int(pos) >= cfg.length || password[pos] != blank {
			continue
		}
		c, err := md5.HexDigit(res.Digest, cfg.zeroes+2)
		if err != nil {
			return "", err
		}
		password[pos] = hexDigits[c]
		filled++
		log.Debugw("password position", "key", string(res.Key), "position", pos, "password", string(password))
		if cfg.progress != nil {
			cfg.progress(string(password))
		}
	}
	return string(password), nil
}

func pad(password []byte, length int) string {
	out := make([]byte, length)
	for i := range out {
		if i < len(password) {
			out[i] = password[i]
		} else {
			out[i] = blank
		}
	}
	return string(out)
}
