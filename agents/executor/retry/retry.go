/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package retry retries model calls that fail with quota or transient
// server errors, backing off exponentially with jitter.
package retry

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config configures retry behavior.
type Config struct {
	// MaxRetries is the number of retries after the first attempt. 0 disables retrying.
	MaxRetries int
	// BaseBackoff is the delay before the first retry. It doubles on each retry.
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential delay.
	MaxBackoff time.Duration
	// MaxJitter is the upper bound of the random delay added to each backoff.
	MaxJitter time.Duration
}

// Validate checks that the configuration has no negative values.
func (c Config) Validate() error {
	var errs []error
	if c.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}
	if c.BaseBackoff < 0 {
		errs = append(errs, errors.New("base backoff cannot be negative"))
	}
	if c.MaxBackoff < 0 {
		errs = append(errs, errors.New("max backoff cannot be negative"))
	}
	if c.MaxJitter < 0 {
		errs = append(errs, errors.New("max jitter cannot be negative"))
	}
	return errors.Join(errs...)
}

// DefaultConfig returns a configuration suited to quota errors, which take
// longer to clear than ordinary transient failures.
func DefaultConfig() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Backoff returns the delay before retry number attempt (0-based), without jitter.
func (c Config) Backoff(attempt int) time.Duration {
	if attempt > 30 {
		return c.MaxBackoff
	}
	return min(c.BaseBackoff<<attempt, c.MaxBackoff)
}

func (c Config) jitter() time.Duration {
	if c.MaxJitter <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(c.MaxJitter)))
	if err != nil {
		return 0
	}
	return time.Duration(n.Int64())
}

// Do calls fn until it succeeds, returns an error isRetryable rejects, the
// retries are spent or ctx is done.
func Do[T any](ctx context.Context, cfg Config, operation string, isRetryable func(error) bool, fn func(context.Context) (T, error)) (T, error) {
	var (
		result  T
		lastErr error
	)
	log := clog.FromContext(ctx).With("operation", operation)

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		result, lastErr = fn(ctx)
		if lastErr == nil {
			return result, nil
		}
		if !isRetryable(lastErr) || attempt >= cfg.MaxRetries {
			break
		}

		wait := cfg.Backoff(attempt) + cfg.jitter()
		log.With("attempt", attempt+1, "max_retries", cfg.MaxRetries, "backoff", wait).
			Warnf("retryable error: %v", lastErr)

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(wait):
		}
	}

	if cfg.MaxRetries > 0 && isRetryable(lastErr) {
		return result, fmt.Errorf("%s failed after %d retries: %w", operation, cfg.MaxRetries, lastErr)
	}
	return result, lastErr
}

// Status reports whether an HTTP status code is worth retrying: rate
// limits, request timeouts and server-side failures.
func Status(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}
	return code >= 500 && code <= 599
}
