/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package refinement

import (
	"errors"
	"time"

	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/agents/metrics"
)

const (
	// DefaultMaxIterations is used when neither an option nor the rubric sets a bound.
	DefaultMaxIterations = 3

	// DefaultImprovementThreshold is the minimum score gain between consecutive
	// iterations before a run counts as stalled.
	DefaultImprovementThreshold = 0.5

	// DefaultTimeout is the wall-clock ceiling checked between iterations.
	DefaultTimeout = 5 * time.Minute
)

// Option configures an Engine.
type Option[T any] func(*Engine[T]) error

// WithMaxIterations bounds the number of iterations. When unset, the rubric's
// MaxIterations applies, and DefaultMaxIterations after that.
func WithMaxIterations[T any](n int) Option[T] {
	return func(e *Engine[T]) error {
		if n < 1 {
			return errors.New("max iterations must be at least 1")
		}
		e.maxIterations = n
		return nil
	}
}

// WithImprovementThreshold sets the minimum per-iteration gain below which a
// failing run is considered stalled.
func WithImprovementThreshold[T any](threshold float64) Option[T] {
	return func(e *Engine[T]) error {
		if threshold < 0 {
			return errors.New("improvement threshold must be non-negative")
		}
		e.improvementThreshold = threshold
		return nil
	}
}

// WithTimeout sets the wall-clock ceiling. It is checked only between
// iterations, so a slow generator call can overrun it.
func WithTimeout[T any](d time.Duration) Option[T] {
	return func(e *Engine[T]) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		e.timeout = d
		return nil
	}
}

// WithEarlyStopOnPass controls whether the loop returns as soon as an
// iteration passes.
func WithEarlyStopOnPass[T any](stop bool) Option[T] {
	return func(e *Engine[T]) error {
		e.earlyStopOnPass = stop
		return nil
	}
}

// WithObserver reports every judged iteration to obs.
func WithObserver[T any](obs evals.Observer) Option[T] {
	return func(e *Engine[T]) error {
		if obs == nil {
			return errors.New("observer cannot be nil")
		}
		e.observer = obs
		return nil
	}
}

// WithMetrics records iterations and runs on the given instruments.
func WithMetrics[T any](m *metrics.Refinement) Option[T] {
	return func(e *Engine[T]) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		e.metrics = m
		return nil
	}
}
