/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"errors"
	"time"

	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/agents/judge"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/refinement"
	"github.com/exergylab/discovery/rubric"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithJudge grades rubric items that have no automated scorer with j.
// Without a judge those items score zero.
func WithJudge(j judge.Interface) Option {
	return func(o *Orchestrator) error {
		if j == nil {
			return errors.New("judge cannot be nil")
		}
		o.external = j
		return nil
	}
}

// WithMaxIterations overrides the iteration bound of every rubric.
func WithMaxIterations(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			return errors.New("max iterations must be at least 1")
		}
		o.maxIterations = n
		return nil
	}
}

// WithImprovementThreshold sets the stall threshold of every phase.
func WithImprovementThreshold(threshold float64) Option {
	return func(o *Orchestrator) error {
		if threshold < 0 {
			return errors.New("improvement threshold must be non-negative")
		}
		o.improvementThreshold = threshold
		return nil
	}
}

// WithPhaseTimeout bounds the refinement of each phase.
func WithPhaseTimeout(d time.Duration) Option {
	return func(o *Orchestrator) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		o.timeout = d
		return nil
	}
}

// WithEarlyStopOnPass controls whether a phase stops at its first passing
// iteration.
func WithEarlyStopOnPass(stop bool) Option {
	return func(o *Orchestrator) error {
		o.earlyStopOnPass = stop
		return nil
	}
}

// WithStrictRubrics makes New fail on structurally invalid rubrics instead
// of logging a warning.
func WithStrictRubrics(strict bool) Option {
	return func(o *Orchestrator) error {
		o.strict = strict
		return nil
	}
}

// WithJudgeConcurrency bounds how many hypotheses are ranked at once.
func WithJudgeConcurrency(n int) Option {
	return func(o *Orchestrator) error {
		if n < 1 {
			return errors.New("judge concurrency must be at least 1")
		}
		o.concurrency = n
		return nil
	}
}

// WithObserver additionally reports every judged iteration to obs.
func WithObserver(obs evals.Observer) Option {
	return func(o *Orchestrator) error {
		if obs == nil {
			return errors.New("observer cannot be nil")
		}
		o.observer = func(model.Phase) evals.Observer { return obs }
		return nil
	}
}

// WithPhaseObservers reports the judged iterations of each phase to the
// observer factory returns for it, for example a child of an
// evals.NamespacedObserver.
func WithPhaseObservers(factory func(model.Phase) evals.Observer) Option {
	return func(o *Orchestrator) error {
		if factory == nil {
			return errors.New("observer factory cannot be nil")
		}
		o.observer = factory
		return nil
	}
}

// WithMetrics records refinement iterations on m.
func WithMetrics(m *metrics.Refinement) Option {
	return func(o *Orchestrator) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		o.metrics = m
		return nil
	}
}

func engineOptions[T any](o *Orchestrator, obs evals.Observer) []refinement.Option[T] {
	opts := []refinement.Option[T]{
		refinement.WithImprovementThreshold[T](o.improvementThreshold),
		refinement.WithTimeout[T](o.timeout),
		refinement.WithEarlyStopOnPass[T](o.earlyStopOnPass),
		refinement.WithObserver[T](obs),
		refinement.WithMetrics[T](o.metrics),
	}
	if o.maxIterations > 0 {
		opts = append(opts, refinement.WithMaxIterations[T](o.maxIterations))
	}
	return opts
}

func newJudge[T any](o *Orchestrator) *rubric.Judge[T] {
	opts := []rubric.Option[T]{rubric.WithConcurrency[T](o.concurrency)}
	if o.external != nil {
		opts = append(opts, rubric.WithExternalJudge[T](judge.NewItemJudge[T](o.external)))
	}
	return rubric.NewJudge(opts...)
}
