/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package refinement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/rubric"
)

// Generator produces a candidate output. Hints are nil on the first call.
// It is the only place model or tool invocation happens.
type Generator[T any] func(ctx context.Context, hints *Hints) (T, error)

// StopReason says why a refinement run ended.
type StopReason string

const (
	StopPassed    StopReason = "passed"
	StopStalled   StopReason = "stalled"
	StopExhausted StopReason = "exhausted"
	StopTimeout   StopReason = "timeout"
	StopCancelled StopReason = "cancelled"
)

// Iteration is one judged attempt. It is not modified after it is recorded.
type Iteration[T any] struct {
	// Number is 1-based. The focused retry after a stall skips ahead to i+2.
	Number     int               `json:"number"`
	Output     T                 `json:"output"`
	Judgement  *rubric.Result[T] `json:"judgement"`
	Hints      *Hints            `json:"hints,omitempty"`
	Duration   time.Duration     `json:"duration"`
	Aggressive bool              `json:"aggressive,omitempty"`
}

// Score returns the iteration's total rubric score.
func (it *Iteration[T]) Score() float64 {
	return it.Judgement.TotalScore
}

// Result is the outcome of a refinement run.
type Result[T any] struct {
	// FinalOutput and FinalScore belong to the best-scoring iteration, which
	// need not be the last one.
	FinalOutput T       `json:"final_output"`
	FinalScore  float64 `json:"final_score"`

	Iterations []Iteration[T] `json:"iterations"`

	// Passed is FinalScore >= the rubric's success threshold.
	Passed bool `json:"passed"`

	// ImprovementPath holds the score of every recorded iteration, in order.
	ImprovementPath []float64 `json:"improvement_path"`

	TotalDuration time.Duration `json:"total_duration"`

	// BestIteration is the Number of the best iteration, or 0 if no
	// iteration produced an output.
	BestIteration int `json:"best_iteration"`

	StopReason StopReason `json:"stop_reason"`
}

// Best returns the best-scoring iteration.
func (r *Result[T]) Best() (*Iteration[T], bool) {
	for i := range r.Iterations {
		if r.Iterations[i].Number == r.BestIteration {
			return &r.Iterations[i], true
		}
	}
	return nil, false
}

// Judgement returns the judgement of the best iteration, or nil.
func (r *Result[T]) Judgement() *rubric.Result[T] {
	if best, ok := r.Best(); ok {
		return best.Judgement
	}
	return nil
}

// Engine runs generate-judge-regenerate loops against a rubric.
type Engine[T any] struct {
	judge *rubric.Judge[T]

	maxIterations        int
	improvementThreshold float64
	timeout              time.Duration
	earlyStopOnPass      bool

	observer evals.Observer
	metrics  *metrics.Refinement
}

// New creates an Engine that scores candidates with judge.
func New[T any](judge *rubric.Judge[T], opts ...Option[T]) (*Engine[T], error) {
	if judge == nil {
		return nil, errors.New("judge cannot be nil")
	}
	e := &Engine[T]{
		judge:                judge,
		improvementThreshold: DefaultImprovementThreshold,
		timeout:              DefaultTimeout,
		earlyStopOnPass:      true,
		observer:             evals.Nop{},
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	if e.metrics == nil {
		e.metrics = metrics.NewRefinement("exergylab.discovery")
	}
	return e, nil
}

func (e *Engine[T]) iterationsFor(r *rubric.Rubric[T]) int {
	switch {
	case e.maxIterations > 0:
		return e.maxIterations
	case r.MaxIterations > 0:
		return r.MaxIterations
	default:
		return DefaultMaxIterations
	}
}

// RefineUntilPass generates and judges candidates until one passes, the run
// stalls, the iteration budget is spent or the timeout elapses. It always
// returns a result built from the best iteration seen. Generator errors are
// logged and consume an iteration.
func (e *Engine[T]) RefineUntilPass(ctx context.Context, problem string, gen Generator[T], r *rubric.Rubric[T]) *Result[T] {
	start := time.Now()
	maxIter := e.iterationsFor(r)

	ctx, span := otel.Tracer("exergylab.discovery.refinement").Start(ctx, "refinement.run",
		oteltrace.WithAttributes(
			attribute.String("rubric.id", r.ID),
			attribute.String("rubric.phase", r.Phase),
			attribute.Int("refinement.max_iterations", maxIter),
		))
	defer span.End()

	log := clog.FromContext(ctx).With("rubric", r.ID)
	ctx = clog.WithLogger(ctx, log)

	var (
		history   []Iteration[T]
		best      = -1
		bestScore = 0.0
		prevScore float64
		havePrev  bool
		stop      = StopExhausted
	)
	track := func(it Iteration[T]) {
		history = append(history, it)
		if it.Score() > bestScore {
			best, bestScore = len(history)-1, it.Score()
		}
	}

loop:
	for i := 0; i < maxIter; i++ {
		if ctx.Err() != nil {
			stop = StopCancelled
			break
		}
		if time.Since(start) > e.timeout {
			log.Infof("refinement timed out after %v", time.Since(start))
			stop = StopTimeout
			break
		}

		var hints *Hints
		if i > 0 && len(history) > 0 {
			hints = normalHints(&history[len(history)-1])
		}

		it, err := e.attempt(ctx, problem, gen, r, i+1, hints, false)
		if err != nil {
			log.Warnf("iteration %d: generation failed: %v", i+1, err)
			e.observer.Fail(fmt.Sprintf("iteration %d: %v", i+1, err))
			continue
		}
		track(it)
		score := it.Score()

		if it.Judgement.Passed && e.earlyStopOnPass {
			stop = StopPassed
			break
		}

		if havePrev {
			improvement := score - prevScore
			if improvement < e.improvementThreshold && score < r.Threshold() {
				log.Infof("iteration %d stalled: improvement %.2f < %.2f", i+1, improvement, e.improvementThreshold)
				stop = StopStalled
				if i < maxIter-1 {
					ait, err := e.attempt(ctx, problem, gen, r, i+2, aggressiveHints(&it), true)
					if err != nil {
						log.Warnf("final attempt: generation failed: %v", err)
						e.observer.Fail(fmt.Sprintf("final attempt: %v", err))
					} else {
						track(ait)
					}
				}
				break loop
			}
		}
		prevScore, havePrev = score, true
	}

	res := &Result[T]{
		Iterations:      history,
		ImprovementPath: make([]float64, 0, len(history)),
		StopReason:      stop,
	}
	for _, it := range history {
		res.ImprovementPath = append(res.ImprovementPath, it.Score())
	}
	// Every score was zero: the first iteration stands in as best.
	if best < 0 && len(history) > 0 {
		best = 0
	}
	if best >= 0 {
		res.FinalOutput = history[best].Output
		res.FinalScore = history[best].Score()
		res.BestIteration = history[best].Number
		res.Passed = res.FinalScore >= r.Threshold()
	}
	res.TotalDuration = time.Since(start)

	if !res.Passed {
		e.observer.Fail(fmt.Sprintf("best score %.2f below threshold %.2f (%s)", res.FinalScore, r.Threshold(), stop))
	}
	e.metrics.RecordRun(ctx, r.ID, string(stop), res.Passed, res.TotalDuration)
	span.SetAttributes(
		attribute.Float64("refinement.final_score", res.FinalScore),
		attribute.Bool("refinement.passed", res.Passed),
		attribute.Int("refinement.iterations", len(history)),
		attribute.String("refinement.stop_reason", string(stop)),
	)
	log.Infof("refinement finished: score=%.2f passed=%t iterations=%d best=%d stop=%s",
		res.FinalScore, res.Passed, len(history), res.BestIteration, stop)
	return res
}

// attempt runs the generator once and judges its output.
func (e *Engine[T]) attempt(ctx context.Context, problem string, gen Generator[T], r *rubric.Rubric[T], number int, hints *Hints, aggressive bool) (Iteration[T], error) {
	ctx = agenttrace.Update(ctx, func(ec *agenttrace.ExecutionContext) {
		ec.Iteration = number
		ec.Aggressive = aggressive
	})

	began := time.Now()
	out, err := gen(ctx, hints)
	if err != nil {
		return Iteration[T]{}, err
	}
	judgement := e.judge.Judge(ctx, problem, out, r)

	it := Iteration[T]{
		Number:     number,
		Output:     out,
		Judgement:  judgement,
		Hints:      hints,
		Duration:   time.Since(began),
		Aggressive: aggressive,
	}

	e.observer.Increment()
	e.observer.Grade(judgement.TotalScore/rubric.TotalPoints, judgement.IterationHint)
	e.metrics.RecordIteration(ctx, r.ID, judgement.TotalScore, aggressive)
	clog.FromContext(ctx).With("iteration", number, "aggressive", aggressive).
		Infof("iteration judged: score=%.2f passed=%t", judgement.TotalScore, judgement.Passed)
	return it, nil
}
