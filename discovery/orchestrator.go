/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/agents/judge"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/discovery/generate"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/discovery/rubrics"
	"github.com/exergylab/discovery/refinement"
)

const tracerName = "exergylab.discovery"

// Generators produces the output of every phase from the state of the run
// so far and, on later iterations, the judge's feedback.
type Generators interface {
	Research(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Research, error)
	Hypotheses(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.HypothesisSet, error)
	Experiment(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Experiment, error)
	Simulation(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Simulation, error)
	Exergy(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Exergy, error)
	TEA(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.TEA, error)
	Validation(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Validation, error)
}

var _ Generators = (*generate.Generator)(nil)

const (
	MinQueryLength = 5
	MaxQueryLength = 500
)

// ErrInvalidQuery is returned for queries outside the accepted length.
var ErrInvalidQuery = errors.New("invalid query")

// Request starts a discovery.
type Request struct {
	Query       string            `json:"query"`
	Constraints map[string]string `json:"constraints,omitempty"`
	Domains     []string          `json:"domains,omitempty"`
}

// Validate checks the query length.
func (r Request) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(r.Query))
	if n < MinQueryLength || n > MaxQueryLength {
		return fmt.Errorf("%w: must be %d to %d characters, got %d", ErrInvalidQuery, MinQueryLength, MaxQueryLength, n)
	}
	return nil
}

// PhaseResult summarizes one phase of a run.
type PhaseResult struct {
	Phase    model.Phase `json:"phase"`
	RubricID string      `json:"rubric_id,omitempty"`

	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
	Weight float64 `json:"weight"`

	Iterations      int                   `json:"iterations"`
	BestIteration   int                   `json:"best_iteration"`
	StopReason      refinement.StopReason `json:"stop_reason"`
	ImprovementPath []float64             `json:"improvement_path"`

	Recommendations []string `json:"recommendations,omitempty"`

	// Notes collect failures and, for single-shot phases, the reasons behind
	// the score.
	Notes []string `json:"notes,omitempty"`

	Duration time.Duration `json:"duration"`
}

// Report is the outcome of a run.
type Report struct {
	ID           string        `json:"id,omitempty"`
	Query        string        `json:"query"`
	Phases       []PhaseResult `json:"phases"`
	OverallScore float64       `json:"overall_score"`
	Tier         Tier          `json:"tier"`

	Lead  *model.Hypothesis `json:"lead_hypothesis,omitempty"`
	State *model.State      `json:"state"`

	Duration time.Duration `json:"duration"`
}

// Phase returns the result of phase p.
func (r *Report) Phase(p model.Phase) (PhaseResult, bool) {
	for _, pr := range r.Phases {
		if pr.Phase == p {
			return pr, true
		}
	}
	return PhaseResult{}, false
}

// Orchestrator sequences the phases of a discovery.
type Orchestrator struct {
	gen     Generators
	rubrics *rubrics.Set

	external             judge.Interface
	maxIterations        int
	improvementThreshold float64
	timeout              time.Duration
	earlyStopOnPass      bool
	strict               bool
	concurrency          int

	observer func(model.Phase) evals.Observer
	metrics  *metrics.Refinement
}

// New creates an Orchestrator that produces phase outputs with gen.
func New(ctx context.Context, gen Generators, opts ...Option) (*Orchestrator, error) {
	if gen == nil {
		return nil, errors.New("generators cannot be nil")
	}
	o := &Orchestrator{
		gen:                  gen,
		improvementThreshold: refinement.DefaultImprovementThreshold,
		timeout:              refinement.DefaultTimeout,
		earlyStopOnPass:      true,
		observer:             func(model.Phase) evals.Observer { return evals.Nop{} },
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	if o.metrics == nil {
		o.metrics = metrics.NewRefinement(tracerName)
	}

	set, err := rubrics.Load(ctx, o.strict)
	if err != nil {
		return nil, fmt.Errorf("loading rubrics: %w", err)
	}
	o.rubrics = set
	return o, nil
}

// run is the mutable state of one call to Run.
type run struct {
	state  *model.State
	events chan<- Event
	phases []PhaseResult
}

func (r *run) emit(ev Event) {
	if r.events == nil {
		return
	}
	ev.Time = time.Now()
	r.events <- ev
}

// Run executes every phase in order and returns the report. A phase that
// fails scores zero and the run continues; only cancellation of ctx stops
// the run early, in which case a run_failed event is sent and the error
// returned.
func (o *Orchestrator) Run(ctx context.Context, req Request, events chan<- Event) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	id := agenttrace.GetExecutionContext(ctx).DiscoveryID

	ctx, span := otel.Tracer(tracerName).Start(ctx, "discovery.run",
		oteltrace.WithAttributes(attribute.String("discovery.id", id)))
	defer span.End()

	log := clog.FromContext(ctx).With("discovery", id)
	ctx = clog.WithLogger(ctx, log)

	r := &run{
		state: &model.State{
			Query:       strings.TrimSpace(req.Query),
			Constraints: req.Constraints,
			Domains:     req.Domains,
		},
		events: events,
	}
	r.emit(Event{Kind: EventRunStarted, Message: r.state.Query})
	log.Infof("discovery started: %q", r.state.Query)

	for i, phase := range model.Phases {
		if err := ctx.Err(); err != nil {
			return nil, o.fail(ctx, span, r, phase, err)
		}
		r.emit(Event{Kind: EventPhaseStarted, Phase: phase, Progress: progress(i)})

		pctx := agenttrace.Update(ctx, func(ec *agenttrace.ExecutionContext) {
			ec.Phase = string(phase)
			ec.Iteration = 0
			ec.Aggressive = false
		})
		pctx = clog.WithLogger(pctx, log.With("phase", phase))
		res := o.runPhase(pctx, r, phase)
		if err := ctx.Err(); err != nil {
			return nil, o.fail(ctx, span, r, phase, err)
		}

		r.phases = append(r.phases, res)
		r.emit(Event{Kind: EventPhaseCompleted, Phase: phase, Progress: progress(i + 1), Score: res.Score, Result: &res})
		log.Infof("phase %s completed: score=%.2f passed=%t", phase, res.Score, res.Passed)
	}

	report := &Report{
		ID:           id,
		Query:        r.state.Query,
		Phases:       r.phases,
		OverallScore: OverallScore(r.phases),
		Lead:         r.state.Lead,
		State:        r.state,
		Duration:     time.Since(start),
	}
	report.Tier = TierFor(report.OverallScore)

	span.SetAttributes(
		attribute.Float64("discovery.overall_score", report.OverallScore),
		attribute.String("discovery.tier", string(report.Tier)),
	)
	log.Infof("discovery completed: score=%.2f tier=%s in %v", report.OverallScore, report.Tier, report.Duration)
	r.emit(Event{Kind: EventRunCompleted, Progress: 100, Score: report.OverallScore, Message: string(report.Tier), Report: report})
	return report, nil
}

func (o *Orchestrator) fail(ctx context.Context, span oteltrace.Span, r *run, phase model.Phase, cause error) error {
	err := fmt.Errorf("stopped at %s: %w", phase, cause)
	clog.WarnContextf(ctx, "discovery %v", err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	r.emit(Event{Kind: EventRunFailed, Phase: phase, Progress: progress(len(r.phases)), Message: err.Error()})
	return err
}

func (o *Orchestrator) runPhase(ctx context.Context, r *run, phase model.Phase) PhaseResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "discovery.phase",
		oteltrace.WithAttributes(attribute.String("discovery.phase", string(phase))))
	defer span.End()

	var (
		st  = r.state
		res PhaseResult
	)
	switch phase {
	case model.PhaseResearch:
		st.Research, res = refine(ctx, o, r, phase, o.rubrics.Research, o.gen.Research)
	case model.PhaseHypothesis:
		st.Hypotheses, res = refine(ctx, o, r, phase, o.rubrics.Hypothesis, o.gen.Hypotheses)
		st.Lead = o.selectLead(ctx, st, &res)
	case model.PhaseExperiment:
		st.Experiment, res = refine(ctx, o, r, phase, o.rubrics.Experiment, o.gen.Experiment)
	case model.PhaseSimulation:
		st.Simulation, res = refine(ctx, o, r, phase, o.rubrics.Simulation, o.gen.Simulation)
	case model.PhaseExergy:
		st.Exergy, res = assess(ctx, o, r, phase, o.gen.Exergy, rubrics.AssessExergy)
	case model.PhaseTEA:
		st.TEA, res = assess(ctx, o, r, phase, o.gen.TEA, rubrics.AssessTEA)
	case model.PhaseValidation:
		st.Validation, res = refine(ctx, o, r, phase, o.rubrics.Validation, o.gen.Validation)
	}
	res.Phase = phase
	res.Weight = Weight(phase)

	span.SetAttributes(
		attribute.Float64("discovery.phase.score", res.Score),
		attribute.Bool("discovery.phase.passed", res.Passed),
	)
	return res
}
