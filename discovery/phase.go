/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/discovery/rubrics"
	"github.com/exergylab/discovery/refinement"
	"github.com/exergylab/discovery/rubric"
)

type phaseFunc[T any] func(context.Context, *model.State, *refinement.Hints) (T, error)

// refine runs a rubric phase through the refinement engine.
func refine[T any](ctx context.Context, o *Orchestrator, r *run, phase model.Phase, rb *rubric.Rubric[T], gen phaseFunc[T]) (T, PhaseResult) {
	var zero T
	obs, collector := observerFor[T](o, r, phase)

	engine, err := refinement.New(newJudge[T](o), engineOptions[T](o, obs)...)
	if err != nil {
		return zero, PhaseResult{RubricID: rb.ID, Notes: []string{err.Error()}}
	}
	res := engine.RefineUntilPass(ctx, r.state.Query, func(ctx context.Context, hints *refinement.Hints) (T, error) {
		return gen(ctx, r.state, hints)
	}, rb)

	pr := PhaseResult{
		RubricID:        rb.ID,
		Score:           res.FinalScore,
		Passed:          res.Passed,
		Iterations:      len(res.Iterations),
		BestIteration:   res.BestIteration,
		StopReason:      res.StopReason,
		ImprovementPath: res.ImprovementPath,
		Notes:           collector.Failures(),
		Duration:        res.TotalDuration,
	}
	if j := res.Judgement(); j != nil {
		pr.Recommendations = j.Recommendations
	}
	return res.FinalOutput, pr
}

// assess generates a phase once and scores it with a heuristic. A phase
// passes at the same share of the total as a rubric phase.
func assess[T any](ctx context.Context, o *Orchestrator, r *run, phase model.Phase, gen phaseFunc[T], score func(T) rubrics.Assessment) (T, PhaseResult) {
	var zero T
	start := time.Now()
	obs, collector := observerFor[T](o, r, phase)

	ctx = agenttrace.Update(ctx, func(ec *agenttrace.ExecutionContext) { ec.Iteration = 1 })
	out, err := gen(ctx, r.state, nil)
	if err != nil {
		clog.FromContext(ctx).Warnf("%s generation failed: %v", phase, err)
		obs.Fail(err.Error())
		return zero, PhaseResult{
			StopReason:      refinement.StopExhausted,
			ImprovementPath: []float64{},
			Notes:           collector.Failures(),
			Duration:        time.Since(start),
		}
	}

	a := score(out)
	obs.Increment()
	obs.Grade(a.Score/rubric.TotalPoints, strings.Join(a.Notes, "; "))

	pr := PhaseResult{
		Score:           a.Score,
		Passed:          a.Score >= rubric.TotalPoints*rubric.PassFraction,
		Iterations:      1,
		BestIteration:   1,
		StopReason:      refinement.StopExhausted,
		ImprovementPath: []float64{a.Score},
		Notes:           a.Notes,
		Duration:        time.Since(start),
	}
	if pr.Passed {
		pr.StopReason = refinement.StopPassed
	}
	return out, pr
}

// selectLead judges every hypothesis on its own and returns the best one.
// The earliest hypothesis wins ties.
func (o *Orchestrator) selectLead(ctx context.Context, st *model.State, res *PhaseResult) *model.Hypothesis {
	if st.Hypotheses == nil || len(st.Hypotheses.Hypotheses) == 0 {
		return nil
	}
	hs := st.Hypotheses.Hypotheses
	if len(hs) == 1 {
		lead := hs[0]
		return &lead
	}

	candidates := make([]*model.HypothesisSet, 0, len(hs))
	for _, h := range hs {
		candidates = append(candidates, &model.HypothesisSet{Hypotheses: []model.Hypothesis{h}})
	}
	scores := newJudge[*model.HypothesisSet](o).JudgeBatch(ctx, st.Query, candidates, o.rubrics.Hypothesis)

	best := 0
	for i, s := range scores {
		if s.TotalScore > scores[best].TotalScore {
			best = i
		}
	}
	lead := hs[best]
	res.Notes = append(res.Notes, fmt.Sprintf("lead hypothesis %s scored %.2f on its own", lead.ID, scores[best].TotalScore))
	clog.FromContext(ctx).Infof("lead hypothesis %s of %d", lead.ID, len(hs))
	return &lead
}

// observerFor fans judged iterations of a phase out to progress events,
// Prometheus and the configured observer. The returned collector keeps the
// phase's failures for its result.
func observerFor[T any](o *Orchestrator, r *run, phase model.Phase) (evals.Observer, *evals.ResultCollector) {
	collector := evals.NewResultCollector(nil)
	return evals.Tee(
		&eventObserver{run: r, phase: phase},
		collector,
		evals.NewMetricsObserver[T](string(phase)),
		o.observer(phase),
	), collector
}

// eventObserver turns grades into iteration_judged events.
type eventObserver struct {
	evals.Nop
	run   *run
	phase model.Phase
	n     int
}

func (e *eventObserver) Increment() { e.n++ }

func (e *eventObserver) Total() int64 { return int64(e.n) }

func (e *eventObserver) Grade(score float64, reasoning string) {
	e.run.emit(Event{
		Kind:      EventIterationJudged,
		Phase:     e.phase,
		Iteration: e.n,
		Score:     score * rubric.TotalPoints,
		Progress:  progress(len(e.run.phases)),
		Message:   reasoning,
	})
}
