/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/rubric"
)

func TestRubricsAreValid(t *testing.T) {
	set, err := Load(context.Background(), true)
	if err != nil {
		t.Fatalf("Load(strict) = %v", err)
	}
	for _, r := range []interface{ Validate() error }{set.Research, set.Hypothesis, set.Experiment, set.Simulation, set.Validation} {
		if err := r.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	}
}

// robust runs every automated scorer of r against each input and checks the
// score stays in range with a reason attached.
func robust[T any](t *testing.T, r *rubric.Rubric[T], inputs map[string]T) {
	t.Helper()
	for name, in := range inputs {
		for _, item := range r.Items {
			if item.AutomatedValidation == nil {
				continue
			}
			t.Run(fmt.Sprintf("%s/%s/%s", r.ID, name, item.ID), func(t *testing.T) {
				s := item.AutomatedValidation(in)
				if s.Points < 0 || s.Points > item.Points {
					t.Errorf("points: got = %v, wanted within [0, %v]", s.Points, item.Points)
				}
				if s.Reasoning == "" {
					t.Error("reasoning: got empty, wanted an explanation")
				}
			})
		}
	}
}

func TestScorersTolerateMalformedInput(t *testing.T) {
	robust(t, Research(), map[string]*model.Research{
		"nil":   nil,
		"empty": {},
		"empty lists": {
			Sources:    []model.Source{},
			Benchmarks: []model.Metric{},
		},
	})
	robust(t, Hypothesis(), map[string]*model.HypothesisSet{
		"nil":        nil,
		"empty":      {},
		"blank item": {Hypotheses: []model.Hypothesis{{}}},
	})
	robust(t, Experiment(), map[string]*model.Experiment{
		"nil":   nil,
		"empty": {},
	})
	robust(t, Simulation(), map[string]*model.Simulation{
		"nil":   nil,
		"empty": {},
		"nan":   {UncertaintyPercent: model.Number(math.NaN())},
	})
	robust(t, Validation(), map[string]*model.Validation{
		"nil":          nil,
		"empty":        {},
		"blank claims": {Claims: []model.Claim{{}}, Checks: []model.Check{{}}},
	})
}

func quantified(n int, format string) model.Strings {
	out := make(model.Strings, 0, n)
	for i := range n {
		out = append(out, fmt.Sprintf(format, i+1))
	}
	return out
}

func goodResearch() *model.Research {
	r := &model.Research{
		Summary:     "Perovskite tandems",
		KeyFindings: quantified(5, "finding reports %d%% gain"),
		Gaps:        model.Strings{"stability", "lead toxicity", "scale-up"},
		Benchmarks: []model.Metric{
			{Name: "record PCE", Value: 33.9, Unit: "%"},
			{Name: "T80 lifetime", Value: 1000, Unit: "h"},
			{Name: "module cost", Value: 0.25, Unit: "USD/W"},
		},
	}
	kinds := []model.SourceKind{model.KindPaper, model.KindPatent, model.KindDataset}
	for i := range 20 {
		r.Sources = append(r.Sources, model.Source{Title: fmt.Sprintf("source %d", i), Kind: kinds[i%len(kinds)]})
	}
	return r
}

func goodHypotheses() *model.HypothesisSet {
	mechanism := "Passivating grain boundaries with a bulky ammonium cation suppresses nonradiative recombination and ion migration under illumination."
	var s model.HypothesisSet
	for i := range 3 {
		s.Hypotheses = append(s.Hypotheses, model.Hypothesis{
			ID:               fmt.Sprintf("H%d", i+1),
			Statement:        fmt.Sprintf("hypothesis %d", i+1),
			Mechanism:        mechanism,
			Predictions:      model.Strings{"Voc rises by 40 mV", "T80 exceeds 1000 h"},
			FalsifiableBy:    "no Voc change after passivation",
			NoveltyScore:     7,
			FeasibilityScore: 8,
			ImpactScore:      6,
		})
	}
	return &s
}

func TestRubricTotals(t *testing.T) {
	ctx := context.Background()
	score := func(got float64) float64 { return math.Round(got*1e6) / 1e6 }

	tests := []struct {
		name  string
		total func() float64
		want  float64
	}{{
		name: "complete research",
		total: func() float64 {
			return rubric.NewJudge[*model.Research]().Judge(ctx, "q", goodResearch(), Research()).TotalScore
		},
		want: 10,
	}, {
		name: "thin research",
		total: func() float64 {
			r := &model.Research{
				Sources:     []model.Source{{Title: "a", Kind: model.KindPaper}, {Title: "b", Kind: model.KindPaper}, {Title: "c"}, {Title: "d"}, {Title: "e"}},
				KeyFindings: model.Strings{"efficiency up to 25%", "works"},
				Gaps:        model.Strings{"stability"},
			}
			// R1 0.75, R2 0, R3 0.6, R4 0.5, R5 0.
			return rubric.NewJudge[*model.Research]().Judge(ctx, "q", r, Research()).TotalScore
		},
		want: 1.85,
	}, {
		name: "complete hypotheses",
		total: func() float64 {
			return rubric.NewJudge[*model.HypothesisSet]().Judge(ctx, "q", goodHypotheses(), Hypothesis()).TotalScore
		},
		want: 10,
	}, {
		name: "bare hypothesis",
		total: func() float64 {
			s := &model.HypothesisSet{Hypotheses: []model.Hypothesis{{Statement: "it works", Predictions: model.Strings{"more efficient"}}}}
			// Only H5 earns anything: one hypothesis.
			return rubric.NewJudge[*model.HypothesisSet]().Judge(ctx, "q", s, Hypothesis()).TotalScore
		},
		want: 0.5,
	}, {
		name: "partial experiment",
		total: func() float64 {
			e := &model.Experiment{
				Variables:        model.Variables{Independent: model.Strings{"anneal temperature"}},
				Procedure:        model.Strings{"1", "2", "3", "4", "5"},
				Controls:         model.Strings{"untreated film"},
				ExpectedOutcomes: model.Strings{"PCE above 20%", "stable films"},
				EstimatedCostUSD: 5000,
			}
			// E1 2/3, E2 1.5, E3 0.75, E4 0, E5 0.6, E6 0.25.
			return rubric.NewJudge[*model.Experiment]().Judge(ctx, "q", e, Experiment()).TotalScore
		},
		want: score(2.0/3 + 1.5 + 0.75 + 0.6 + 0.25),
	}, {
		name: "simulation",
		total: func() float64 {
			s := &model.Simulation{
				Method:             "DFT (PBE)",
				Parameters:         []model.Metric{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}},
				Results:            []model.Metric{{Name: "gap", Value: 1.6, Unit: "eV"}, {Name: "mass", Value: 0.2, Unit: "m0"}, {Name: "Eb", Value: 30, Unit: "meV"}},
				Converged:          true,
				UncertaintyPercent: 5,
				Assumptions:        model.Strings{"0 K"},
				Limitations:        model.Strings{"no spin-orbit coupling"},
			}
			// S1 1.5, S2 1.2, S3 2.5, S4 2, S5 1.
			return rubric.NewJudge[*model.Simulation]().Judge(ctx, "q", s, Simulation()).TotalScore
		},
		want: 8.2,
	}, {
		name: "validation without external judgment",
		total: func() float64 {
			v := &model.Validation{
				Claims: []model.Claim{
					{Statement: "tandem-free cell at 30%", Value: 30, Unit: "%", Limit: "shockley_queisser"},
					{Statement: "rotor Cp of 0.65", Value: 0.65, Limit: "betz"},
					{Statement: "cheap", Limit: "cost"},
				},
				Checks: []model.Check{{Name: "a", Passed: true}, {Name: "b", Passed: true}, {Name: "c", Passed: true}, {Name: "d"}},
				Risks:  model.Strings{"lead leakage", "supply"},
			}
			// V1 1.5, V2 2, V3 1.125, V4 0.75, V5 unjudged.
			return rubric.NewJudge[*model.Validation]().Judge(ctx, "q", v, Validation()).TotalScore
		},
		want: 5.375,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := score(tt.total()); got != tt.want {
				t.Errorf("TotalScore: got = %v, wanted = %v", got, tt.want)
			}
		})
	}
}

func TestVerdictNeedsExternalJudgment(t *testing.T) {
	res := rubric.NewJudge[*model.Validation]().Judge(context.Background(), "q", &model.Validation{Verdict: "plausible"}, Validation())
	s, ok := res.Score("V5")
	if !ok {
		t.Fatal("Score(V5) not found")
	}
	if s.Judged || s.Source != rubric.SourceUnjudged || s.Points != 0 {
		t.Errorf("V5: got = %+v, wanted an unjudged zero score", s)
	}
}

func TestCheckClaim(t *testing.T) {
	tests := []struct {
		name       string
		claim      model.Claim
		wantKnown  bool
		wantWithin bool
	}{{
		name:       "single junction below the limit",
		claim:      model.Claim{Value: 30, Unit: "%", Limit: "shockley_queisser"},
		wantKnown:  true,
		wantWithin: true,
	}, {
		name:      "single junction as a fraction above the limit",
		claim:     model.Claim{Value: 0.35, Limit: "shockley_queisser"},
		wantKnown: true,
	}, {
		name:       "betz at the limit",
		claim:      model.Claim{Value: 59.3, Unit: "%", Limit: "betz"},
		wantKnown:  true,
		wantWithin: true,
	}, {
		name:       "carnot within bound",
		claim:      model.Claim{Value: 45, Unit: "%", Limit: "carnot", HotK: 600, ColdK: 300},
		wantKnown:  true,
		wantWithin: true,
	}, {
		name:      "carnot beyond bound",
		claim:     model.Claim{Value: 55, Unit: "%", Limit: "Carnot", HotK: 600, ColdK: 300},
		wantKnown: true,
	}, {
		name:  "carnot without temperatures",
		claim: model.Claim{Value: 40, Unit: "%", Limit: "carnot"},
	}, {
		name:       "electrolysis above the reversible voltage",
		claim:      model.Claim{Value: 1.8, Unit: "V", Limit: "electrolysis_voltage"},
		wantKnown:  true,
		wantWithin: true,
	}, {
		name:      "electrolysis below the reversible voltage in millivolts",
		claim:     model.Claim{Value: 1100, Unit: "mV", Limit: "electrolysis_voltage"},
		wantKnown: true,
	}, {
		name:      "exergy efficiency over 100%",
		claim:     model.Claim{Value: 105, Unit: "%", Limit: "second_law"},
		wantKnown: true,
	}, {
		name:  "no limit",
		claim: model.Claim{Value: 10},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckClaim(tt.claim)
			if got.Known != tt.wantKnown || got.Within != tt.wantWithin {
				t.Errorf("CheckClaim(): got = %+v, wanted known=%t within=%t", got, tt.wantKnown, tt.wantWithin)
			}
			if got.Reason == "" {
				t.Error("CheckClaim(): got an empty reason")
			}
		})
	}
}

func TestCarnotPercent(t *testing.T) {
	if got, ok := CarnotPercent(600, 300); !ok || got != 50 {
		t.Errorf("CarnotPercent(600, 300): got = %v, %t, wanted = 50, true", got, ok)
	}
	if _, ok := CarnotPercent(300, 600); ok {
		t.Error("CarnotPercent(300, 600): got = true, wanted = false")
	}
}
