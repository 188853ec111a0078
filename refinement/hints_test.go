/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package refinement

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/exergylab/discovery/rubric"
)

type draft map[string]float64

func draftRubric() *rubric.Rubric[draft] {
	item := func(id string, points float64) rubric.Item[draft] {
		return rubric.Item[draft]{
			ID:            id,
			Description:   "criterion " + id,
			Points:        points,
			PassCondition: "earn 70% of " + id,
			AutomatedValidation: func(d draft) rubric.ItemScore {
				return rubric.ItemScore{Points: d[id], Reasoning: id + " reasoning"}
			},
		}
	}
	return &rubric.Rubric[draft]{
		ID:               "draft",
		SuccessThreshold: 7,
		Items:            []rubric.Item[draft]{item("A", 2), item("B", 3), item("C", 3), item("D", 2)},
	}
}

func judged(d draft) *Iteration[draft] {
	return &Iteration[draft]{
		Number:    2,
		Output:    d,
		Judgement: rubric.NewJudge[draft]().Judge(context.Background(), "p", d, draftRubric()),
	}
}

func ids(fcs []FailedCriterion) []string {
	out := make([]string, 0, len(fcs))
	for _, fc := range fcs {
		out = append(out, fc.ID)
	}
	return out
}

func TestNormalHints(t *testing.T) {
	// A 1/2, B 0.5/3, C 2/3 fall short of their bars; D passes.
	prev := judged(draft{"A": 1, "B": 0.5, "C": 2, "D": 2})
	h := normalHints(prev)

	if diff := cmp.Diff([]string{"C", "A", "B"}, ids(h.FailedCriteria)); diff != "" {
		t.Errorf("FailedCriteria order (-want +got):\n%s", diff)
	}
	if h.PreviousScore != 5.5 {
		t.Errorf("PreviousScore: got = %v, wanted = 5.5", h.PreviousScore)
	}
	if h.Iteration != 2 {
		t.Errorf("Iteration: got = %d, wanted = 2", h.Iteration)
	}
	if h.FinalAttempt {
		t.Error("FinalAttempt: got = true, wanted = false")
	}
	if h.SpecificGuidance != prev.Judgement.IterationHint {
		t.Errorf("SpecificGuidance: got = %q, wanted the judge's hint", h.SpecificGuidance)
	}
	if len(h.Recommendations) != 3 {
		t.Errorf("Recommendations: got = %d, wanted = 3", len(h.Recommendations))
	}
}

func TestNormalHintsStableForEqualCredit(t *testing.T) {
	prev := judged(draft{"A": 1, "B": 1, "C": 1, "D": 1})
	h := normalHints(prev)
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, ids(h.FailedCriteria)); diff != "" {
		t.Errorf("FailedCriteria order (-want +got):\n%s", diff)
	}
}

func TestAggressiveHints(t *testing.T) {
	tests := []struct {
		name    string
		draft   draft
		wantIDs []string
	}{{
		name:    "heaviest failed criterion",
		draft:   draft{"A": 0, "B": 3, "C": 0, "D": 0},
		wantIDs: []string{"C"},
	}, {
		name:    "tie goes to rubric order",
		draft:   draft{"A": 0, "B": 0, "C": 0, "D": 0},
		wantIDs: []string{"B"},
	}, {
		name:    "light items only",
		draft:   draft{"A": 1, "B": 3, "C": 3, "D": 0},
		wantIDs: []string{"A"},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := aggressiveHints(judged(tt.draft))
			if diff := cmp.Diff(tt.wantIDs, ids(h.FailedCriteria)); diff != "" {
				t.Errorf("FailedCriteria (-want +got):\n%s", diff)
			}
			if !h.FinalAttempt {
				t.Error("FinalAttempt: got = false, wanted = true")
			}
			if !strings.Contains(h.SpecificGuidance, "FINAL ATTEMPT") {
				t.Errorf("SpecificGuidance: got = %q", h.SpecificGuidance)
			}
		})
	}
}

func TestAggressiveHintsNoFailedItems(t *testing.T) {
	// Every item passes individually but the rubric threshold is out of reach.
	r := draftRubric()
	r.SuccessThreshold = 11
	d := draft{"A": 2, "B": 3, "C": 3, "D": 2}
	prev := &Iteration[draft]{Number: 1, Output: d, Judgement: rubric.NewJudge[draft]().Judge(context.Background(), "p", d, r)}

	h := aggressiveHints(prev)
	if len(h.FailedCriteria) != 0 {
		t.Errorf("FailedCriteria: got = %v, wanted none", h.FailedCriteria)
	}
	if !h.FinalAttempt || h.SpecificGuidance == "" {
		t.Errorf("got %+v, wanted final attempt with guidance", h)
	}
}

func TestHintsString(t *testing.T) {
	var nilHints *Hints
	if got := nilHints.String(); got != "" {
		t.Errorf("nil String(): got = %q, wanted empty", got)
	}

	h := aggressiveHints(judged(draft{}))
	s := h.String()
	for _, want := range []string{"iteration 2", "FINAL attempt", "B criterion B"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, wanted it to contain %q", s, want)
		}
	}
}
