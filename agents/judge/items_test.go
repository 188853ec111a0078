/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/exergylab/discovery/agents/judge"
	"github.com/exergylab/discovery/rubric"
)

type proposal struct {
	Statement string `json:"statement"`
}

type fakeJudge struct {
	requests []*judge.Request
	score    float64
	err      error
}

func (f *fakeJudge) Judge(_ context.Context, r *judge.Request) (*judge.Judgement, error) {
	f.requests = append(f.requests, r)
	if f.err != nil {
		return nil, f.err
	}
	return &judge.Judgement{
		Mode:        r.Mode,
		Score:       f.score,
		Reasoning:   "mechanism is plausible",
		Suggestions: []string{"quantify the effect"},
	}, nil
}

var novelty = rubric.Item[*proposal]{
	ID:            "H2",
	Description:   "Novelty",
	Points:        4,
	PassCondition: "Differs from every cited prior approach",
	PartialConditions: []rubric.PartialCondition{
		{Condition: "Clearly new mechanism", Points: 3},
		{Condition: "Incremental variation", Points: 1},
	},
}

func proposalRubric() *rubric.Rubric[*proposal] {
	return &rubric.Rubric[*proposal]{
		ID:    "proposal-v1",
		Phase: "hypothesis",
		Items: []rubric.Item[*proposal]{
			novelty,
			{
				ID:          "H1",
				Description: "Statement present",
				Points:      6,
				AutomatedValidation: func(p *proposal) rubric.ItemScore {
					if p == nil || p.Statement == "" {
						return rubric.Missing(6, "no statement")
					}
					return rubric.Award(6, 1, "statement present")
				},
			},
		},
	}
}

func TestItemJudge(t *testing.T) {
	tests := []struct {
		name       string
		score      float64
		err        error
		wantPoints float64
		wantPassed bool
		wantSource rubric.Source
	}{{
		name:       "scales the score onto the item",
		score:      0.75,
		wantPoints: 3,
		wantPassed: true,
		wantSource: rubric.SourceExternal,
	}, {
		name:       "below the pass bar",
		score:      0.5,
		wantPoints: 2,
		wantSource: rubric.SourceExternal,
	}, {
		name:       "judge failure scores zero",
		err:        errors.New("quota exhausted"),
		wantSource: rubric.SourceError,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeJudge{score: tt.score, err: tt.err}
			j := rubric.NewJudge(rubric.WithExternalJudge[*proposal](judge.NewItemJudge[*proposal](fake)))

			res := j.Judge(context.Background(), "cheaper green hydrogen", &proposal{Statement: "Ni-Fe anodes"}, proposalRubric())

			s, ok := res.Score("H2")
			if !ok {
				t.Fatal("no score for H2")
			}
			if s.Points != tt.wantPoints {
				t.Errorf("Points: got = %v, wanted = %v", s.Points, tt.wantPoints)
			}
			if s.Passed != tt.wantPassed {
				t.Errorf("Passed: got = %v, wanted = %v", s.Passed, tt.wantPassed)
			}
			if s.Source != tt.wantSource {
				t.Errorf("Source: got = %v, wanted = %v", s.Source, tt.wantSource)
			}
			if res.TotalScore != 6+tt.wantPoints {
				t.Errorf("TotalScore: got = %v, wanted = %v", res.TotalScore, 6+tt.wantPoints)
			}

			// Only the item without an automated scorer is sent out.
			if len(fake.requests) != 1 {
				t.Fatalf("requests: got = %d, wanted = 1", len(fake.requests))
			}
			req := fake.requests[0]
			if req.Mode != judge.StandaloneMode || req.Problem != "cheaper green hydrogen" {
				t.Errorf("request: got = %+v", req)
			}
			if !strings.Contains(req.ActualAnswer, `"statement": "Ni-Fe anodes"`) {
				t.Errorf("ActualAnswer: got = %q, wanted the encoded candidate", req.ActualAnswer)
			}
			if tt.err == nil && !strings.Contains(s.Reasoning, "Suggestions: quantify the effect") {
				t.Errorf("Reasoning: got = %q, wanted the suggestions", s.Reasoning)
			}
		})
	}
}

func TestCriterion(t *testing.T) {
	want := `H2: Novelty
Passes when: Differs from every cited prior approach
Partial credit:
- Clearly new mechanism (0.75 of the score)
- Incremental variation (0.25 of the score)`
	if got := judge.Criterion(novelty); got != want {
		t.Errorf("Criterion():\ngot:\n%s\nwanted:\n%s", got, want)
	}
}
