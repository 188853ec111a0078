/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"fmt"

	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/rubric"
)

var (
	sourceLadder = []rubric.Step{{Min: 20, Fraction: 1}, {Min: 15, Fraction: 0.75}, {Min: 10, Fraction: 0.5}, {Min: 5, Fraction: 0.25}}
	kindLadder   = []rubric.Step{{Min: 3, Fraction: 1}, {Min: 2, Fraction: 0.5}}
	fiveLadder   = []rubric.Step{{Min: 5, Fraction: 1}, {Min: 3, Fraction: 0.6}, {Min: 1, Fraction: 0.3}}
	threeLadder  = []rubric.Step{{Min: 3, Fraction: 1}, {Min: 2, Fraction: 0.5}, {Min: 1, Fraction: 0.25}}
)

// Research returns the rubric for the literature review.
func Research() *rubric.Rubric[*model.Research] {
	return &rubric.Rubric[*model.Research]{
		ID:               "research-v1",
		Name:             "Literature review",
		Phase:            string(model.PhaseResearch),
		Domain:           domain,
		SuccessThreshold: 7,
		MaxIterations:    3,
		Items: []rubric.Item[*model.Research]{{
			ID:            "R1",
			Description:   "Breadth of prior art",
			Points:        3,
			Category:      rubric.CategoryEvidence,
			PassCondition: "At least 20 distinct sources",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "At least 5 sources", Points: 0.75},
				{Condition: "At least 10 sources", Points: 0.75},
				{Condition: "At least 15 sources", Points: 0.75},
				{Condition: "At least 20 sources", Points: 0.75},
			},
			AutomatedValidation: func(r *model.Research) rubric.ItemScore {
				if r == nil {
					return rubric.Missing(3, "no research output")
				}
				return countScore(3, len(r.Sources), "sources", sourceLadder...)
			},
		}, {
			ID:            "R2",
			Description:   "Diversity of source types",
			Points:        1.5,
			Category:      rubric.CategoryEvidence,
			PassCondition: "Sources span at least three of papers, patents, datasets and reports",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "Two kinds of source", Points: 0.75},
				{Condition: "Three or more kinds of source", Points: 0.75},
			},
			AutomatedValidation: func(r *model.Research) rubric.ItemScore {
				if r == nil || len(r.Sources) == 0 {
					return rubric.Missing(1.5, "no sources to classify")
				}
				kinds := make(map[model.SourceKind]struct{})
				for _, s := range r.Sources {
					if s.Kind != "" {
						kinds[s.Kind] = struct{}{}
					}
				}
				return rubric.Award(1.5, rubric.Ladder(float64(len(kinds)), kindLadder...),
					fmt.Sprintf("%d kinds of source", len(kinds)))
			},
		}, {
			ID:            "R3",
			Description:   "Quantitative key findings",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least five key findings that state numbers",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "At least one quantitative finding", Points: 0.6},
				{Condition: "At least three quantitative findings", Points: 0.6},
				{Condition: "At least five quantitative findings", Points: 0.8},
			},
			AutomatedValidation: func(r *model.Research) rubric.ItemScore {
				if r == nil {
					return rubric.Missing(2, "no research output")
				}
				n := 0
				for _, f := range r.KeyFindings {
					if model.HasDigit(f) {
						n++
					}
				}
				return countScore(2, n, "quantitative findings", fiveLadder...)
			},
		}, {
			ID:            "R4",
			Description:   "Knowledge gaps",
			Points:        1.5,
			Category:      rubric.CategoryNovelty,
			PassCondition: "At least three open problems the literature leaves unanswered",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One gap", Points: 0.5},
				{Condition: "Two gaps", Points: 0.5},
				{Condition: "Three or more gaps", Points: 0.5},
			},
			AutomatedValidation: func(r *model.Research) rubric.ItemScore {
				if r == nil {
					return rubric.Missing(1.5, "no research output")
				}
				n := len(r.Gaps)
				if n == 0 {
					return rubric.Missing(1.5, "no knowledge gaps")
				}
				return rubric.Award(1.5, float64(min(n, 3))/3, fmt.Sprintf("%d knowledge gaps", n))
			},
		}, {
			ID:            "R5",
			Description:   "State of the art benchmarks",
			Points:        2,
			Category:      rubric.CategoryEvidence,
			PassCondition: "At least three benchmark figures with values and units",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One benchmark with units", Points: 0.5},
				{Condition: "Two benchmarks with units", Points: 0.5},
				{Condition: "Three or more benchmarks with units", Points: 1},
			},
			AutomatedValidation: func(r *model.Research) rubric.ItemScore {
				if r == nil {
					return rubric.Missing(2, "no research output")
				}
				return countScore(2, withUnits(r.Benchmarks), "benchmarks with units", threeLadder...)
			},
		}},
	}
}

// withUnits counts metrics that carry both a value and a unit.
func withUnits(ms []model.Metric) int {
	n := 0
	for _, m := range ms {
		if m.Value != 0 && m.Unit != "" {
			n++
		}
	}
	return n
}
