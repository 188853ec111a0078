/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"fmt"
	"strings"

	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/rubric"
)

// mechanismWords is the length below which a mechanism is a label rather
// than an explanation.
const mechanismWords = 12

var shareLadder = []rubric.Step{{Min: 0.75, Fraction: 1}, {Min: 0.5, Fraction: 0.6}, {Min: 0.25, Fraction: 0.3}}

// Hypothesis returns the rubric for a set of hypotheses. A single
// hypothesis is judged as a set of one.
func Hypothesis() *rubric.Rubric[*model.HypothesisSet] {
	return &rubric.Rubric[*model.HypothesisSet]{
		ID:               "hypothesis-v1",
		Name:             "Hypothesis generation",
		Phase:            string(model.PhaseHypothesis),
		Domain:           domain,
		SuccessThreshold: 7,
		MaxIterations:    3,
		Items: []rubric.Item[*model.HypothesisSet]{{
			ID:            "H1",
			Description:   "Falsifiability",
			Points:        2.5,
			Category:      rubric.CategoryRigor,
			PassCondition: "Every hypothesis makes a prediction and names the observation that would refute it",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "Half of the hypotheses are falsifiable", Points: 1.25},
				{Condition: "Every hypothesis is falsifiable", Points: 1.25},
			},
			AutomatedValidation: func(s *model.HypothesisSet) rubric.ItemScore {
				hs := hypotheses(s)
				ok := 0
				for _, h := range hs {
					if strings.TrimSpace(h.FalsifiableBy) != "" && len(h.Predictions) > 0 {
						ok++
					}
				}
				return shareScore(2.5, ok, len(hs), "hypotheses are falsifiable")
			},
		}, {
			ID:            "H2",
			Description:   "Physical mechanism",
			Points:        2,
			Category:      rubric.CategoryPhysics,
			PassCondition: fmt.Sprintf("Every hypothesis explains its mechanism in at least %d words", mechanismWords),
			PartialConditions: []rubric.PartialCondition{
				{Condition: "Half of the mechanisms are explained", Points: 1},
				{Condition: "Every mechanism is explained", Points: 1},
			},
			AutomatedValidation: func(s *model.HypothesisSet) rubric.ItemScore {
				hs := hypotheses(s)
				ok := 0
				for _, h := range hs {
					if len(strings.Fields(h.Mechanism)) >= mechanismWords {
						ok++
					}
				}
				return shareScore(2, ok, len(hs), "mechanisms are explained")
			},
		}, {
			ID:            "H3",
			Description:   "Quantitative predictions",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least three quarters of the predictions state a number",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "A quarter of the predictions are quantitative", Points: 0.6},
				{Condition: "Half of the predictions are quantitative", Points: 0.6},
				{Condition: "Three quarters of the predictions are quantitative", Points: 0.8},
			},
			AutomatedValidation: func(s *model.HypothesisSet) rubric.ItemScore {
				var total, quantitative int
				for _, h := range hypotheses(s) {
					for _, p := range h.Predictions {
						total++
						if model.HasDigit(p) {
							quantitative++
						}
					}
				}
				if total == 0 {
					return rubric.Missing(2, "no predictions")
				}
				share := float64(quantitative) / float64(total)
				return rubric.Award(2, rubric.Ladder(share, shareLadder...),
					fmt.Sprintf("%d of %d predictions are quantitative", quantitative, total))
			},
		}, {
			ID:            "H4",
			Description:   "Self-assessment",
			Points:        1.5,
			Category:      rubric.CategoryFeasibility,
			PassCondition: "Every hypothesis rates its novelty, feasibility and impact on a 0-10 scale",
			AutomatedValidation: func(s *model.HypothesisSet) rubric.ItemScore {
				hs := hypotheses(s)
				ok := 0
				for _, h := range hs {
					if inScale(h.NoveltyScore) && inScale(h.FeasibilityScore) && inScale(h.ImpactScore) {
						ok++
					}
				}
				return shareScore(1.5, ok, len(hs), "hypotheses are rated")
			},
		}, {
			ID:            "H5",
			Description:   "Breadth of alternatives",
			Points:        2,
			Category:      rubric.CategoryNovelty,
			PassCondition: "At least three distinct hypotheses",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One hypothesis", Points: 0.5},
				{Condition: "Two hypotheses", Points: 0.5},
				{Condition: "Three or more hypotheses", Points: 1},
			},
			AutomatedValidation: func(s *model.HypothesisSet) rubric.ItemScore {
				return countScore(2, len(hypotheses(s)), "hypotheses", threeLadder...)
			},
		}},
	}
}

func hypotheses(s *model.HypothesisSet) []model.Hypothesis {
	if s == nil {
		return nil
	}
	return s.Hypotheses
}

func inScale(n model.Number) bool {
	return n > 0 && n <= 10
}
