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
	procedureLadder = []rubric.Step{{Min: 8, Fraction: 1}, {Min: 5, Fraction: 0.6}, {Min: 3, Fraction: 0.3}}
	pairLadder      = []rubric.Step{{Min: 2, Fraction: 1}, {Min: 1, Fraction: 0.5}}
	outcomeLadder   = []rubric.Step{{Min: 3, Fraction: 1}, {Min: 2, Fraction: 0.6}, {Min: 1, Fraction: 0.3}}
)

// Experiment returns the rubric for an experiment design.
func Experiment() *rubric.Rubric[*model.Experiment] {
	return &rubric.Rubric[*model.Experiment]{
		ID:               "experiment-v1",
		Name:             "Experiment design",
		Phase:            string(model.PhaseExperiment),
		Domain:           domain,
		SuccessThreshold: 7,
		MaxIterations:    3,
		Items: []rubric.Item[*model.Experiment]{{
			ID:            "E1",
			Description:   "Variables",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "Independent, dependent and controlled variables are all named",
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(2, "no experiment design")
				}
				named := 0
				for _, vs := range []model.Strings{e.Variables.Independent, e.Variables.Dependent, e.Variables.Controlled} {
					if len(vs) > 0 {
						named++
					}
				}
				return rubric.Award(2, float64(named)/3, fmt.Sprintf("%d of 3 variable groups named", named))
			},
		}, {
			ID:            "E2",
			Description:   "Procedure",
			Points:        2.5,
			Category:      rubric.CategoryCompleteness,
			PassCondition: "A step by step procedure of at least eight steps",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "At least three steps", Points: 0.75},
				{Condition: "At least five steps", Points: 0.75},
				{Condition: "At least eight steps", Points: 1},
			},
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(2.5, "no experiment design")
				}
				return countScore(2.5, len(e.Procedure), "procedure steps", procedureLadder...)
			},
		}, {
			ID:            "E3",
			Description:   "Controls",
			Points:        1.5,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least two control conditions",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One control", Points: 0.75},
				{Condition: "Two or more controls", Points: 0.75},
			},
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(1.5, "no experiment design")
				}
				return countScore(1.5, len(e.Controls), "controls", pairLadder...)
			},
		}, {
			ID:            "E4",
			Description:   "Safety",
			Points:        1.5,
			Category:      rubric.CategorySafety,
			PassCondition: "At least two hazards with mitigations",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One safety note", Points: 0.75},
				{Condition: "Two or more safety notes", Points: 0.75},
			},
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(1.5, "no experiment design")
				}
				return countScore(1.5, len(e.SafetyNotes), "safety notes", pairLadder...)
			},
		}, {
			ID:            "E5",
			Description:   "Measurable outcomes",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least three expected outcomes with target values",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One quantitative outcome", Points: 0.6},
				{Condition: "Two quantitative outcomes", Points: 0.6},
				{Condition: "Three or more quantitative outcomes", Points: 0.8},
			},
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(2, "no experiment design")
				}
				n := 0
				for _, o := range e.ExpectedOutcomes {
					if model.HasDigit(o) {
						n++
					}
				}
				return countScore(2, n, "quantitative outcomes", outcomeLadder...)
			},
		}, {
			ID:            "E6",
			Description:   "Resource estimate",
			Points:        0.5,
			Category:      rubric.CategoryFeasibility,
			PassCondition: "Cost and duration are both estimated",
			AutomatedValidation: func(e *model.Experiment) rubric.ItemScore {
				if e == nil {
					return rubric.Missing(0.5, "no experiment design")
				}
				n := 0
				if e.EstimatedCostUSD > 0 {
					n++
				}
				if e.DurationWeeks > 0 {
					n++
				}
				return rubric.Award(0.5, float64(n)/2, fmt.Sprintf("cost $%.0f, duration %.1f weeks", e.EstimatedCostUSD, e.DurationWeeks))
			},
		}},
	}
}
