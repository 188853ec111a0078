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

var (
	checkLadder = []rubric.Step{{Min: 4, Fraction: 1}, {Min: 2, Fraction: 0.5}, {Min: 1, Fraction: 0.25}}
	riskLadder  = []rubric.Step{{Min: 3, Fraction: 1}, {Min: 1, Fraction: 0.5}}
)

// Validation returns the rubric for the validation report. Its verdict
// item has no automated scorer and needs external judgment.
func Validation() *rubric.Rubric[*model.Validation] {
	return &rubric.Rubric[*model.Validation]{
		ID:               "validation-v1",
		Name:             "Validation",
		Phase:            string(model.PhaseValidation),
		Domain:           domain,
		SuccessThreshold: 7,
		MaxIterations:    3,
		Items: []rubric.Item[*model.Validation]{{
			ID:            "V1",
			Description:   "Physical limits",
			Points:        3,
			Category:      rubric.CategoryPhysics,
			PassCondition: "Performance claims are checked against the physical limits that bound them and none is violated",
			AutomatedValidation: func(v *model.Validation) rubric.ItemScore {
				if v == nil || len(v.Claims) == 0 {
					return rubric.Missing(3, "no performance claims")
				}
				var checked, within int
				var reasons []string
				for _, c := range v.Claims {
					lc := CheckClaim(c)
					if !lc.Known {
						continue
					}
					checked++
					if lc.Within {
						within++
					} else {
						reasons = append(reasons, lc.Reason)
					}
				}
				if checked == 0 {
					return rubric.Missing(3, "no claim is tied to a known physical limit")
				}
				s := shareScore(3, within, checked, "limit-bound claims are physically possible")
				if len(reasons) > 0 {
					s.Reasoning += ": " + strings.Join(reasons, "; ")
				}
				return s
			},
		}, {
			ID:            "V2",
			Description:   "Independent checks",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least four independent validation checks",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One check", Points: 0.5},
				{Condition: "Two or three checks", Points: 0.5},
				{Condition: "Four or more checks", Points: 1},
			},
			AutomatedValidation: func(v *model.Validation) rubric.ItemScore {
				if v == nil {
					return rubric.Missing(2, "no validation output")
				}
				return countScore(2, len(v.Checks), "checks", checkLadder...)
			},
		}, {
			ID:            "V3",
			Description:   "Checks pass",
			Points:        1.5,
			Category:      rubric.CategoryEvidence,
			PassCondition: "Every validation check passes",
			AutomatedValidation: func(v *model.Validation) rubric.ItemScore {
				if v == nil {
					return rubric.Missing(1.5, "no validation output")
				}
				passed := 0
				var failed []string
				for _, c := range v.Checks {
					if c.Passed {
						passed++
					} else {
						failed = append(failed, c.Name)
					}
				}
				s := shareScore(1.5, passed, len(v.Checks), "checks pass")
				if len(failed) > 0 {
					s.Reasoning += fmt.Sprintf(" (failed: %s)", strings.Join(failed, ", "))
				}
				return s
			},
		}, {
			ID:            "V4",
			Description:   "Risks",
			Points:        1.5,
			Category:      rubric.CategorySafety,
			PassCondition: "At least three technical or commercial risks are named",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One or two risks", Points: 0.75},
				{Condition: "Three or more risks", Points: 0.75},
			},
			AutomatedValidation: func(v *model.Validation) rubric.ItemScore {
				if v == nil {
					return rubric.Missing(1.5, "no validation output")
				}
				return countScore(1.5, len(v.Risks), "risks", riskLadder...)
			},
		}, {
			ID:            "V5",
			Description:   "Justified verdict",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "The verdict follows from the claims and checks, and its confidence is calibrated to the evidence",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "A verdict is given", Points: 0.5},
				{Condition: "The verdict cites the checks", Points: 0.75},
				{Condition: "Confidence matches the evidence", Points: 0.75},
			},
		}},
	}
}
