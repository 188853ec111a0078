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

// knownMethods are established simulation techniques, matched as
// lower-case substrings of the reported method.
var knownMethods = []string{
	"dft", "density functional", "molecular dynamics", "monte carlo",
	"cfd", "computational fluid", "finite element", "fem", "detailed balance",
	"drift-diffusion", "kinetic", "thermodynamic", "equivalent circuit",
	"process simulation", "aspen", "tight binding", "machine learning potential",
}

var (
	parameterLadder  = []rubric.Step{{Min: 6, Fraction: 1}, {Min: 4, Fraction: 0.6}, {Min: 2, Fraction: 0.3}}
	limitationLadder = []rubric.Step{{Min: 4, Fraction: 1}, {Min: 2, Fraction: 0.5}, {Min: 1, Fraction: 0.25}}
)

// Simulation returns the rubric for a simulation plan and its results.
func Simulation() *rubric.Rubric[*model.Simulation] {
	return &rubric.Rubric[*model.Simulation]{
		ID:               "simulation-v1",
		Name:             "Simulation",
		Phase:            string(model.PhaseSimulation),
		Domain:           domain,
		SuccessThreshold: 7,
		MaxIterations:    3,
		Items: []rubric.Item[*model.Simulation]{{
			ID:            "S1",
			Description:   "Method",
			Points:        1.5,
			Category:      rubric.CategoryPhysics,
			PassCondition: "An established simulation technique is named",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "A method is named", Points: 0.75},
				{Condition: "The method is an established technique", Points: 0.75},
			},
			AutomatedValidation: func(s *model.Simulation) rubric.ItemScore {
				if s == nil || strings.TrimSpace(s.Method) == "" {
					return rubric.Missing(1.5, "no simulation method")
				}
				m := strings.ToLower(s.Method)
				for _, known := range knownMethods {
					if strings.Contains(m, known) {
						return rubric.Award(1.5, 1, fmt.Sprintf("established method %q", s.Method))
					}
				}
				return rubric.Award(1.5, 0.5, fmt.Sprintf("unrecognized method %q", s.Method))
			},
		}, {
			ID:            "S2",
			Description:   "Input parameters",
			Points:        2,
			Category:      rubric.CategoryCompleteness,
			PassCondition: "At least six named input parameters",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "At least two parameters", Points: 0.6},
				{Condition: "At least four parameters", Points: 0.6},
				{Condition: "At least six parameters", Points: 0.8},
			},
			AutomatedValidation: func(s *model.Simulation) rubric.ItemScore {
				if s == nil {
					return rubric.Missing(2, "no simulation output")
				}
				return countScore(2, len(s.Parameters), "parameters", parameterLadder...)
			},
		}, {
			ID:            "S3",
			Description:   "Results with units",
			Points:        2.5,
			Category:      rubric.CategoryEvidence,
			PassCondition: "At least three results reported with values and units",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One result with units", Points: 0.75},
				{Condition: "Two results with units", Points: 0.75},
				{Condition: "Three or more results with units", Points: 1},
			},
			AutomatedValidation: func(s *model.Simulation) rubric.ItemScore {
				if s == nil {
					return rubric.Missing(2.5, "no simulation output")
				}
				return countScore(2.5, withUnits(s.Results), "results with units", outcomeLadder...)
			},
		}, {
			ID:            "S4",
			Description:   "Convergence and uncertainty",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "The run converged and the headline result carries an uncertainty of at most 50%",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "Converged", Points: 1},
				{Condition: "Uncertainty between 0 and 50 percent", Points: 1},
			},
			AutomatedValidation: func(s *model.Simulation) rubric.ItemScore {
				if s == nil {
					return rubric.Missing(2, "no simulation output")
				}
				fraction := 0.0
				var notes []string
				if s.Converged {
					fraction += 0.5
					notes = append(notes, "converged")
				} else {
					notes = append(notes, "no convergence reported")
				}
				if u := s.UncertaintyPercent; u > 0 && u <= 50 {
					fraction += 0.5
					notes = append(notes, fmt.Sprintf("uncertainty %.1f%%", u))
				} else {
					notes = append(notes, "no usable uncertainty")
				}
				return rubric.Award(2, fraction, strings.Join(notes, ", "))
			},
		}, {
			ID:            "S5",
			Description:   "Assumptions and limitations",
			Points:        2,
			Category:      rubric.CategoryRigor,
			PassCondition: "At least four assumptions or limitations are stated",
			PartialConditions: []rubric.PartialCondition{
				{Condition: "One stated", Points: 0.5},
				{Condition: "Two stated", Points: 0.5},
				{Condition: "Four or more stated", Points: 1},
			},
			AutomatedValidation: func(s *model.Simulation) rubric.ItemScore {
				if s == nil {
					return rubric.Missing(2, "no simulation output")
				}
				return countScore(2, len(s.Assumptions)+len(s.Limitations), "assumptions and limitations", limitationLadder...)
			},
		}},
	}
}
