/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import "encoding/json"

// Variables lists what an experiment changes, measures and holds fixed.
type Variables struct {
	Independent Strings `json:"independent"`
	Dependent   Strings `json:"dependent"`
	Controlled  Strings `json:"controlled"`
}

// Experiment is the output of the experiment design phase.
type Experiment struct {
	Objective string `json:"objective" jsonschema:"required"`

	// HypothesisID names the hypothesis under test.
	HypothesisID string `json:"hypothesis_id,omitempty"`

	Variables        Variables `json:"variables" jsonschema:"required"`
	Materials        Strings   `json:"materials"`
	Procedure        Strings   `json:"procedure" jsonschema:"required,description=Ordered steps"`
	Controls         Strings   `json:"controls"`
	SafetyNotes      Strings   `json:"safety_notes"`
	ExpectedOutcomes Strings   `json:"expected_outcomes" jsonschema:"description=Measurable outcomes with target values"`

	EstimatedCostUSD Number `json:"estimated_cost_usd"`
	DurationWeeks    Number `json:"duration_weeks"`
}

// UnmarshalJSON accepts "steps" or "methodology" for Procedure and
// "safety" for SafetyNotes.
func (e *Experiment) UnmarshalJSON(b []byte) error {
	type plain Experiment
	var aux struct {
		plain
		Steps       Strings `json:"steps"`
		Methodology Strings `json:"methodology"`
		Safety      Strings `json:"safety"`
		Outcomes    Strings `json:"outcomes"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Experiment(aux.plain)
	for _, alt := range []Strings{aux.Steps, aux.Methodology} {
		if len(e.Procedure) == 0 {
			e.Procedure = alt
		}
	}
	if len(e.SafetyNotes) == 0 {
		e.SafetyNotes = aux.Safety
	}
	if len(e.ExpectedOutcomes) == 0 {
		e.ExpectedOutcomes = aux.Outcomes
	}
	return nil
}

// Normalize trims and deduplicates every list except the procedure, whose
// steps may legitimately repeat.
func (e *Experiment) Normalize() {
	if e == nil {
		return
	}
	e.Variables.Independent = clean(e.Variables.Independent)
	e.Variables.Dependent = clean(e.Variables.Dependent)
	e.Variables.Controlled = clean(e.Variables.Controlled)
	e.Materials = clean(e.Materials)
	e.Controls = clean(e.Controls)
	e.SafetyNotes = clean(e.SafetyNotes)
	e.ExpectedOutcomes = clean(e.ExpectedOutcomes)
}
