/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"encoding/json"
	"strings"
)

// Claim is a quantitative performance claim, optionally tied to the
// physical limit that bounds it.
type Claim struct {
	Statement string `json:"statement" jsonschema:"required"`
	Value     Number `json:"value"`
	Unit      string `json:"unit,omitempty"`

	// Limit names the bound to check against: shockley_queisser, carnot,
	// betz, electrolysis_voltage or second_law.
	Limit string `json:"limit,omitempty" jsonschema:"enum=shockley_queisser,enum=carnot,enum=betz,enum=electrolysis_voltage,enum=second_law"`

	// Reservoir temperatures, required by the carnot limit.
	HotK  Number `json:"hot_k,omitempty"`
	ColdK Number `json:"cold_k,omitempty"`
}

// Check is one validation step and its outcome.
type Check struct {
	Name   string `json:"name" jsonschema:"required"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Validation is the output of the validation phase.
type Validation struct {
	Claims []Claim `json:"claims" jsonschema:"required"`
	Checks []Check `json:"checks" jsonschema:"required"`
	Risks  Strings `json:"risks"`

	// Verdict is the reviewer's overall conclusion.
	Verdict    string `json:"verdict" jsonschema:"required"`
	Confidence Number `json:"confidence" jsonschema:"description=Confidence in the verdict from 0 to 1"`
}

// UnmarshalJSON accepts "validation_checks" for Checks and "conclusion" for
// Verdict.
func (v *Validation) UnmarshalJSON(b []byte) error {
	type plain Validation
	var aux struct {
		plain
		ValidationChecks []Check `json:"validation_checks"`
		Conclusion       string  `json:"conclusion"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*v = Validation(aux.plain)
	if len(v.Checks) == 0 {
		v.Checks = aux.ValidationChecks
	}
	v.Verdict = firstNonEmpty(v.Verdict, aux.Conclusion)
	return nil
}

// Normalize lower-cases limit names and maps a percentage confidence onto
// [0, 1].
func (v *Validation) Normalize() {
	if v == nil {
		return
	}
	for i := range v.Claims {
		v.Claims[i].Limit = strings.ToLower(strings.TrimSpace(v.Claims[i].Limit))
	}
	v.Confidence = fraction(v.Confidence)
	v.Risks = clean(v.Risks)
}
