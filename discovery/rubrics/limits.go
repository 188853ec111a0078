/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"fmt"
	"strings"

	"github.com/exergylab/discovery/discovery/model"
)

const (
	// ShockleyQueisserPercent is the detailed-balance efficiency ceiling of a
	// single-junction solar cell under AM1.5G illumination.
	ShockleyQueisserPercent = 33.7

	// BetzPercent is the largest share of a free stream's kinetic energy a
	// wind turbine can extract.
	BetzPercent = 59.3

	// ElectrolysisVolts is the reversible cell voltage for splitting water
	// at 25 °C.
	ElectrolysisVolts = 1.23
)

// CarnotPercent returns the Carnot efficiency between two reservoirs, or
// false when the temperatures cannot describe a heat engine.
func CarnotPercent(hotK, coldK float64) (float64, bool) {
	if hotK <= 0 || coldK <= 0 || coldK >= hotK {
		return 0, false
	}
	return 100 * (1 - coldK/hotK), true
}

// limit bounds a claim from above or, for voltages, from below.
type limit struct {
	description string
	lower       bool
	unit        string
	bound       func(model.Claim) (float64, bool)
	value       func(model.Claim) float64
}

func fixed(v float64) func(model.Claim) (float64, bool) {
	return func(model.Claim) (float64, bool) { return v, true }
}

var limits = map[string]limit{
	"shockley_queisser": {
		description: "single-junction solar cell efficiency",
		unit:        "%",
		bound:       fixed(ShockleyQueisserPercent),
		value:       percent,
	},
	"betz": {
		description: "wind turbine power coefficient",
		unit:        "%",
		bound:       fixed(BetzPercent),
		value:       percent,
	},
	"second_law": {
		description: "exergy efficiency",
		unit:        "%",
		bound:       fixed(100),
		value:       percent,
	},
	"carnot": {
		description: "heat engine efficiency",
		unit:        "%",
		bound: func(c model.Claim) (float64, bool) {
			return CarnotPercent(c.HotK.Float(), c.ColdK.Float())
		},
		value: percent,
	},
	"electrolysis_voltage": {
		description: "water electrolysis cell voltage",
		lower:       true,
		unit:        "V",
		bound:       fixed(ElectrolysisVolts),
		value:       volts,
	},
}

// percent reads a claim as a percentage. Unitless values up to 1 are
// fractions.
func percent(c model.Claim) float64 {
	v := c.Value.Float()
	if c.Unit != "%" && v <= 1 {
		return v * 100
	}
	return v
}

func volts(c model.Claim) float64 {
	if strings.EqualFold(strings.TrimSpace(c.Unit), "mv") {
		return c.Value.Float() / 1000
	}
	return c.Value.Float()
}

// LimitCheck is the outcome of checking one claim against its physical limit.
type LimitCheck struct {
	// Known is false when the claim names no limit, an unknown limit, or
	// lacks the inputs the limit needs.
	Known  bool
	Within bool
	Reason string
}

// CheckClaim compares a claim with the physical limit it names.
func CheckClaim(c model.Claim) LimitCheck {
	l, ok := limits[strings.ToLower(strings.TrimSpace(c.Limit))]
	if !ok {
		return LimitCheck{Reason: fmt.Sprintf("no known limit %q", c.Limit)}
	}
	bound, ok := l.bound(c)
	if !ok {
		return LimitCheck{Reason: fmt.Sprintf("%s limit needs inputs the claim does not give", c.Limit)}
	}

	v := l.value(c)
	within := v <= bound
	relation := "<="
	if l.lower {
		within = v >= bound
		relation = ">="
	}
	verdict := "respects"
	if !within {
		verdict = "violates"
	}
	return LimitCheck{
		Known:  true,
		Within: within,
		Reason: fmt.Sprintf("%s of %.3g%s %s the %s limit (%s %.3g%s)", l.description, v, l.unit, verdict, c.Limit, relation, bound, l.unit),
	}
}
