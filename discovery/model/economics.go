/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import "encoding/json"

// ExergyComponent is one stage of an exergy balance.
type ExergyComponent struct {
	Name     string `json:"name" jsonschema:"required"`
	InputMJ  Number `json:"input_mj"`
	OutputMJ Number `json:"output_mj"`
}

// DestructionMJ is the exergy the component destroys.
func (c ExergyComponent) DestructionMJ() float64 {
	return float64(c.InputMJ - c.OutputMJ)
}

// Exergy is the output of the exergy analysis phase. Energies are per
// functional unit, in MJ.
type Exergy struct {
	FunctionalUnit string `json:"functional_unit,omitempty"`

	InputExergyMJ  Number `json:"input_exergy_mj" jsonschema:"required"`
	UsefulExergyMJ Number `json:"useful_exergy_mj" jsonschema:"required"`
	DestructionMJ  Number `json:"exergy_destruction_mj" jsonschema:"required"`

	// Efficiencies are fractions in [0, 1].
	FirstLawEfficiency  Number `json:"first_law_efficiency"`
	SecondLawEfficiency Number `json:"second_law_efficiency" jsonschema:"required"`

	Components []ExergyComponent `json:"components"`
	Notes      Strings           `json:"notes,omitempty"`
}

// UnmarshalJSON accepts "output_exergy_mj" for UsefulExergyMJ and
// "exergy_efficiency" for SecondLawEfficiency.
func (e *Exergy) UnmarshalJSON(b []byte) error {
	type plain Exergy
	var aux struct {
		plain
		OutputExergyMJ   Number `json:"output_exergy_mj"`
		ExergyEfficiency Number `json:"exergy_efficiency"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Exergy(aux.plain)
	if e.UsefulExergyMJ == 0 {
		e.UsefulExergyMJ = aux.OutputExergyMJ
	}
	if e.SecondLawEfficiency == 0 {
		e.SecondLawEfficiency = aux.ExergyEfficiency
	}
	return nil
}

// Normalize converts efficiencies reported as percentages to fractions.
func (e *Exergy) Normalize() {
	if e == nil {
		return
	}
	e.FirstLawEfficiency = fraction(e.FirstLawEfficiency)
	e.SecondLawEfficiency = fraction(e.SecondLawEfficiency)
	e.Notes = clean(e.Notes)
}

// fraction maps values in (1, 100] to (0.01, 1]. Anything else is
// returned unchanged so implausible values stay visible to scoring.
func fraction(n Number) Number {
	if n > 1 && n <= 100 {
		return n / 100
	}
	return n
}

// TEA is the output of the techno-economic analysis phase. Money is in USD.
type TEA struct {
	Technology string `json:"technology,omitempty"`

	CapacityMW          Number `json:"capacity_mw"`
	CapexPerKW          Number `json:"capex_per_kw"`
	TotalCapex          Number `json:"total_capex" jsonschema:"required"`
	AnnualOpex          Number `json:"annual_opex" jsonschema:"required"`
	AnnualProductionMWh Number `json:"annual_production_mwh" jsonschema:"required"`
	LifetimeYears       Number `json:"project_lifetime_years"`

	// DiscountRate is a fraction, for example 0.08.
	DiscountRate Number `json:"discount_rate"`

	// LCOE is the levelized cost in USD/MWh.
	LCOE         Number `json:"lcoe" jsonschema:"required"`
	NPV          Number `json:"npv"`
	IRRPercent   Number `json:"irr_percent"`
	PaybackYears Number `json:"payback_years"`

	Assumptions Strings `json:"assumptions,omitempty"`
}

// UnmarshalJSON accepts "irr" for IRRPercent and "lcoe_usd_per_mwh" for LCOE.
func (t *TEA) UnmarshalJSON(b []byte) error {
	type plain TEA
	var aux struct {
		plain
		IRR        Number `json:"irr"`
		LCOEPerMWh Number `json:"lcoe_usd_per_mwh"`
		Payback    Number `json:"payback"`
		Lifetime   Number `json:"lifetime_years"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*t = TEA(aux.plain)
	if t.IRRPercent == 0 {
		t.IRRPercent = aux.IRR
	}
	if t.LCOE == 0 {
		t.LCOE = aux.LCOEPerMWh
	}
	if t.PaybackYears == 0 {
		t.PaybackYears = aux.Payback
	}
	if t.LifetimeYears == 0 {
		t.LifetimeYears = aux.Lifetime
	}
	return nil
}

// Normalize converts a discount rate given as a percentage to a fraction and
// an IRR given as a fraction to a percentage.
func (t *TEA) Normalize() {
	if t == nil {
		return
	}
	if t.DiscountRate > 1 && t.DiscountRate <= 100 {
		t.DiscountRate /= 100
	}
	if t.IRRPercent > 0 && t.IRRPercent < 1 {
		t.IRRPercent *= 100
	}
	t.Assumptions = clean(t.Assumptions)
}
