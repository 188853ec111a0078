/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"fmt"
	"math"

	"github.com/exergylab/discovery/discovery/model"
)

const (
	// DefaultDiscountRate and DefaultLifetimeYears fill in TEA inputs a
	// model leaves out.
	DefaultDiscountRate  = 0.08
	DefaultLifetimeYears = 25

	// balanceTolerance is the relative error at which an exergy balance
	// counts as closed.
	balanceTolerance = 0.02

	// maxPlausibleLCOE bounds a believable levelized cost, in USD/MWh.
	maxPlausibleLCOE = 1000
)

// Assessment is the single-shot score of a phase scored without a rubric.
type Assessment struct {
	// Score is on the same 0-10 scale as rubric totals.
	Score float64  `json:"score"`
	Notes []string `json:"notes"`
}

func (a *Assessment) add(points float64, format string, args ...any) {
	a.Score += points
	a.Notes = append(a.Notes, fmt.Sprintf("%+.1f: ", points)+fmt.Sprintf(format, args...))
}

// AssessExergy scores the internal consistency of an exergy analysis:
// inputs present (2), balance closure (3), a plausible second-law
// efficiency (2) that agrees with useful over input exergy (1.5), and a
// component breakdown (1.5).
func AssessExergy(e *model.Exergy) Assessment {
	var a Assessment
	if e == nil {
		a.add(0, "no exergy analysis")
		return a
	}

	in, useful, destroyed := e.InputExergyMJ.Float(), e.UsefulExergyMJ.Float(), e.DestructionMJ.Float()
	if in <= 0 {
		a.add(0, "no input exergy")
		return a
	}
	a.add(2, "input exergy %.3g MJ", in)

	switch gap := math.Abs(in-useful-destroyed) / in; {
	case gap <= balanceTolerance:
		a.add(3, "balance closes within %.1f%%", gap*100)
	case gap <= 5*balanceTolerance:
		a.add(1.5, "balance is off by %.1f%%", gap*100)
	default:
		a.add(0, "balance is off by %.1f%%", gap*100)
	}

	psi := e.SecondLawEfficiency.Float()
	if psi > 0 && psi <= 1 {
		a.add(2, "second-law efficiency %.2f", psi)
		if math.Abs(psi-useful/in) <= 0.02 {
			a.add(1.5, "efficiency agrees with useful/input exergy")
		} else {
			a.add(0, "efficiency %.2f disagrees with useful/input exergy %.2f", psi, useful/in)
		}
	} else {
		a.add(0, "second-law efficiency %.2f is outside (0, 1]", psi)
	}

	switch n := len(e.Components); {
	case n >= 2:
		a.add(1.5, "%d components", n)
	case n == 1:
		a.add(0.75, "a single component")
	default:
		a.add(0, "no component breakdown")
	}
	return a
}

// CapitalRecoveryFactor converts a present cost into an equal annual
// payment over years at the given discount rate.
func CapitalRecoveryFactor(rate, years float64) float64 {
	if years <= 0 {
		return 0
	}
	if rate == 0 {
		return 1 / years
	}
	f := math.Pow(1+rate, years)
	return rate * f / (f - 1)
}

// LCOE is the levelized cost of energy in USD/MWh: annualized capital plus
// yearly operating cost, over yearly production.
func LCOE(totalCapex, annualOpex, annualMWh, rate, years float64) float64 {
	if annualMWh <= 0 {
		return 0
	}
	return (totalCapex*CapitalRecoveryFactor(rate, years) + annualOpex) / annualMWh
}

// AssessTEA scores the plausibility of a techno-economic analysis: costs
// present (2), a believable LCOE (1.5), the LCOE reproduced from the cost
// inputs (3), NPV consistent with IRR (1.5) and a payback within the
// project life (2).
func AssessTEA(t *model.TEA) Assessment {
	var a Assessment
	if t == nil {
		a.add(0, "no techno-economic analysis")
		return a
	}

	capex, opex := t.TotalCapex.Float(), t.AnnualOpex.Float()
	if capex <= 0 && t.CapacityMW > 0 && t.CapexPerKW > 0 {
		capex = t.CapacityMW.Float() * 1000 * t.CapexPerKW.Float()
	}
	switch {
	case capex > 0 && opex > 0:
		a.add(2, "capex $%.3g and opex $%.3g/yr", capex, opex)
	case capex > 0 || opex > 0:
		a.add(1, "only one of capex and opex is given")
	default:
		a.add(0, "no capex or opex")
	}

	lcoe := t.LCOE.Float()
	if lcoe > 0 && lcoe <= maxPlausibleLCOE {
		a.add(1.5, "LCOE $%.1f/MWh", lcoe)
	} else {
		a.add(0, "LCOE $%.1f/MWh is implausible", lcoe)
	}

	rate, years := t.DiscountRate.Float(), t.LifetimeYears.Float()
	if rate <= 0 {
		rate = DefaultDiscountRate
	}
	if years <= 0 {
		years = DefaultLifetimeYears
	}
	if want := LCOE(capex, opex, t.AnnualProductionMWh.Float(), rate, years); want > 0 && lcoe > 0 {
		switch diff := math.Abs(lcoe-want) / want; {
		case diff <= 0.15:
			a.add(3, "LCOE matches $%.1f/MWh computed from costs", want)
		case diff <= 0.35:
			a.add(1.5, "LCOE is %.0f%% from $%.1f/MWh computed from costs", diff*100, want)
		default:
			a.add(0, "LCOE is %.0f%% from $%.1f/MWh computed from costs", diff*100, want)
		}
	} else {
		a.add(0, "LCOE cannot be reproduced: costs or production missing")
	}

	irr, npv := t.IRRPercent.Float(), t.NPV.Float()
	switch {
	case irr == 0 && npv == 0:
		a.add(0, "no NPV or IRR")
	case (irr > rate*100) == (npv > 0):
		a.add(1.5, "NPV $%.3g is consistent with IRR %.1f%%", npv, irr)
	default:
		a.add(0.5, "NPV $%.3g contradicts IRR %.1f%% at a %.1f%% discount rate", npv, irr, rate*100)
	}

	if p := t.PaybackYears.Float(); p > 0 && p <= years {
		a.add(2, "payback in %.1f years", p)
	} else {
		a.add(0, "payback %.1f years is outside the %.0f year project life", p, years)
	}
	return a
}
