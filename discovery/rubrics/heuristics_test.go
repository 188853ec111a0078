/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"math"
	"testing"

	"github.com/exergylab/discovery/discovery/model"
)

func TestCapitalRecoveryFactor(t *testing.T) {
	tests := []struct {
		name  string
		rate  float64
		years float64
		want  float64
	}{{
		name:  "zero rate spreads evenly",
		years: 10,
		want:  0.1,
	}, {
		name:  "eight percent over 25 years",
		rate:  0.08,
		years: 25,
		want:  0.09368,
	}, {
		name: "no life",
		rate: 0.08,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CapitalRecoveryFactor(tt.rate, tt.years); math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("CapitalRecoveryFactor(%v, %v): got = %v, wanted = %v", tt.rate, tt.years, got, tt.want)
			}
		})
	}
}

func consistentTEA() *model.TEA {
	const capex, opex, mwh = 1e8, 2e6, 200_000
	return &model.TEA{
		TotalCapex:          capex,
		AnnualOpex:          opex,
		AnnualProductionMWh: mwh,
		DiscountRate:        0.08,
		LifetimeYears:       25,
		LCOE:                model.Number(LCOE(capex, opex, mwh, 0.08, 25) * 1.05),
		NPV:                 1e7,
		IRRPercent:          11,
		PaybackYears:        9,
	}
}

func TestAssessTEA(t *testing.T) {
	tests := []struct {
		name string
		tea  *model.TEA
		want float64
	}{{
		name: "consistent",
		tea:  consistentTEA(),
		want: 10,
	}, {
		name: "capex from capacity and defaults for rate and life",
		tea: func() *model.TEA {
			t := consistentTEA()
			t.TotalCapex, t.CapacityMW, t.CapexPerKW = 0, 100, 1000
			t.DiscountRate, t.LifetimeYears = 0, 0
			return t
		}(),
		want: 10,
	}, {
		name: "inconsistent",
		tea: func() *model.TEA {
			t := consistentTEA()
			t.LCOE = 150
			t.NPV = -5e6
			t.PaybackYears = 0
			return t
		}(),
		// Costs 2, plausible LCOE 1.5, cross-check 0, NPV contradicts IRR 0.5, payback 0.
		want: 4,
	}, {
		name: "empty",
		tea:  &model.TEA{},
		want: 0,
	}, {
		name: "nil",
		want: 0,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessTEA(tt.tea)
			if got.Score != tt.want {
				t.Errorf("AssessTEA().Score: got = %v, wanted = %v (notes: %v)", got.Score, tt.want, got.Notes)
			}
			if len(got.Notes) == 0 {
				t.Error("AssessTEA().Notes: got none, wanted an explanation")
			}
		})
	}
}

func TestAssessExergy(t *testing.T) {
	tests := []struct {
		name   string
		exergy *model.Exergy
		want   float64
	}{{
		name: "closed balance",
		exergy: &model.Exergy{
			InputExergyMJ:       100,
			UsefulExergyMJ:      40,
			DestructionMJ:       59,
			SecondLawEfficiency: 0.4,
			Components:          []model.ExergyComponent{{Name: "stack"}, {Name: "inverter"}},
		},
		want: 10,
	}, {
		name: "open balance and disagreeing efficiency",
		exergy: &model.Exergy{
			InputExergyMJ:       100,
			UsefulExergyMJ:      40,
			DestructionMJ:       30,
			SecondLawEfficiency: 0.6,
		},
		// Input 2, balance 0, efficiency in range 2, agreement 0, components 0.
		want: 4,
	}, {
		name: "slightly open balance with one component",
		exergy: &model.Exergy{
			InputExergyMJ:       100,
			UsefulExergyMJ:      40,
			DestructionMJ:       55,
			SecondLawEfficiency: 0.4,
			Components:          []model.ExergyComponent{{Name: "stack"}},
		},
		want: 2 + 1.5 + 2 + 1.5 + 0.75,
	}, {
		name:   "efficiency above one",
		exergy: &model.Exergy{InputExergyMJ: 10, UsefulExergyMJ: 12, DestructionMJ: -2, SecondLawEfficiency: 1.2},
		// Input 2, closed balance 3, efficiency 0.
		want: 5,
	}, {
		name:   "no input",
		exergy: &model.Exergy{UsefulExergyMJ: 40},
		want:   0,
	}, {
		name: "nil",
		want: 0,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessExergy(tt.exergy)
			if got.Score != tt.want {
				t.Errorf("AssessExergy().Score: got = %v, wanted = %v (notes: %v)", got.Score, tt.want, got.Notes)
			}
			if len(got.Notes) == 0 {
				t.Error("AssessExergy().Notes: got none, wanted an explanation")
			}
		})
	}
}

func TestExergyComponentDestruction(t *testing.T) {
	c := model.ExergyComponent{Name: "compressor", InputMJ: 10, OutputMJ: 7.5}
	if got := c.DestructionMJ(); got != 2.5 {
		t.Errorf("DestructionMJ(): got = %v, wanted = 2.5", got)
	}
}
