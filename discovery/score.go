/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discovery

import "github.com/exergylab/discovery/discovery/model"

// Tier classifies a discovery by its overall score.
type Tier string

const (
	TierBreakthrough Tier = "breakthrough"
	TierSignificant  Tier = "significant"
	TierValidated    Tier = "validated"
	TierPromising    Tier = "promising"
	TierPreliminary  Tier = "preliminary"
)

// TierFor maps an overall score onto its tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 9:
		return TierBreakthrough
	case score >= 8:
		return TierSignificant
	case score >= 7:
		return TierValidated
	case score >= 5:
		return TierPromising
	default:
		return TierPreliminary
	}
}

// Weight returns how much a phase counts toward the overall score.
func Weight(p model.Phase) float64 {
	switch p {
	case model.PhaseHypothesis, model.PhaseSimulation, model.PhaseValidation:
		return 1.5
	default:
		return 1.0
	}
}

// OverallScore is the weighted mean of the phase scores. Phases that failed
// are included with their zero score.
func OverallScore(phases []PhaseResult) float64 {
	var sum, weights float64
	for _, p := range phases {
		sum += p.Weight * p.Score
		weights += p.Weight
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}
