/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

// State accumulates the outputs of a discovery run. Each phase reads the
// outputs of the phases before it; a phase that produced nothing leaves its
// field nil.
type State struct {
	Query       string            `json:"query"`
	Constraints map[string]string `json:"constraints,omitempty"`
	Domains     []string          `json:"domains,omitempty"`

	Research   *Research      `json:"research,omitempty"`
	Hypotheses *HypothesisSet `json:"hypotheses,omitempty"`

	// Lead is the hypothesis carried into experiment design.
	Lead *Hypothesis `json:"lead_hypothesis,omitempty"`

	Experiment *Experiment `json:"experiment,omitempty"`
	Simulation *Simulation `json:"simulation,omitempty"`
	Exergy     *Exergy     `json:"exergy,omitempty"`
	TEA        *TEA        `json:"tea,omitempty"`
	Validation *Validation `json:"validation,omitempty"`
}

// Normalizer is implemented by outputs that clean themselves up after
// decoding.
type Normalizer interface {
	Normalize()
}

var (
	_ Normalizer = (*Research)(nil)
	_ Normalizer = (*HypothesisSet)(nil)
	_ Normalizer = (*Experiment)(nil)
	_ Normalizer = (*Simulation)(nil)
	_ Normalizer = (*Exergy)(nil)
	_ Normalizer = (*TEA)(nil)
	_ Normalizer = (*Validation)(nil)
)
