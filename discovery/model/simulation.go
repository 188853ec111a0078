/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"encoding/json"
	"slices"
	"strings"
)

// Simulation is the output of the simulation phase.
type Simulation struct {
	// Method names the technique, for example "DFT" or "detailed balance".
	Method     string   `json:"method" jsonschema:"required"`
	Parameters []Metric `json:"parameters"`
	Results    []Metric `json:"results" jsonschema:"required"`
	Converged  bool     `json:"converged"`

	// UncertaintyPercent is the relative uncertainty of the headline result.
	UncertaintyPercent Number `json:"uncertainty_percent"`

	Assumptions Strings `json:"assumptions"`
	Limitations Strings `json:"limitations"`
}

// UnmarshalJSON accepts a parameter object ({"name": value}) as well as a
// list of metrics, and "outputs" for Results.
func (s *Simulation) UnmarshalJSON(b []byte) error {
	type plain Simulation
	var aux struct {
		plain
		Parameters json.RawMessage `json:"parameters"`
		Outputs    []Metric        `json:"outputs"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Simulation(aux.plain)
	s.Parameters = metrics(aux.Parameters)
	if len(s.Results) == 0 {
		s.Results = aux.Outputs
	}
	return nil
}

// metrics decodes either a list of metrics or an object of name to value.
// Anything else yields nil.
func metrics(raw json.RawMessage) []Metric {
	var list []Metric
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var obj map[string]Number
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	out := make([]Metric, 0, len(obj))
	for name, v := range obj {
		out = append(out, Metric{Name: name, Value: v})
	}
	sortMetrics(out)
	return out
}

// Normalize trims metric names and drops unnamed metrics.
func (s *Simulation) Normalize() {
	if s == nil {
		return
	}
	s.Method = strings.TrimSpace(s.Method)
	s.Parameters = named(s.Parameters)
	s.Results = named(s.Results)
	s.Assumptions = clean(s.Assumptions)
	s.Limitations = clean(s.Limitations)
}

func sortMetrics(ms []Metric) {
	slices.SortFunc(ms, func(a, b Metric) int {
		return strings.Compare(a.Name, b.Name)
	})
}

func named(ms []Metric) []Metric {
	out := ms[:0]
	for _, m := range ms {
		m.Name = strings.TrimSpace(m.Name)
		m.Unit = strings.TrimSpace(m.Unit)
		if m.Name != "" {
			out = append(out, m)
		}
	}
	return out
}
