/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Hypothesis is one candidate explanation or design.
type Hypothesis struct {
	ID        string `json:"id,omitempty"`
	Statement string `json:"statement" jsonschema:"required"`
	Rationale string `json:"rationale,omitempty"`

	// Mechanism explains the physics or chemistry that makes it work.
	Mechanism string `json:"mechanism" jsonschema:"required"`

	// Predictions are measurable consequences, ideally with numbers.
	Predictions Strings `json:"predictions" jsonschema:"required"`

	// FalsifiableBy names the observation that would refute the hypothesis.
	FalsifiableBy string  `json:"falsifiable_by" jsonschema:"required"`
	Assumptions   Strings `json:"assumptions,omitempty"`

	// Self-assessed scores on a 0-10 scale.
	NoveltyScore     Number `json:"novelty_score"`
	FeasibilityScore Number `json:"feasibility_score"`
	ImpactScore      Number `json:"impact_score"`
}

// UnmarshalJSON accepts "hypothesis_text" or "text" for Statement and
// "falsification" for FalsifiableBy.
func (h *Hypothesis) UnmarshalJSON(b []byte) error {
	type plain Hypothesis
	var aux struct {
		plain
		HypothesisText string `json:"hypothesis_text"`
		Text           string `json:"text"`
		Falsification  string `json:"falsification"`
		Novelty        Number `json:"novelty"`
		Feasibility    Number `json:"feasibility"`
		Impact         Number `json:"impact"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*h = Hypothesis(aux.plain)
	h.Statement = firstNonEmpty(h.Statement, aux.HypothesisText, aux.Text)
	h.FalsifiableBy = firstNonEmpty(h.FalsifiableBy, aux.Falsification)
	if h.NoveltyScore == 0 {
		h.NoveltyScore = aux.Novelty
	}
	if h.FeasibilityScore == 0 {
		h.FeasibilityScore = aux.Feasibility
	}
	if h.ImpactScore == 0 {
		h.ImpactScore = aux.Impact
	}
	return nil
}

// HypothesisSet is the output of the hypothesis phase.
type HypothesisSet struct {
	Hypotheses []Hypothesis `json:"hypotheses" jsonschema:"required"`
}

// UnmarshalJSON accepts every shape models produce for a set of hypotheses:
//
//	{"hypotheses": [...]}
//	{"hypothesis": [...]} or {"hypothesis": {...}} or {"hypothesis": "..."}
//	[...]
//	{...} (a single hypothesis)
func (s *HypothesisSet) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = HypothesisSet{}
		return nil
	}
	if b[0] == '[' {
		hs, err := hypothesisList(b)
		if err != nil {
			return err
		}
		*s = HypothesisSet{Hypotheses: hs}
		return nil
	}

	var aux struct {
		Hypotheses json.RawMessage `json:"hypotheses"`
		Hypothesis json.RawMessage `json:"hypothesis"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return fmt.Errorf("decoding hypothesis set: %w", err)
	}
	for _, raw := range []json.RawMessage{aux.Hypotheses, aux.Hypothesis} {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		hs, err := hypothesisList(raw)
		if err != nil {
			return err
		}
		*s = HypothesisSet{Hypotheses: hs}
		return nil
	}

	var h Hypothesis
	if err := json.Unmarshal(b, &h); err != nil {
		return fmt.Errorf("decoding hypothesis: %w", err)
	}
	*s = HypothesisSet{}
	if h.Statement != "" {
		s.Hypotheses = []Hypothesis{h}
	}
	return nil
}

// hypothesisList decodes a list, a single object or a bare statement.
func hypothesisList(raw json.RawMessage) ([]Hypothesis, error) {
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding hypotheses: %w", err)
		}
		out := make([]Hypothesis, 0, len(items))
		for _, item := range items {
			hs, err := hypothesisList(bytes.TrimSpace(item))
			if err != nil {
				return nil, err
			}
			out = append(out, hs...)
		}
		return out, nil
	case '"':
		var statement string
		if err := json.Unmarshal(raw, &statement); err != nil {
			return nil, err
		}
		if strings.TrimSpace(statement) == "" {
			return nil, nil
		}
		return []Hypothesis{{Statement: strings.TrimSpace(statement)}}, nil
	default:
		var h Hypothesis
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("decoding hypothesis: %w", err)
		}
		return []Hypothesis{h}, nil
	}
}

// Normalize drops hypotheses without a statement, merges repeats and
// assigns H1, H2, ... to hypotheses without an id.
func (s *HypothesisSet) Normalize() {
	if s == nil {
		return
	}
	seen := make(map[string]struct{}, len(s.Hypotheses))
	out := s.Hypotheses[:0]
	for _, h := range s.Hypotheses {
		h.Statement = strings.TrimSpace(h.Statement)
		key := strings.ToLower(h.Statement)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		h.Predictions = clean(h.Predictions)
		h.Assumptions = clean(h.Assumptions)
		out = append(out, h)
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = fmt.Sprintf("H%d", i+1)
		}
	}
	s.Hypotheses = out
}

// Find returns the hypothesis with the given id.
func (s *HypothesisSet) Find(id string) (*Hypothesis, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Hypotheses {
		if s.Hypotheses[i].ID == id {
			return &s.Hypotheses[i], true
		}
	}
	return nil, false
}
