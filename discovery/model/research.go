/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"encoding/json"
	"strings"
)

// SourceKind classifies a literature source.
type SourceKind string

const (
	KindPaper   SourceKind = "paper"
	KindPatent  SourceKind = "patent"
	KindDataset SourceKind = "dataset"
	KindReport  SourceKind = "report"
)

// Source is one piece of prior art.
type Source struct {
	Title   string     `json:"title" jsonschema:"required"`
	Authors Strings    `json:"authors,omitempty"`
	Year    Number     `json:"year,omitempty"`
	URL     string     `json:"url,omitempty"`
	Kind    SourceKind `json:"kind,omitempty" jsonschema:"enum=paper,enum=patent,enum=dataset,enum=report"`

	// Finding is what the source contributes to the question.
	Finding string `json:"finding,omitempty"`
}

// UnmarshalJSON accepts "name" for Title, "link" for URL and "type" for Kind.
func (s *Source) UnmarshalJSON(b []byte) error {
	type plain Source
	var aux struct {
		plain
		Name    string `json:"name"`
		Link    string `json:"link"`
		Type    string `json:"type"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Source(aux.plain)
	s.Title = firstNonEmpty(s.Title, aux.Name)
	s.URL = firstNonEmpty(s.URL, aux.Link)
	s.Finding = firstNonEmpty(s.Finding, aux.Summary)
	s.Kind = SourceKind(strings.ToLower(firstNonEmpty(string(s.Kind), aux.Type)))
	return nil
}

// Metric is a named quantitative value.
type Metric struct {
	Name  string `json:"name" jsonschema:"required"`
	Value Number `json:"value" jsonschema:"required"`
	Unit  string `json:"unit,omitempty"`
}

// Research is the output of the literature phase.
type Research struct {
	Summary     string   `json:"summary" jsonschema:"required"`
	Sources     []Source `json:"sources" jsonschema:"required"`
	KeyFindings Strings  `json:"key_findings"`
	Gaps        Strings  `json:"gaps" jsonschema:"description=Open problems the literature leaves unanswered"`
	Materials   Strings  `json:"materials,omitempty" jsonschema:"description=Candidate materials or technologies"`

	// Benchmarks are state of the art figures the discovery has to beat.
	Benchmarks []Metric `json:"benchmarks"`
}

// UnmarshalJSON accepts "references" or "papers" for Sources and
// "findings" for KeyFindings.
func (r *Research) UnmarshalJSON(b []byte) error {
	type plain Research
	var aux struct {
		plain
		References    []Source `json:"references"`
		Papers        []Source `json:"papers"`
		Findings      Strings  `json:"findings"`
		KnowledgeGaps Strings  `json:"knowledge_gaps"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Research(aux.plain)
	if len(r.Sources) == 0 {
		r.Sources = append(aux.References, aux.Papers...)
	}
	if len(r.KeyFindings) == 0 {
		r.KeyFindings = aux.Findings
	}
	if len(r.Gaps) == 0 {
		r.Gaps = aux.KnowledgeGaps
	}
	return nil
}

// Normalize drops untitled sources and sources repeated by title.
func (r *Research) Normalize() {
	if r == nil {
		return
	}
	seen := make(map[string]struct{}, len(r.Sources))
	sources := r.Sources[:0]
	for _, s := range r.Sources {
		s.Title = strings.TrimSpace(s.Title)
		key := strings.ToLower(s.Title)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sources = append(sources, s)
	}
	r.Sources = sources
	r.KeyFindings = clean(r.KeyFindings)
	r.Gaps = clean(r.Gaps)
	r.Materials = clean(r.Materials)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
