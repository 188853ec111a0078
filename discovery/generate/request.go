/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"maps"
	"slices"

	"github.com/exergylab/discovery/agents/promptbuilder"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/refinement"
)

// Request carries one phase's inputs into its prompt.
type Request struct {
	Phase       model.Phase
	Query       string
	Constraints map[string]string
	Domains     []string

	// Context holds the earlier phase outputs this phase builds on, keyed by
	// the name the prompt shows.
	Context map[string]any

	// Hints is nil on the first iteration.
	Hints *refinement.Hints

	// Schema is the JSON schema of the expected answer.
	Schema string
}

var _ promptbuilder.Bindable = (*Request)(nil)

// NewRequest builds the request for phase from the run state.
func NewRequest(phase model.Phase, st *model.State, hints *refinement.Hints, schema string) *Request {
	return &Request{
		Phase:       phase,
		Query:       st.Query,
		Constraints: st.Constraints,
		Domains:     st.Domains,
		Context:     contextFor(phase, st),
		Hints:       hints,
		Schema:      schema,
	}
}

// contextFor selects the earlier outputs a phase needs. Phases that
// produced nothing are left out.
func contextFor(phase model.Phase, st *model.State) map[string]any {
	out := make(map[string]any)
	add := func(key string, v any, present bool) {
		if present {
			out[key] = v
		}
	}

	lead := func() { add("lead_hypothesis", st.Lead, st.Lead != nil) }
	switch phase {
	case model.PhaseHypothesis:
		add("research", st.Research, st.Research != nil)
	case model.PhaseExperiment:
		lead()
		if st.Research != nil {
			add("benchmarks", st.Research.Benchmarks, len(st.Research.Benchmarks) > 0)
		}
	case model.PhaseSimulation:
		lead()
		add("experiment", st.Experiment, st.Experiment != nil)
	case model.PhaseExergy:
		lead()
		add("simulation", st.Simulation, st.Simulation != nil)
	case model.PhaseTEA:
		lead()
		add("simulation", st.Simulation, st.Simulation != nil)
		add("exergy", st.Exergy, st.Exergy != nil)
	case model.PhaseValidation:
		lead()
		if st.Research != nil {
			add("benchmarks", st.Research.Benchmarks, len(st.Research.Benchmarks) > 0)
		}
		add("experiment", st.Experiment, st.Experiment != nil)
		add("simulation", st.Simulation, st.Simulation != nil)
		add("exergy", st.Exergy, st.Exergy != nil)
		add("tea", st.TEA, st.TEA != nil)
	}
	return out
}

type constraint struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type question struct {
	XMLName     xml.Name     `xml:"question"`
	Query       string       `xml:"query"`
	Constraints []constraint `xml:"constraints>constraint,omitempty"`
	Domains     []string     `xml:"domains>domain,omitempty"`
}

type feedback struct {
	XMLName         xml.Name                     `xml:"feedback"`
	Iteration       int                          `xml:"iteration,attr,omitempty"`
	PreviousScore   float64                      `xml:"previous_score,attr,omitempty"`
	FinalAttempt    bool                         `xml:"final_attempt,attr,omitempty"`
	Note            string                       `xml:"note,omitempty"`
	Guidance        string                       `xml:"guidance,omitempty"`
	FailedCriteria  []refinement.FailedCriterion `xml:"failed_criterion"`
	Recommendations []string                     `xml:"recommendation"`
}

func feedbackFor(h *refinement.Hints) feedback {
	if h == nil {
		return feedback{Note: "First attempt: there is no reviewer feedback yet."}
	}
	return feedback{
		Iteration:       h.Iteration,
		PreviousScore:   h.PreviousScore,
		FinalAttempt:    h.FinalAttempt,
		Guidance:        h.SpecificGuidance,
		FailedCriteria:  h.FailedCriteria,
		Recommendations: h.Recommendations,
	}
}

// Bind implements promptbuilder.Bindable.
func (r *Request) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	q := question{Query: r.Query, Domains: r.Domains}
	for _, name := range slices.Sorted(maps.Keys(r.Constraints)) {
		q.Constraints = append(q.Constraints, constraint{Name: name, Value: r.Constraints[name]})
	}

	context, err := plain(r.Context)
	if err != nil {
		return nil, fmt.Errorf("encoding %s context: %w", r.Phase, err)
	}
	if len(r.Context) == 0 {
		context = map[string]string{"note": "no earlier phase output"}
	}

	if p, err = p.BindXML("question", q); err != nil {
		return nil, err
	}
	if p, err = p.BindYAML("context", context); err != nil {
		return nil, err
	}
	if p, err = p.BindXML("feedback", feedbackFor(r.Hints)); err != nil {
		return nil, err
	}
	s := json.RawMessage(r.Schema)
	if len(s) == 0 {
		s = json.RawMessage(`{}`)
	}
	return p.BindJSON("schema", s)
}

// plain converts v to maps and slices through JSON, so YAML output uses the
// JSON field names.
func plain(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
