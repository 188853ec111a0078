/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/phaseagent"
	"github.com/exergylab/discovery/agents/schema"
	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/refinement"
)

// phase couples the agent of one phase with its answer schema.
type phase[Resp model.Normalizer] struct {
	name   model.Phase
	agent  phaseagent.Agent[*Request, Resp]
	schema string
}

func newPhase[Resp model.Normalizer](ctx context.Context, creds phaseagent.Credentials, llm string, enricher metrics.AttributeEnricher, name model.Phase, temperature float64) (*phase[Resp], error) {
	s, err := schema.JSON[Resp]()
	if err != nil {
		return nil, fmt.Errorf("generating %s schema: %w", name, err)
	}
	agent, err := phaseagent.New[*Request, Resp](ctx, creds, llm, phaseagent.Config{
		SystemInstructions: systemPrompt,
		UserPrompt:         prompts[name],
		Temperature:        &temperature,
		Enricher:           enricher,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s agent: %w", name, err)
	}
	return &phase[Resp]{name: name, agent: agent, schema: s}, nil
}

func (p *phase[Resp]) generate(ctx context.Context, st *model.State, hints *refinement.Hints) (Resp, error) {
	var zero Resp
	resp, err := p.agent.Execute(ctx, NewRequest(p.name, st, hints, p.schema))
	if err != nil {
		return zero, fmt.Errorf("generating %s: %w", p.name, err)
	}
	if v := reflect.ValueOf(resp); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return zero, fmt.Errorf("generating %s: %w", p.name, ErrEmptyResponse)
	}
	resp.Normalize()
	return resp, nil
}

// ErrEmptyResponse is returned when the model answered with JSON null.
var ErrEmptyResponse = errors.New("empty response")

// Generator produces the output of every phase.
type Generator struct {
	research   *phase[*model.Research]
	hypotheses *phase[*model.HypothesisSet]
	experiment *phase[*model.Experiment]
	simulation *phase[*model.Simulation]
	exergy     *phase[*model.Exergy]
	tea        *phase[*model.TEA]
	validation *phase[*model.Validation]
}

// Hypothesis generation runs warmer so the candidates differ.
const (
	analysisTemperature   = 0.3
	hypothesisTemperature = 0.7
)

// New creates a Generator whose phases all use llm.
func New(ctx context.Context, creds phaseagent.Credentials, llm string, enricher metrics.AttributeEnricher) (*Generator, error) {
	var (
		g   Generator
		err error
	)
	if g.research, err = newPhase[*model.Research](ctx, creds, llm, enricher, model.PhaseResearch, analysisTemperature); err != nil {
		return nil, err
	}
	if g.hypotheses, err = newPhase[*model.HypothesisSet](ctx, creds, llm, enricher, model.PhaseHypothesis, hypothesisTemperature); err != nil {
		return nil, err
	}
	if g.experiment, err = newPhase[*model.Experiment](ctx, creds, llm, enricher, model.PhaseExperiment, analysisTemperature); err != nil {
		return nil, err
	}
	if g.simulation, err = newPhase[*model.Simulation](ctx, creds, llm, enricher, model.PhaseSimulation, analysisTemperature); err != nil {
		return nil, err
	}
	if g.exergy, err = newPhase[*model.Exergy](ctx, creds, llm, enricher, model.PhaseExergy, analysisTemperature); err != nil {
		return nil, err
	}
	if g.tea, err = newPhase[*model.TEA](ctx, creds, llm, enricher, model.PhaseTEA, analysisTemperature); err != nil {
		return nil, err
	}
	if g.validation, err = newPhase[*model.Validation](ctx, creds, llm, enricher, model.PhaseValidation, analysisTemperature); err != nil {
		return nil, err
	}
	return &g, nil
}

// Research surveys prior art.
func (g *Generator) Research(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Research, error) {
	return g.research.generate(ctx, st, hints)
}

// Hypotheses proposes candidate hypotheses.
func (g *Generator) Hypotheses(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.HypothesisSet, error) {
	return g.hypotheses.generate(ctx, st, hints)
}

// Experiment designs a test of the lead hypothesis.
func (g *Generator) Experiment(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Experiment, error) {
	return g.experiment.generate(ctx, st, hints)
}

// Simulation models the proposed system.
func (g *Generator) Simulation(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Simulation, error) {
	return g.simulation.generate(ctx, st, hints)
}

// Exergy performs the exergy analysis.
func (g *Generator) Exergy(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Exergy, error) {
	return g.exergy.generate(ctx, st, hints)
}

// TEA performs the techno-economic analysis.
func (g *Generator) TEA(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.TEA, error) {
	return g.tea.generate(ctx, st, hints)
}

// Validation reviews the whole discovery.
func (g *Generator) Validation(ctx context.Context, st *model.State, hints *refinement.Hints) (*model.Validation, error) {
	return g.validation.generate(ctx, st, hints)
}
