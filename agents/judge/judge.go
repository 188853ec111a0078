/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/phaseagent"
	"github.com/exergylab/discovery/agents/promptbuilder"
)

type judge struct {
	agents map[JudgmentMode]phaseagent.Agent[*Request, *Judgement]
}

var prompts = map[JudgmentMode]*promptbuilder.Prompt{
	StandaloneMode: standalonePrompt,
}

// New creates a judge backed by model. The model prefix selects Claude or
// Gemini, as in phaseagent.New. The enricher may be nil.
func New(ctx context.Context, creds phaseagent.Credentials, model string, enricher metrics.AttributeEnricher) (Interface, error) {
	temperature := 0.1
	j := &judge{agents: make(map[JudgmentMode]phaseagent.Agent[*Request, *Judgement], len(prompts))}
	for mode, prompt := range prompts {
		agent, err := phaseagent.New[*Request, *Judgement](ctx, creds, model, phaseagent.Config{
			SystemInstructions: systemPrompt,
			UserPrompt:         prompt,
			Temperature:        &temperature,
			Enricher:           enricher,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s judge: %w", mode, err)
		}
		j.agents[mode] = agent
	}
	return j, nil
}

// Judge implements Interface.
func (j *judge) Judge(ctx context.Context, request *Request) (*Judgement, error) {
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid judge request: %w", err)
	}
	agent, ok := j.agents[request.Mode]
	if !ok {
		return nil, fmt.Errorf("no judge configured for mode %q", request.Mode)
	}

	got, err := agent.Execute(ctx, request)
	if err != nil {
		return nil, err
	}
	if got == nil {
		return nil, fmt.Errorf("%s judge returned no judgement", request.Mode)
	}
	if got.Score < 0 || got.Score > 1 {
		return nil, fmt.Errorf("score %.2f is out of range [0, 1]", got.Score)
	}
	if got.Mode != request.Mode {
		clog.FromContext(ctx).Debugf("judge answered in mode %q, expected %q", got.Mode, request.Mode)
		got.Mode = request.Mode
	}
	return got, nil
}
