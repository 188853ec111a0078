/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package phaseagent

import (
	"context"
	"fmt"

	"github.com/exergylab/discovery/agents/executor/googleexecutor"
	"github.com/exergylab/discovery/agents/promptbuilder"
	"github.com/exergylab/discovery/agents/schema"
)

func newGoogleAgent[Req promptbuilder.Bindable, Resp any](ctx context.Context, creds Credentials, model string, config Config) (Agent[Req, Resp], error) {
	client, err := googleexecutor.NewClient(ctx, googleexecutor.ClientConfig{
		APIKey:    creds.GeminiAPIKey,
		ProjectID: creds.ProjectID,
		Region:    creds.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	opts := []googleexecutor.Option[Req, Resp]{
		googleexecutor.WithModel[Req, Resp](model),
		googleexecutor.WithMaxOutputTokens[Req, Resp](32768),
		googleexecutor.WithResponseSchema[Req, Resp](schema.GenaiType[Resp]()),
	}
	if config.Temperature != nil {
		opts = append(opts, googleexecutor.WithTemperature[Req, Resp](float32(*config.Temperature)))
	}
	if config.SystemInstructions != nil {
		opts = append(opts, googleexecutor.WithSystemInstructions[Req, Resp](config.SystemInstructions))
	}
	if creds.Limiter != nil {
		opts = append(opts, googleexecutor.WithRateLimiter[Req, Resp](creds.Limiter))
	}
	if config.Enricher != nil {
		opts = append(opts, googleexecutor.WithAttributeEnricher[Req, Resp](config.Enricher))
	}

	exec, err := googleexecutor.New[Req, Resp](client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini executor: %w", err)
	}
	return exec, nil
}
