/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package phaseagent

import (
	"context"
	"fmt"

	"github.com/exergylab/discovery/agents/executor/claudeexecutor"
	"github.com/exergylab/discovery/agents/promptbuilder"
)

func newClaudeAgent[Req promptbuilder.Bindable, Resp any](ctx context.Context, creds Credentials, model string, config Config) (Agent[Req, Resp], error) {
	client, err := claudeexecutor.NewClient(ctx, claudeexecutor.ClientConfig{
		APIKey:    creds.AnthropicAPIKey,
		ProjectID: creds.ProjectID,
		Region:    creds.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Claude client: %w", err)
	}

	opts := []claudeexecutor.Option[Req, Resp]{
		claudeexecutor.WithModel[Req, Resp](model),
		claudeexecutor.WithMaxTokens[Req, Resp](16000),
	}
	if config.Temperature != nil {
		opts = append(opts, claudeexecutor.WithTemperature[Req, Resp](*config.Temperature))
	}
	if config.SystemInstructions != nil {
		opts = append(opts, claudeexecutor.WithSystemInstructions[Req, Resp](config.SystemInstructions))
	}
	if creds.Limiter != nil {
		opts = append(opts, claudeexecutor.WithRateLimiter[Req, Resp](creds.Limiter))
	}
	if config.Enricher != nil {
		opts = append(opts, claudeexecutor.WithAttributeEnricher[Req, Resp](config.Enricher))
	}

	exec, err := claudeexecutor.New[Req, Resp](client, config.UserPrompt, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Claude executor: %w", err)
	}
	return exec, nil
}
