/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package phaseagent

import (
	"golang.org/x/time/rate"

	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/promptbuilder"
)

// Credentials select how providers authenticate. They are shared by every
// agent built for a run.
type Credentials struct {
	AnthropicAPIKey string
	GeminiAPIKey    string

	// ProjectID and Region select Vertex AI when the provider's API key is empty.
	ProjectID string
	Region    string

	// Limiter, when set, is shared by every request from every agent.
	Limiter *rate.Limiter
}

// Config defines one agent.
type Config struct {
	// SystemInstructions is the system prompt that defines the agent's role.
	SystemInstructions *promptbuilder.Prompt

	// UserPrompt is the template the request is bound into.
	UserPrompt *promptbuilder.Prompt

	// Temperature is passed to the model when non-nil.
	Temperature *float64

	// Enricher adds contextual attributes to token and request metrics.
	Enricher metrics.AttributeEnricher
}
