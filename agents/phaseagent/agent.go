/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package phaseagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/exergylab/discovery/agents/promptbuilder"
)

// Agent executes a request and returns the decoded response.
type Agent[Req promptbuilder.Bindable, Resp any] interface {
	Execute(ctx context.Context, request Req) (Resp, error)
}

// New creates an agent for model.
func New[Req promptbuilder.Bindable, Resp any](ctx context.Context, creds Credentials, model string, config Config) (Agent[Req, Resp], error) {
	if config.UserPrompt == nil {
		return nil, errors.New("user prompt is required")
	}
	switch m := strings.ToLower(model); {
	case strings.HasPrefix(m, "gemini-"):
		return newGoogleAgent[Req, Resp](ctx, creds, model, config)
	case strings.HasPrefix(m, "claude-"):
		return newClaudeAgent[Req, Resp](ctx, creds, model, config)
	default:
		return nil, fmt.Errorf("unsupported model: %q (expected gemini-* or claude-*)", model)
	}
}
