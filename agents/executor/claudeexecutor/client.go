/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/vertex"
)

// DefaultVertexRegion is used when ClientConfig.Region is empty.
const DefaultVertexRegion = "us-east5"

// ErrNoCredentials is returned when neither an API key nor a Vertex project is configured.
var ErrNoCredentials = errors.New("claude: no API key or Vertex project configured")

// ClientConfig selects how the Anthropic client authenticates. An API key
// takes precedence over Vertex AI.
type ClientConfig struct {
	APIKey    string
	ProjectID string
	Region    string
}

// NewClient builds an Anthropic client for cfg. Extra options are appended
// after the authentication option.
func NewClient(ctx context.Context, cfg ClientConfig, opts ...option.RequestOption) (anthropic.Client, error) {
	var auth option.RequestOption
	switch {
	case cfg.APIKey != "":
		auth = option.WithAPIKey(cfg.APIKey)
	case cfg.ProjectID != "":
		region := cfg.Region
		if region == "" {
			region = DefaultVertexRegion
		}
		auth = vertex.WithGoogleAuth(ctx, region, cfg.ProjectID)
	default:
		return anthropic.Client{}, ErrNoCredentials
	}
	return anthropic.NewClient(append([]option.RequestOption{auth}, opts...)...), nil
}
