/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultVertexRegion is used when ClientConfig.Region is empty.
const DefaultVertexRegion = "us-central1"

// ErrNoCredentials is returned when neither an API key nor a Vertex project is configured.
var ErrNoCredentials = errors.New("gemini: no API key or Vertex project configured")

// ClientConfig selects the Gemini backend. An API key selects the Gemini
// API; otherwise ProjectID selects Vertex AI with default credentials.
type ClientConfig struct {
	APIKey    string
	ProjectID string
	Region    string

	// BaseURL overrides the service endpoint.
	BaseURL string
}

// NewClient builds a genai client for cfg.
func NewClient(ctx context.Context, cfg ClientConfig) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	}
	switch {
	case cfg.APIKey != "":
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = cfg.APIKey
	case cfg.ProjectID != "":
		cc.Backend = genai.BackendVertexAI
		cc.Project = cfg.ProjectID
		cc.Location = cfg.Region
		if cc.Location == "" {
			cc.Location = DefaultVertexRegion
		}
	default:
		return nil, ErrNoCredentials
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return client, nil
}
