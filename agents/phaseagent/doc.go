/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package phaseagent builds a model-backed agent for one discovery phase.
//
// The model name selects the provider:
//   - Models starting with "gemini-" use the genai SDK, with the response
//     type's schema sent as structured output configuration.
//   - Models starting with "claude-" use the Anthropic SDK.
//
// Either provider authenticates with an API key when one is configured and
// with Vertex AI application default credentials otherwise.
package phaseagent
