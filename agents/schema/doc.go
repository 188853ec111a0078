/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package schema reflects Go types into JSON schemas that describe the
// output contract a model must satisfy. The same schema is rendered into
// prompts with JSON and handed to Gemini's structured output with Genai.
package schema
