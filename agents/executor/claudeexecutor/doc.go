/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudeexecutor runs single-turn Claude requests whose answer is a
// JSON document decoded into a typed response.
//
// The executor binds the request into a prompt template, streams the
// message, retries quota and overload errors with backoff, and extracts the
// JSON payload from the reply:
//
//	client, err := claudeexecutor.NewClient(ctx, claudeexecutor.ClientConfig{
//	    APIKey: cfg.AnthropicAPIKey,
//	})
//	if err != nil {
//	    return err
//	}
//	exec, err := claudeexecutor.New[*Request, *Response](client, prompt,
//	    claudeexecutor.WithModel[*Request, *Response]("claude-sonnet-4-5"),
//	    claudeexecutor.WithRateLimiter[*Request, *Response](limiter),
//	)
//	if err != nil {
//	    return err
//	}
//	resp, err := exec.Execute(ctx, req)
//
// # Options
//
//   - WithModel: override the default model (claude-sonnet-4-5)
//   - WithMaxTokens: maximum response tokens (default 8192, max 32000)
//   - WithTemperature: sampling temperature (default 0.2)
//   - WithSystemInstructions: system prompt
//   - WithThinking: extended thinking with a token budget; forces temperature 1.0
//   - WithRetryConfig: backoff for 429, 5xx and 529 responses
//   - WithRateLimiter: a limiter shared across executors and runs
//   - WithResourceLabels and WithAttributeEnricher: extra metric attributes
//
// Every execution opens an agenttrace span, records one attempt per request
// sent and reports token usage through agents/metrics.
package claudeexecutor
