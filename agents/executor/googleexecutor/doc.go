/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package googleexecutor runs single-turn Gemini requests whose answer is a
JSON document decoded into a typed response.

	client, err := googleexecutor.NewClient(ctx, googleexecutor.ClientConfig{
	    APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
	    return err
	}
	exec, err := googleexecutor.New[*Request, *Response](client, prompt,
	    googleexecutor.WithModel[*Request, *Response]("gemini-2.5-pro"),
	    googleexecutor.WithResponseSchema[*Request, *Response](schema.GenaiType[Response]()),
	)

# Options

  - WithModel: the Gemini model (default gemini-2.5-flash)
  - WithTemperature: sampling temperature, 0.0-2.0
  - WithMaxOutputTokens: maximum response length
  - WithSystemInstructions: system prompt
  - WithResponseMIMEType and WithResponseSchema: structured output
  - WithThinking: thinking budget, or -1 for dynamic thinking
  - WithRetryConfig and WithRateLimiter: quota handling

Thought parts are never decoded as the answer; only non-thought text is.
*/
package googleexecutor
