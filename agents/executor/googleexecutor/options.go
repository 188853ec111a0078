/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/exergylab/discovery/agents/executor/retry"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/promptbuilder"
)

// Option configures an executor.
type Option[Request promptbuilder.Bindable, Response any] func(*executor[Request, Response]) error

// WithModel sets the model to use for generation.
func WithModel[Request promptbuilder.Bindable, Response any](model string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		e.model = model
		return nil
	}
}

// WithTemperature sets the sampling temperature. Gemini accepts 0.0 to 2.0.
func WithTemperature[Request promptbuilder.Bindable, Response any](temperature float32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if temperature < 0.0 || temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		e.temperature = temperature
		return nil
	}
}

// WithMaxOutputTokens sets the maximum output tokens for generation.
func WithMaxOutputTokens[Request promptbuilder.Bindable, Response any](tokens int32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if tokens <= 0 {
			return fmt.Errorf("max output tokens must be positive, got %d", tokens)
		}
		if tokens > 65536 {
			return fmt.Errorf("max output tokens %d exceeds maximum of 65536", tokens)
		}
		e.maxOutputTokens = tokens
		return nil
	}
}

// WithSystemInstructions sets the system instructions for the model.
func WithSystemInstructions[Request promptbuilder.Bindable, Response any](prompt *promptbuilder.Prompt) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithResponseMIMEType sets the response MIME type.
func WithResponseMIMEType[Request promptbuilder.Bindable, Response any](mimeType string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if mimeType != "" && mimeType != "application/json" && mimeType != "text/plain" {
			return fmt.Errorf("unsupported MIME type %q, must be 'application/json' or 'text/plain'", mimeType)
		}
		e.responseMIMEType = mimeType
		return nil
	}
}

// WithResponseSchema constrains the output to schema. It implies a JSON
// response MIME type.
func WithResponseSchema[Request promptbuilder.Bindable, Response any](schema *genai.Schema) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if schema == nil {
			return errors.New("response schema cannot be nil")
		}
		e.responseSchema = schema
		e.responseMIMEType = "application/json"
		return nil
	}
}

// WithThinking sets the thinking budget. -1 enables dynamic thinking.
// Otherwise the budget must be below the max output tokens, since thoughts
// and output count against the same limit.
func WithThinking[Request promptbuilder.Bindable, Response any](budgetTokens int32) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if budgetTokens == -1 {
			e.thinkingBudget = &budgetTokens
			return nil
		}
		if budgetTokens <= 0 {
			return fmt.Errorf("thinking budget must be positive (or -1 for dynamic), got %d", budgetTokens)
		}
		if budgetTokens >= e.maxOutputTokens {
			return fmt.Errorf("thinking budget (%d) must be less than max_output_tokens (%d)", budgetTokens, e.maxOutputTokens)
		}
		e.thinkingBudget = &budgetTokens
		return nil
	}
}

// WithAttributeEnricher adds contextual attributes to every recorded metric.
func WithAttributeEnricher[Request promptbuilder.Bindable, Response any](enricher metrics.AttributeEnricher) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		e.genaiMetrics.SetAttributeEnricher(enricher)
		return nil
	}
}

// WithRetryConfig sets the backoff used for quota and transient errors.
func WithRetryConfig[Request promptbuilder.Bindable, Response any](cfg retry.Config) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}

// WithRateLimiter makes every request, retries included, wait on limiter.
func WithRateLimiter[Request promptbuilder.Bindable, Response any](limiter *rate.Limiter) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if limiter == nil {
			return errors.New("rate limiter cannot be nil")
		}
		e.limiter = limiter
		return nil
	}
}

// WithResourceLabels attaches labels to the executor's metrics.
func WithResourceLabels[Request promptbuilder.Bindable, Response any](labels map[string]string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if e.resourceLabels == nil {
			e.resourceLabels = make(map[string]string, len(labels))
		}
		maps.Copy(e.resourceLabels, labels)
		return nil
	}
}
