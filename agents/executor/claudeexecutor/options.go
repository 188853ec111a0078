/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"golang.org/x/time/rate"

	"github.com/exergylab/discovery/agents/executor/retry"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/promptbuilder"
)

// Option configures an executor.
type Option[Request promptbuilder.Bindable, Response any] func(*executor[Request, Response]) error

// WithMaxTokens sets the maximum tokens for responses.
func WithMaxTokens[Request promptbuilder.Bindable, Response any](tokens int64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		if tokens > 32000 {
			return fmt.Errorf("max tokens %d exceeds maximum of 32000", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature, between 0.0 and 1.0.
func WithTemperature[Request promptbuilder.Bindable, Response any](temp float64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithSystemInstructions sets the system prompt.
func WithSystemInstructions[Request promptbuilder.Bindable, Response any](prompt *promptbuilder.Prompt) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		e.systemInstructions = prompt
		return nil
	}
}

// WithModel overrides the model name.
func WithModel[Request promptbuilder.Bindable, Response any](model string) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		e.modelName = model
		return nil
	}
}

// WithThinking enables extended thinking with the given budget. The budget
// must be at least 1024 and below the max tokens, so apply WithMaxTokens first.
func WithThinking[Request promptbuilder.Bindable, Response any](budgetTokens int64) Option[Request, Response] {
	return func(e *executor[Request, Response]) error {
		if budgetTokens < 1024 {
			return fmt.Errorf("thinking budget_tokens must be at least 1024, got %d", budgetTokens)
		}
		if budgetTokens >= e.maxTokens {
			return fmt.Errorf("thinking budget_tokens (%d) must be less than max_tokens (%d)", budgetTokens, e.maxTokens)
		}
		e.thinkingBudgetTokens = &budgetTokens
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

// WithRetryConfig sets the backoff used for rate limit and overload errors.
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
// Share one limiter between executors to bound the total request rate.
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
