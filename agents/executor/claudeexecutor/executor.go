/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/executor/retry"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/promptbuilder"
	"github.com/exergylab/discovery/agents/result"
)

// DefaultModel is used unless WithModel overrides it.
const DefaultModel = "claude-sonnet-4-5"

// Interface executes a request against Claude and decodes the JSON answer.
type Interface[Request promptbuilder.Bindable, Response any] interface {
	Execute(ctx context.Context, request Request) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client               anthropic.Client
	modelName            string
	systemInstructions   *promptbuilder.Prompt
	prompt               *promptbuilder.Prompt
	maxTokens            int64
	temperature          float64
	thinkingBudgetTokens *int64 // nil = disabled
	genaiMetrics         *metrics.GenAI
	retryConfig          retry.Config
	limiter              *rate.Limiter // nil = unlimited
	resourceLabels       map[string]string
}

// New creates an executor that renders prompt for each request.
func New[Request promptbuilder.Bindable, Response any](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	e := &executor[Request, Response]{
		client:       client,
		modelName:    DefaultModel,
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.2,
		genaiMetrics: metrics.NewGenAI("exergylab.discovery"),
		retryConfig:  retry.DefaultConfig(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return e, nil
}

func (e *executor[Request, Response]) params(prompt string) (anthropic.MessageNewParams, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(e.temperature),
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return params, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if e.thinkingBudgetTokens != nil {
		// Extended thinking requires temperature 1.0.
		params.Temperature = anthropic.Float(1.0)
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: *e.thinkingBudgetTokens,
			},
		}
	}
	return params, nil
}

// Execute binds request into the prompt, sends it and decodes the reply.
func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (response Response, err error) {
	log := clog.FromContext(ctx).With("model", e.modelName)

	bound, err := request.Bind(e.prompt)
	if err != nil {
		return response, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return response, fmt.Errorf("failed to build prompt: %w", err)
	}
	params, err := e.params(prompt)
	if err != nil {
		return response, err
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(response, err)
	}()

	log.With("prompt_length", len(prompt)).Debug("Starting Claude execution")

	message, err := retry.Do(ctx, e.retryConfig, "claude.stream_message", isRetryable, func(ctx context.Context) (anthropic.Message, error) {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return anthropic.Message{}, err
			}
		}
		trace.RecordAttempt()
		msg, err := e.stream(ctx, params)
		e.genaiMetrics.RecordRequest(ctx, e.modelName, err, e.labels()...)
		return msg, err
	})
	if err != nil {
		return response, fmt.Errorf("failed to stream Claude response: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens, e.labels()...)
		trace.RecordTokenUsage(e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return response, errors.New("no text content in Claude's response")
	}

	resp, err := result.Extract[Response](text.String())
	if err != nil {
		log.With("response_length", text.Len()).Warnf("Failed to parse Claude response: %v", err)
		return response, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp, nil
}

func (e *executor[Request, Response]) stream(ctx context.Context, params anthropic.MessageNewParams) (anthropic.Message, error) {
	stream := e.client.Messages.NewStreaming(ctx, params)
	defer stream.Close()

	var msg anthropic.Message
	for stream.Next() {
		if err := msg.Accumulate(stream.Current()); err != nil {
			return msg, fmt.Errorf("failed to accumulate event: %w", err)
		}
	}
	return msg, stream.Err()
}

func (e *executor[Request, Response]) labels() []attribute.KeyValue {
	if len(e.resourceLabels) == 0 {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(e.resourceLabels))
	for k, v := range e.resourceLabels {
		attrs = append(attrs, attribute.String(k, v))
	}
	return attrs
}
