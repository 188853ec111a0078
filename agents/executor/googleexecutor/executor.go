/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/agents/executor/retry"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/agents/promptbuilder"
	"github.com/exergylab/discovery/agents/result"
)

// DefaultModel is used unless WithModel overrides it.
const DefaultModel = "gemini-2.5-flash"

// Interface executes a request against Gemini and decodes the JSON answer.
type Interface[Request promptbuilder.Bindable, Response any] interface {
	Execute(ctx context.Context, request Request) (Response, error)
}

type executor[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	responseMIMEType   string
	responseSchema     *genai.Schema
	thinkingBudget     *int32 // nil = disabled
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
	limiter            *rate.Limiter // nil = unlimited
	resourceLabels     map[string]string
}

// New creates a Gemini executor that renders prompt for each request.
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	options ...Option[Request, Response],
) (Interface[Request, Response], error) {
	if client == nil {
		return nil, errors.New("client is required")
	}
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	exec := &executor[Request, Response]{
		client:          client,
		prompt:          prompt,
		model:           DefaultModel,
		temperature:     0.2,
		maxOutputTokens: 8192,
		genaiMetrics:    metrics.NewGenAI("exergylab.discovery"),
		retryConfig:     retry.DefaultConfig(),
	}
	for _, opt := range options {
		if err := opt(exec); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return exec, nil
}

func (e *executor[Request, Response]) config() (*genai.GenerateContentConfig, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(e.temperature),
		MaxOutputTokens:  e.maxOutputTokens,
		ResponseMIMEType: e.responseMIMEType,
		ResponseSchema:   e.responseSchema,
	}
	if e.systemInstructions != nil {
		system, err := e.systemInstructions.Build()
		if err != nil {
			return nil, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if e.thinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  e.thinkingBudget,
		}
	}
	return config, nil
}

// Execute binds request into the prompt, sends it and decodes the reply.
func (e *executor[Request, Response]) Execute(ctx context.Context, request Request) (resp Response, err error) {
	log := clog.FromContext(ctx).With("model", e.model)

	bound, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}
	prompt, err := bound.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}
	config, err := e.config()
	if err != nil {
		return resp, err
	}

	trace := agenttrace.StartTrace[Response](ctx, prompt)
	defer func() {
		trace.Complete(resp, err)
	}()

	log.With("prompt_length", len(prompt)).Debug("Starting Gemini execution")

	response, err := retry.Do(ctx, e.retryConfig, "gemini.generate_content", isRetryable, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		if e.limiter != nil {
			if err := e.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		trace.RecordAttempt()
		r, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), config)
		e.genaiMetrics.RecordRequest(ctx, e.model, err, e.labels()...)
		return r, err
	})
	if err != nil {
		return resp, fmt.Errorf("failed to generate content: %w", err)
	}

	if u := response.UsageMetadata; u != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model, int64(u.PromptTokenCount), int64(u.CandidatesTokenCount), e.labels()...)
		trace.RecordTokenUsage(e.model, int64(u.PromptTokenCount), int64(u.CandidatesTokenCount))
	}

	text, err := answerText(response)
	if err != nil {
		return resp, err
	}
	out, err := result.Extract[Response](text)
	if err != nil {
		log.With("response_length", len(text)).Warnf("Failed to parse Gemini response: %v", err)
		return resp, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return out, nil
}

// answerText joins the non-thought text parts of the first candidate.
func answerText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", errors.New("no content generated - no candidates")
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated - finish reason %q", candidate.FinishReason)
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content found in response")
	}
	return sb.String(), nil
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
