/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI provides OpenTelemetry metrics for generative AI operations.
// It includes counters for token usage (prompt and completion) and model
// requests, with support for graceful degradation if metric creation fails.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	requests         metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates a new GenAI metrics instance with the specified meter name.
// If any counter fails to initialize, a warning is logged and a no-op counter
// is used instead.
//
// The meterName should be unified across all executors (e.g., "exergylab.discovery")
// with the model name serving as a dimension on the recorded metrics.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	requests, err := meter.Int64Counter("genai.requests",
		metric.WithDescription("The number of model requests, by outcome"),
		metric.WithUnit("{requests}"))
	if err != nil {
		slog.Warn("Failed to create request counter, metrics will be disabled", "error", err, "meter", meterName)
		requests = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		requests:         requests,
	}
}

// SetAttributeEnricher sets the attribute enricher for this metrics instance.
// The enricher is called before recording each metric to add contextual
// attributes (e.g., discovery id, phase, iteration).
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

func (m *GenAI) attributes(ctx context.Context, base []attribute.KeyValue, attrs []attribute.KeyValue) []attribute.KeyValue {
	if m.attrEnricher != nil {
		base = m.attrEnricher(ctx, base)
	}
	return append(base, attrs...)
}

// RecordTokens records prompt and completion token usage with optional enrichment.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	all := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
	}, attrs)

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(all...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(all...))
}

// RecordRequest records one model request and whether it succeeded.
func (m *GenAI) RecordRequest(ctx context.Context, model string, err error, attrs ...attribute.KeyValue) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	all := m.attributes(ctx, []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("outcome", outcome),
	}, attrs)

	m.requests.Add(ctx, 1, metric.WithAttributes(all...))
}
