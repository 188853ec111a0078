/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "exergylab.discovery.agenttrace"

// Trace represents a complete model interaction from prompt to result
type Trace[T any] struct {
	ID          string           `json:"id"`
	InputPrompt string           `json:"input_prompt"`
	ExecContext ExecutionContext `json:"exec_context,omitempty"`
	Model       string           `json:"model,omitempty"`
	Attempts    int              `json:"attempts"`
	Result      T                `json:"result"`
	Error       error            `json:"error,omitempty"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     time.Time        `json:"end_time"`
	Metadata    map[string]any   `json:"metadata,omitempty"`
	tracer      Tracer[T]
	mu          sync.Mutex
	span        oteltrace.Span
}

// newTraceWithTracer creates a new trace with the given tracer and prompt
func newTraceWithTracer[T any](ctx context.Context, tracer Tracer[T], prompt string) *Trace[T] {
	execCtx := GetExecutionContext(ctx)

	tr := otel.Tracer(instrumentationName, oteltrace.WithInstrumentationVersion("1.0.0"))

	attrs := append([]attribute.KeyValue{
		attribute.Int("agent.prompt.length", len(prompt)),
	}, execCtx.SpanAttributes()...)
	_, span := tr.Start(ctx, "agent.execution", oteltrace.WithAttributes(attrs...))

	return &Trace[T]{
		ID:          generateTraceID(),
		InputPrompt: prompt,
		ExecContext: execCtx,
		StartTime:   time.Now(),
		Metadata:    make(map[string]any),
		tracer:      tracer,
		span:        span,
	}
}

// RecordAttempt notes one request attempt; retries increment it more than once.
func (t *Trace[T]) RecordAttempt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Attempts++
}

// RecordTokenUsage records model and token usage as span attributes.
func (t *Trace[T]) RecordTokenUsage(model string, inputTokens, outputTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.Model = model
	t.Metadata["tokens.input"] = inputTokens
	t.Metadata["tokens.output"] = outputTokens
	if t.span != nil {
		t.span.SetAttributes(
			attribute.String("model", model),
			attribute.Int64("tokens.input", inputTokens),
			attribute.Int64("tokens.output", outputTokens),
			attribute.Int64("tokens.total", inputTokens+outputTokens),
		)
	}
}

// Complete marks the trace as complete with the given result and records it
// with the tracer that created it.
func (t *Trace[T]) Complete(result T, err error) {
	t.mu.Lock()
	t.Result = result
	t.Error = err
	t.EndTime = time.Now()
	tracer := t.tracer
	span := t.span
	t.mu.Unlock()

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}

	if tracer != nil {
		tracer.RecordTrace(t)
	}
}

// Duration returns the total duration of the trace
func (t *Trace[T]) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}
	return t.EndTime.Sub(t.StartTime)
}

// String returns a human-readable representation of the trace
func (t *Trace[T]) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var duration time.Duration
	if t.EndTime.IsZero() {
		duration = time.Since(t.StartTime)
	} else {
		duration = t.EndTime.Sub(t.StartTime)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Trace %s ===\n", t.ID)
	if ec := t.ExecContext; ec.Phase != "" {
		fmt.Fprintf(&sb, "Phase: %s (iteration %d)\n", ec.Phase, ec.Iteration)
	}
	fmt.Fprintf(&sb, "Prompt: %q\n", truncate(t.InputPrompt, 200))
	fmt.Fprintf(&sb, "Duration: %v\n", duration)
	fmt.Fprintf(&sb, "Attempts: %d\n", t.Attempts)

	sb.WriteString("\nCompletion:\n")
	switch {
	case t.Error != nil:
		fmt.Fprintf(&sb, "  Error: %v\n", t.Error)
	case any(t.Result) != nil:
		fmt.Fprintf(&sb, "  Result: %s\n", truncate(fmt.Sprintf("%v", t.Result), 500))
	default:
		sb.WriteString("  Result: <nil>\n")
	}
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// generateTraceID generates a unique trace ID
func generateTraceID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return time.Now().Format("20060102-150405.000000")
	}
	// Format: YYYYMMDD-HHMMSS-RRRRRRRR where R is random hex
	return fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), hex.EncodeToString(b))
}
