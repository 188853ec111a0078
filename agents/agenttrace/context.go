/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// ExecutionContext provides run-level context for agent executions.
// It is used to enrich spans and metrics so token usage can be attributed
// to a discovery phase and refinement iteration.
type ExecutionContext struct {
	DiscoveryID string `json:"discovery_id,omitempty"` // Run identifier, e.g. a uuid
	Phase       string `json:"phase,omitempty"`        // Discovery phase: "research", "hypothesis", ...
	Iteration   int    `json:"iteration,omitempty"`    // Refinement iteration (1, 2, 3, ...)
	Aggressive  bool   `json:"aggressive,omitempty"`   // Whether this is the final focused retry
}

// EnrichAttributes adds execution context attributes to the provided base attributes.
// Only bounded labels are added: the discovery id is left to traces, where
// cardinality is not a concern.
func (e ExecutionContext) EnrichAttributes(baseAttrs []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(baseAttrs), len(baseAttrs)+3)
	copy(attrs, baseAttrs)

	if e.Phase != "" {
		attrs = append(attrs, attribute.String("phase", e.Phase))
	}
	attrs = append(attrs, attribute.Int("iteration", e.Iteration))
	if e.Aggressive {
		attrs = append(attrs, attribute.Bool("aggressive", true))
	}
	return attrs
}

// SpanAttributes returns every populated field as span attributes.
func (e ExecutionContext) SpanAttributes() []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if e.DiscoveryID != "" {
		attrs = append(attrs, attribute.String("discovery.id", e.DiscoveryID))
	}
	if e.Phase != "" {
		attrs = append(attrs, attribute.String("discovery.phase", e.Phase))
	}
	if e.Iteration > 0 {
		attrs = append(attrs, attribute.Int("refinement.iteration", e.Iteration))
	}
	if e.Aggressive {
		attrs = append(attrs, attribute.Bool("refinement.aggressive", true))
	}
	return attrs
}

// contextKey is used for storing execution context in context.Context
type contextKey string

const executionContextKey contextKey = "execution_context"

// WithExecutionContext adds execution context to the Go context
func WithExecutionContext(ctx context.Context, execCtx ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey, execCtx)
}

// GetExecutionContext retrieves execution context from the Go context
func GetExecutionContext(ctx context.Context) ExecutionContext {
	if val := ctx.Value(executionContextKey); val != nil {
		if execCtx, ok := val.(ExecutionContext); ok {
			return execCtx
		}
	}
	return ExecutionContext{}
}

// Update applies fn to a copy of the execution context in ctx and returns a
// context carrying the result.
func Update(ctx context.Context, fn func(*ExecutionContext)) context.Context {
	ec := GetExecutionContext(ctx)
	fn(&ec)
	return WithExecutionContext(ctx, ec)
}
