/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package agenttrace provides tracing infrastructure for model executions.

# Overview

This package contains the foundational types for tracking executions:

  - ExecutionContext: run-level metadata (discovery id, phase, iteration) for trace and metric enrichment
  - Trace[T]: one model interaction from prompt to result, backed by an OpenTelemetry span
  - Tracer[T]: interface for creating and recording traces

# Usage

Set execution context for trace enrichment:

	ctx = agenttrace.WithExecutionContext(ctx, agenttrace.ExecutionContext{
		DiscoveryID: "0b6f1a9e-...",
		Phase:       "hypothesis",
		Iteration:   2,
	})

Create and use traces:

	tracer := agenttrace.ByCode[string](func(trace *agenttrace.Trace[string]) {
		log.Printf("Trace completed: %s", trace.ID)
	})
	ctx = agenttrace.WithTracer[string](ctx, tracer)

	trace := agenttrace.StartTrace[string](ctx, "Propose three hypotheses")
	trace.RecordTokenUsage("claude-sonnet-4@20250514", 1200, 800)
	trace.Complete("...", nil)
*/
package agenttrace
