/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// NewDefaultTracer creates a new default tracer that logs to clog
func NewDefaultTracer[T any](ctx context.Context) Tracer[T] {
	logger := clog.FromContext(ctx)

	callback := func(trace *Trace[T]) {
		l := logger.With(
			"trace_id", trace.ID,
			"duration_ms", trace.Duration().Milliseconds(),
			"attempts", trace.Attempts,
		)
		if trace.ExecContext.Phase != "" {
			l = l.With("phase", trace.ExecContext.Phase, "iteration", trace.ExecContext.Iteration)
		}
		l.Debug("Agent trace completed", "trace", trace.String())
	}

	return ByCode[T](callback)
}
