/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Refinement provides OpenTelemetry instruments for generate-judge loops.
type Refinement struct {
	iterations metric.Int64Counter
	scores     metric.Float64Histogram
	runs       metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewRefinement creates refinement instruments on the named meter, falling
// back to no-op instruments when creation fails.
func NewRefinement(meterName string) *Refinement {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	iterations, err := meter.Int64Counter("refinement.iterations",
		metric.WithDescription("The number of generate-judge iterations"),
		metric.WithUnit("{iterations}"))
	if err != nil {
		slog.Warn("Failed to create iteration counter, metrics will be disabled", "error", err, "meter", meterName)
		iterations = noop.Int64Counter{}
	}

	scores, err := meter.Float64Histogram("refinement.score",
		metric.WithDescription("Rubric score of each judged iteration (0-10)"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	if err != nil {
		slog.Warn("Failed to create score histogram, metrics will be disabled", "error", err, "meter", meterName)
		scores = noop.Float64Histogram{}
	}

	runs, err := meter.Int64Counter("refinement.runs",
		metric.WithDescription("The number of refinement runs, by stop reason"),
		metric.WithUnit("{runs}"))
	if err != nil {
		slog.Warn("Failed to create run counter, metrics will be disabled", "error", err, "meter", meterName)
		runs = noop.Int64Counter{}
	}

	duration, err := meter.Float64Histogram("refinement.duration",
		metric.WithDescription("Wall-clock duration of refinement runs"),
		metric.WithUnit("s"))
	if err != nil {
		slog.Warn("Failed to create duration histogram, metrics will be disabled", "error", err, "meter", meterName)
		duration = noop.Float64Histogram{}
	}

	return &Refinement{
		iterations: iterations,
		scores:     scores,
		runs:       runs,
		duration:   duration,
	}
}

// RecordIteration records one judged iteration.
func (r *Refinement) RecordIteration(ctx context.Context, rubricID string, score float64, aggressive bool) {
	attrs := metric.WithAttributes(
		attribute.String("rubric", rubricID),
		attribute.Bool("aggressive", aggressive),
	)
	r.iterations.Add(ctx, 1, attrs)
	r.scores.Record(ctx, score, attrs)
}

// RecordRun records a finished refinement run.
func (r *Refinement) RecordRun(ctx context.Context, rubricID, stopReason string, passed bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("rubric", rubricID),
		attribute.String("stop_reason", stopReason),
		attribute.Bool("passed", passed),
	)
	r.runs.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}
