/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"reflect"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Global metrics with consistent dimensions
	attemptCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_refinement_attempts_total",
			Help: "Total number of judged refinement attempts",
		},
		[]string{"output_type", "namespace"},
	)

	failureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_refinement_failures_total",
			Help: "Total number of failed refinement attempts",
		},
		[]string{"output_type", "namespace"},
	)

	gradeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discovery_refinement_grade",
			Help: "Most recent rubric grade (0.0-1.0)",
		},
		[]string{"output_type", "namespace"},
	)

	gradeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_refinement_grade_distribution",
			Help:    "Distribution of rubric grades (0.0-1.0)",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		},
		[]string{"output_type", "namespace"},
	)
)

// MetricsObserver implements Observer with Prometheus metrics.
type MetricsObserver struct {
	outputType string
	namespace  string
	total      atomic.Int64

	attempts  prometheus.Counter
	failures  prometheus.Counter
	grade     prometheus.Gauge
	histogram prometheus.Observer
}

var _ Observer = (*MetricsObserver)(nil)

// NewMetricsObserver creates a metrics observer for outputs of type T in the given namespace.
func NewMetricsObserver[T any](namespace string) *MetricsObserver {
	outputType := reflect.TypeFor[T]().String()
	labels := prometheus.Labels{
		"output_type": outputType,
		"namespace":   namespace,
	}
	return &MetricsObserver{
		outputType: outputType,
		namespace:  namespace,
		attempts:   attemptCounter.With(labels),
		failures:   failureCounter.With(labels),
		grade:      gradeGauge.With(labels),
		histogram:  gradeHistogram.With(labels),
	}
}

// Increment implements Observer.Increment
func (m *MetricsObserver) Increment() {
	m.total.Add(1)
	m.attempts.Inc()
}

// Fail implements Observer.Fail
func (m *MetricsObserver) Fail(string) {
	m.failures.Inc()
}

// Grade implements Observer.Grade
func (m *MetricsObserver) Grade(score float64, _ string) {
	m.grade.Set(score)
	m.histogram.Observe(score)
}

// Log implements Observer.Log (no-op for metrics observer)
func (m *MetricsObserver) Log(string) {}

// Total implements Observer.Total
func (m *MetricsObserver) Total() int64 {
	return m.total.Load()
}
