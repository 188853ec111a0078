/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/exergylab/discovery/agents/agenttrace"
)

func TestPhaseEnricher(t *testing.T) {
	base := []attribute.KeyValue{attribute.String("model", "claude-sonnet-4-5")}

	tests := []struct {
		name string
		ec   agenttrace.ExecutionContext
		want []attribute.KeyValue
	}{{
		name: "no execution context",
		want: []attribute.KeyValue{
			attribute.String("model", "claude-sonnet-4-5"),
			attribute.Int("iteration", 0),
		},
	}, {
		name: "aggressive retry of a phase",
		ec:   agenttrace.ExecutionContext{DiscoveryID: "run-1", Phase: "simulation", Iteration: 3, Aggressive: true},
		want: []attribute.KeyValue{
			attribute.String("model", "claude-sonnet-4-5"),
			attribute.String("phase", "simulation"),
			attribute.Int("iteration", 3),
			attribute.Bool("aggressive", true),
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := agenttrace.WithExecutionContext(context.Background(), tt.ec)
			got := PhaseEnricher(ctx, base)
			if diff := cmp.Diff(tt.want, got, cmp.Comparer(func(a, b attribute.KeyValue) bool {
				return a.Key == b.Key && a.Value.Emit() == b.Value.Emit()
			})); diff != "" {
				t.Errorf("PhaseEnricher() (-want +got):\n%s", diff)
			}
			if len(base) != 1 {
				t.Errorf("PhaseEnricher() modified its base attributes: %v", base)
			}
		})
	}
}
