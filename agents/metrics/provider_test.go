/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

func TestNewMeterProviderExportsRefinement(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()

	mp, err := NewMeterProvider(reg)
	if err != nil {
		t.Fatalf("NewMeterProvider() = %v", err)
	}
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		otel.SetMeterProvider(prev)
		_ = mp.Shutdown(ctx)
	})

	r := NewRefinement("exergylab.discovery.test")
	r.RecordIteration(ctx, "hypothesis-v1", 7.5, false)
	r.RecordRun(ctx, "hypothesis-v1", "passed", true, 2*time.Second)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v", err)
	}
	want := map[string]bool{
		"refinement_iterations": false,
		"refinement_score":      false,
		"refinement_runs":       false,
		"refinement_duration":   false,
	}
	for _, f := range families {
		for prefix := range want {
			if strings.HasPrefix(f.GetName(), prefix) {
				want[prefix] = true
			}
		}
	}
	for prefix, found := range want {
		if !found {
			t.Errorf("no exported metric named %s*", prefix)
		}
	}
}
