/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/time/rate"

	"github.com/exergylab/discovery/discovery"
)

func TestLoadDefaults(t *testing.T) {
	got, err := LoadFrom(context.Background(), envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("LoadFrom() = %v", err)
	}
	want := &Config{
		Port:                 8080,
		MetricsPath:          "/metrics",
		DiscoveryModel:       "claude-sonnet-4-5",
		ImprovementThreshold: 0.5,
		Timeout:              5 * time.Minute,
		EarlyStop:            true,
		MaxConcurrentRuns:    4,
		CORSAllowedOrigins:   []string{"*"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFrom() (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	got, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                             "9090",
		"DISCOVERY_MODEL":                  "gemini-2.5-pro",
		"JUDGE_MODEL":                      "claude-sonnet-4-5",
		"ANTHROPIC_API_KEY":                "a-key",
		"GOOGLE_CLOUD_PROJECT":             "exergy-lab",
		"VERTEX_REGION":                    "us-east5",
		"REFINEMENT_MAX_ITERATIONS":        "5",
		"REFINEMENT_IMPROVEMENT_THRESHOLD": "0.25",
		"REFINEMENT_TIMEOUT":               "90s",
		"REFINEMENT_EARLY_STOP":            "false",
		"STRICT_RUBRICS":                   "true",
		"MAX_CONCURRENT_RUNS":              "2",
		"LLM_REQUESTS_PER_SECOND":          "2.5",
		"CORS_ALLOWED_ORIGINS":             "https://lab.example.com,http://localhost:3000",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() = %v", err)
	}
	want := &Config{
		Port:                 9090,
		MetricsPath:          "/metrics",
		DiscoveryModel:       "gemini-2.5-pro",
		JudgeModel:           "claude-sonnet-4-5",
		AnthropicAPIKey:      "a-key",
		ProjectID:            "exergy-lab",
		VertexRegion:         "us-east5",
		MaxIterations:        5,
		ImprovementThreshold: 0.25,
		Timeout:              90 * time.Second,
		StrictRubrics:        true,
		MaxConcurrentRuns:    2,
		LLMRequestsPerSecond: 2.5,
		CORSAllowedOrigins:   []string{"https://lab.example.com", "http://localhost:3000"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFrom() (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{{
		name:    "port out of range",
		env:     map[string]string{"PORT": "70000"},
		wantErr: "PORT must be between",
	}, {
		name:    "relative metrics path",
		env:     map[string]string{"METRICS_PATH": "metrics"},
		wantErr: "METRICS_PATH must start with /",
	}, {
		name:    "negative iterations",
		env:     map[string]string{"REFINEMENT_MAX_ITERATIONS": "-1"},
		wantErr: "REFINEMENT_MAX_ITERATIONS",
	}, {
		name:    "zero timeout",
		env:     map[string]string{"REFINEMENT_TIMEOUT": "0s"},
		wantErr: "REFINEMENT_TIMEOUT must be positive",
	}, {
		name:    "no runs allowed",
		env:     map[string]string{"MAX_CONCURRENT_RUNS": "0"},
		wantErr: "MAX_CONCURRENT_RUNS",
	}, {
		name:    "negative rate",
		env:     map[string]string{"LLM_REQUESTS_PER_SECOND": "-3"},
		wantErr: "LLM_REQUESTS_PER_SECOND",
	}, {
		name:    "unparseable duration",
		env:     map[string]string{"REFINEMENT_TIMEOUT": "soon"},
		wantErr: "processing config",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error: got = %v, wanted it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveProjectWithAPIKeys(t *testing.T) {
	cfg := &Config{AnthropicAPIKey: "a", GeminiAPIKey: "g"}
	if err := cfg.ResolveProject(context.Background()); err != nil {
		t.Fatalf("ResolveProject() = %v", err)
	}
	if cfg.ProjectID != "" || cfg.VertexRegion != "" {
		t.Errorf("ResolveProject() set project %q region %q, wanted neither", cfg.ProjectID, cfg.VertexRegion)
	}
}

func TestRegionOf(t *testing.T) {
	for zone, want := range map[string]string{
		"us-central1-a":  "us-central1",
		"europe-west4-b": "europe-west4",
		"nodash":         "nodash",
		"":               "",
	} {
		if got := regionOf(zone); got != want {
			t.Errorf("regionOf(%q) = %q, wanted = %q", zone, got, want)
		}
	}
}

func TestLimiter(t *testing.T) {
	if l := (&Config{}).Limiter(); l != nil {
		t.Errorf("Limiter() = %v, wanted nil when unlimited", l)
	}

	l := (&Config{LLMRequestsPerSecond: 2.5}).Limiter()
	if l == nil {
		t.Fatal("Limiter() = nil")
	}
	if got, want := l.Limit(), rate.Limit(2.5); got != want {
		t.Errorf("Limit() = %v, wanted = %v", got, want)
	}
	if got, want := l.Burst(), 3; got != want {
		t.Errorf("Burst() = %d, wanted = %d", got, want)
	}
}

func TestCredentials(t *testing.T) {
	cfg := &Config{AnthropicAPIKey: "a", ProjectID: "p", VertexRegion: "r"}
	l := rate.NewLimiter(1, 1)
	creds := cfg.Credentials(l)
	if creds.AnthropicAPIKey != "a" || creds.ProjectID != "p" || creds.Region != "r" {
		t.Errorf("Credentials() = %+v", creds)
	}
	if creds.Limiter != l {
		t.Error("Credentials() did not share the limiter")
	}
}

func TestOrchestratorOptions(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{{
		name: "rubric iteration bounds",
		cfg:  Config{ImprovementThreshold: 0.5, Timeout: time.Minute},
		want: 4,
	}, {
		name: "iteration override",
		cfg:  Config{ImprovementThreshold: 0.5, Timeout: time.Minute, MaxIterations: 2},
		want: 5,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.cfg.OrchestratorOptions()
			if got := len(opts); got != tt.want {
				t.Fatalf("len(OrchestratorOptions()) = %d, wanted = %d", got, tt.want)
			}
			var o discovery.Orchestrator
			for _, opt := range opts {
				if err := opt(&o); err != nil {
					t.Errorf("option: %v", err)
				}
			}
		})
	}
}
