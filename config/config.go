/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"cloud.google.com/go/compute/metadata"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/time/rate"

	"github.com/exergylab/discovery/agents/phaseagent"
	"github.com/exergylab/discovery/discovery"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port        int    `env:"PORT,default=8080"`
	MetricsPath string `env:"METRICS_PATH,default=/metrics"`

	// DiscoveryModel generates phase outputs. JudgeModel, when set, grades
	// rubric items that have no automated scorer.
	DiscoveryModel string `env:"DISCOVERY_MODEL,default=claude-sonnet-4-5"`
	JudgeModel     string `env:"JUDGE_MODEL"`

	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`

	// Vertex AI is used for a provider whose API key is empty.
	ProjectID    string `env:"GOOGLE_CLOUD_PROJECT"`
	VertexRegion string `env:"VERTEX_REGION"`

	// MaxIterations overrides every rubric's bound when positive.
	MaxIterations        int           `env:"REFINEMENT_MAX_ITERATIONS,default=0"`
	ImprovementThreshold float64       `env:"REFINEMENT_IMPROVEMENT_THRESHOLD,default=0.5"`
	Timeout              time.Duration `env:"REFINEMENT_TIMEOUT,default=5m"`
	EarlyStop            bool          `env:"REFINEMENT_EARLY_STOP,default=true"`
	StrictRubrics        bool          `env:"STRICT_RUBRICS,default=false"`

	MaxConcurrentRuns int `env:"MAX_CONCURRENT_RUNS,default=4"`

	// LLMRequestsPerSecond bounds model requests across all runs. Zero
	// means unlimited.
	LLMRequestsPerSecond float64 `env:"LLM_REQUESTS_PER_SECOND,default=0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=*"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads the configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		errs = append(errs, fmt.Errorf("METRICS_PATH must start with /, got %q", c.MetricsPath))
	}
	if c.DiscoveryModel == "" {
		errs = append(errs, errors.New("DISCOVERY_MODEL is required"))
	}
	if c.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("REFINEMENT_MAX_ITERATIONS must be non-negative, got %d", c.MaxIterations))
	}
	if c.ImprovementThreshold < 0 {
		errs = append(errs, fmt.Errorf("REFINEMENT_IMPROVEMENT_THRESHOLD must be non-negative, got %v", c.ImprovementThreshold))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("REFINEMENT_TIMEOUT must be positive, got %v", c.Timeout))
	}
	if c.MaxConcurrentRuns < 1 {
		errs = append(errs, fmt.Errorf("MAX_CONCURRENT_RUNS must be at least 1, got %d", c.MaxConcurrentRuns))
	}
	if c.LLMRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("LLM_REQUESTS_PER_SECOND must be non-negative, got %v", c.LLMRequestsPerSecond))
	}
	return errors.Join(errs...)
}

// ResolveProject fills in the Vertex project and region from the metadata
// server when running on Google Cloud without them configured. It is a no-op
// elsewhere and when both API keys are set.
func (c *Config) ResolveProject(ctx context.Context) error {
	if c.AnthropicAPIKey != "" && c.GeminiAPIKey != "" {
		return nil
	}
	if c.ProjectID != "" && c.VertexRegion != "" {
		return nil
	}
	if !metadata.OnGCE() {
		return nil
	}
	log := clog.FromContext(ctx)

	if c.ProjectID == "" {
		projectID, err := metadata.ProjectIDWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting project ID: %w", err)
		}
		c.ProjectID = projectID
		log.With("project_id", projectID).Info("Detected Google Cloud project")
	}
	if c.VertexRegion == "" {
		zone, err := metadata.ZoneWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting zone: %w", err)
		}
		c.VertexRegion = regionOf(zone)
		log.With("region", c.VertexRegion).Info("Detected Google Cloud region")
	}
	return nil
}

// regionOf strips the zone suffix: "us-central1-a" is in "us-central1".
func regionOf(zone string) string {
	if i := strings.LastIndex(zone, "-"); i > 0 {
		return zone[:i]
	}
	return zone
}

// Limiter returns the limiter shared by every model request, or nil when
// requests are unlimited.
func (c *Config) Limiter() *rate.Limiter {
	if c.LLMRequestsPerSecond <= 0 {
		return nil
	}
	burst := max(1, int(math.Ceil(c.LLMRequestsPerSecond)))
	return rate.NewLimiter(rate.Limit(c.LLMRequestsPerSecond), burst)
}

// Credentials returns the provider credentials for agents, sharing limiter.
func (c *Config) Credentials(limiter *rate.Limiter) phaseagent.Credentials {
	return phaseagent.Credentials{
		AnthropicAPIKey: c.AnthropicAPIKey,
		GeminiAPIKey:    c.GeminiAPIKey,
		ProjectID:       c.ProjectID,
		Region:          c.VertexRegion,
		Limiter:         limiter,
	}
}

// OrchestratorOptions translates the refinement settings.
func (c *Config) OrchestratorOptions() []discovery.Option {
	opts := []discovery.Option{
		discovery.WithImprovementThreshold(c.ImprovementThreshold),
		discovery.WithPhaseTimeout(c.Timeout),
		discovery.WithEarlyStopOnPass(c.EarlyStop),
		discovery.WithStrictRubrics(c.StrictRubrics),
	}
	if c.MaxIterations > 0 {
		opts = append(opts, discovery.WithMaxIterations(c.MaxIterations))
	}
	return opts
}
