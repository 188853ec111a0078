/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/exergylab/discovery/agents/judge"
	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/config"
	"github.com/exergylab/discovery/discovery"
	"github.com/exergylab/discovery/discovery/generate"
)

// newOrchestrator wires the generators and, when a judge model is
// configured, external judgment from cfg.
func newOrchestrator(ctx context.Context, cfg *config.Config, extra ...discovery.Option) (*discovery.Orchestrator, error) {
	creds := cfg.Credentials(cfg.Limiter())

	gen, err := generate.New(ctx, creds, cfg.DiscoveryModel, metrics.PhaseEnricher)
	if err != nil {
		return nil, fmt.Errorf("creating generators: %w", err)
	}

	opts := cfg.OrchestratorOptions()
	if cfg.JudgeModel != "" {
		j, err := judge.New(ctx, creds, cfg.JudgeModel, metrics.PhaseEnricher)
		if err != nil {
			return nil, fmt.Errorf("creating judge: %w", err)
		}
		opts = append(opts, discovery.WithJudge(j))
		clog.FromContext(ctx).With("model", cfg.JudgeModel).Info("External judgment enabled")
	}
	opts = append(opts, extra...)

	return discovery.New(ctx, gen, opts...)
}
