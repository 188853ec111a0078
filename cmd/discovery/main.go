/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs rubric-scored discoveries from the command line or as an
// HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/chainguard-dev/terraform-infra-common/pkg/profiler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/exergylab/discovery/agents/metrics"
	"github.com/exergylab/discovery/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "discovery",
	Short: "Rubric-scored scientific discovery",
	Long: "Runs research, hypothesis, experiment, simulation, exergy, techno-economic and validation " +
		"phases with a language model, refining each against its rubric.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		c, err := config.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := c.ResolveProject(ctx); err != nil {
			return fmt.Errorf("resolving project: %w", err)
		}
		cfg = c
		return nil
	},
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	profiler.SetupProfiler()
	defer httpmetrics.SetupTracer(ctx)()

	mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
	if err != nil {
		clog.ErrorContextf(ctx, "setting up metrics: %v", err)
		return 1
	}
	otel.SetMeterProvider(mp)
	defer func() {
		if err := mp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			clog.WarnContextf(ctx, "shutting down metrics: %v", err)
		}
	}()

	rootCmd.AddCommand(newServeCmd(), newRunCmd())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		clog.ErrorContextf(ctx, "%v", err)
		return 1
	}
	return 0
}
