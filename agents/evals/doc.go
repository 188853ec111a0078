/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package evals observes how generated outputs grade against their rubrics.

# Overview

Every judged refinement attempt is reported to an Observer: Increment once per
attempt, Grade with the normalized score (0.0-1.0) and the iteration hint, and
Fail when an attempt produced no output or the run ended below its threshold.

# Core Components

  - Observer: interface for recording attempts, grades and failures
  - Nop: an Observer that discards everything
  - MetricsObserver: Prometheus counters, gauge and histogram per output type and namespace
  - LogObserver: writes observations through clog
  - ResultCollector: Observer wrapper that keeps failures and grades for later inspection
  - NamespacedObserver: hierarchical namespaces, typically one child per discovery phase
  - Tee: fans observations out to several observers

# Usage

	root := evals.NewNamespacedObserver(func(ns string) *evals.MetricsObserver {
		return evals.NewMetricsObserver[*model.HypothesisSet](ns)
	})
	collector := evals.NewResultCollector(root.Child("hypothesis"))

	engine := refinement.New(judge, refinement.WithObserver[*model.HypothesisSet](collector))
	res := engine.RefineUntilPass(ctx, query, generate, rubrics.Hypothesis())

	for _, g := range collector.Grades() {
		fmt.Printf("%.2f %s\n", g.Score, g.Reasoning)
	}

# Thread Safety

MetricsObserver, LogObserver, ResultCollector and NamespacedObserver are safe
for concurrent use.
*/
package evals
