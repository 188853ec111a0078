/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package discovery runs a discovery from a research question to a scored
// report.
//
// The Orchestrator walks a fixed sequence of phases: research, hypothesis,
// experiment, simulation, exergy, tea and validation. Phases with a rubric
// are refined with a refinement.Engine until they pass or stop improving.
// Exergy and TEA are generated once and scored with a consistency
// heuristic. Every phase sees the outputs of the phases before it.
//
// The overall score is a weighted mean of the phase scores, where
// hypothesis, simulation and validation count one and a half times, and it
// is classified into a quality tier:
//
//	orch, err := discovery.New(ctx, gen, discovery.WithJudge(j))
//	if err != nil {
//		return err
//	}
//	events := make(chan discovery.Event)
//	go func() {
//		for ev := range events {
//			fmt.Println(ev.Kind, ev.Progress)
//		}
//	}()
//	report, err := orch.Run(ctx, discovery.Request{Query: "..."}, events)
//	close(events)
//
// Run sends progress events synchronously, so the caller must keep
// receiving until it returns. Run never closes the channel.
package discovery
