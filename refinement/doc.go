/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package refinement drives generate-judge-regenerate loops against a rubric.
//
// The caller supplies a Generator, the only place model calls happen, and a
// rubric. Each iteration generates a candidate, judges it and feeds the
// failed criteria back as Hints for the next call:
//
//	engine, err := refinement.New(rubric.NewJudge[*model.Research]())
//	if err != nil {
//		return err
//	}
//	res := engine.RefineUntilPass(ctx, query, func(ctx context.Context, h *refinement.Hints) (*model.Research, error) {
//		return agent.Research(ctx, query, h)
//	}, rubrics.Research())
//
// The loop stops when an iteration passes (unless WithEarlyStopOnPass(false)),
// when the iteration budget is spent, when the timeout has elapsed at an
// iteration boundary, or when it stalls. A run stalls when an iteration
// improves on the previous one by less than the improvement threshold while
// still failing; a single final attempt focused on the heaviest failed
// criterion is then issued before the loop ends.
//
// The Result always reports the best-scoring iteration, with the earliest
// iteration winning ties, and Passed compares that score to the rubric's
// threshold.
package refinement
