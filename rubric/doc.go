/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric scores candidate outputs against weighted 10-point checklists.
//
// # Overview
//
// A Rubric is a static, ordered list of Items whose points sum to 10. Each Item
// may carry an AutomatedValidation function that inspects a strongly typed
// candidate and returns an ItemScore. Items without one cannot be scored
// automatically: the Judge either asks a configured ExternalJudge or records
// a zero-point, unjudged score.
//
// # Judging
//
//	j := rubric.NewJudge[*model.Research]()
//	res := j.Judge(ctx, "perovskite stability", candidate, researchRubric)
//	if !res.Passed {
//		fmt.Println(res.IterationHint)
//	}
//
// The Judge never fails: a scorer that panics is converted into a zero-point
// score carrying the panic message as its reasoning, and the remaining items
// are still scored.
//
// # Validation
//
// Validate checks the point-sum invariants. Rubrics are expected to be
// constructed once as package-level configuration; MustValidate and
// WarnInvalid cover the strict and lenient load-time policies respectively.
//
// # Thread Safety
//
// Rubrics are immutable after construction and scorers are pure functions,
// so a Judge may be shared across goroutines.
package rubric
