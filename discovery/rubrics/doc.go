/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubrics holds the scoring content of a discovery run: one rubric
// per refined phase, the physical limits the validation rubric checks claims
// against, and single-shot heuristics for the exergy and techno-economic
// phases.
//
// Every automated scorer is a pure function of its candidate. Scorers accept
// nil and partially populated candidates and answer them with a low score
// and a reason, never a panic.
package rubrics
