/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package generate produces phase outputs with a language model.
//
// Each phase has its own prompt. A Request binds the research question as
// escaped XML, the outputs of earlier phases as YAML, the judge's feedback
// from the previous iteration as XML, and the phase's JSON schema, so the
// model always sees the contract its answer is decoded against:
//
//	gen, err := generate.New(ctx, creds, "claude-sonnet-4-5", nil)
//	if err != nil {
//		return err
//	}
//	research, err := gen.Research(ctx, state, hints)
//
// Answers are normalized before they are returned.
package generate
