/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge asks a model to grade a response against a criterion. Requests
// run in StandaloneMode: the response is graded on its own merits.
//
// Scores run from 0.0 (fails the criterion) to 1.0 (fully meets it).
//
// ItemJudge adapts a judge into a rubric.ExternalJudge so that rubric items
// without an automated scorer can still earn points:
//
//	llm, err := judge.New(ctx, creds, "claude-sonnet-4-5")
//	if err != nil {
//		return err
//	}
//	j := rubric.NewJudge(rubric.WithExternalJudge(judge.NewItemJudge[*model.Hypothesis](llm)))
package judge
