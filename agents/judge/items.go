/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/exergylab/discovery/rubric"
)

// ItemJudge grades rubric items that have no automated scorer by asking a
// judge in standalone mode. It implements rubric.ExternalJudge.
type ItemJudge[T any] struct {
	judge Interface
}

var _ rubric.ExternalJudge[any] = (*ItemJudge[any])(nil)

// NewItemJudge wraps j.
func NewItemJudge[T any](j Interface) *ItemJudge[T] {
	return &ItemJudge[T]{judge: j}
}

// JudgeItem scales the judge's 0-1 score onto the item's points.
func (ij *ItemJudge[T]) JudgeItem(ctx context.Context, problem string, candidate T, item rubric.Item[T]) (rubric.ItemScore, error) {
	answer, err := json.MarshalIndent(candidate, "", "  ")
	if err != nil {
		return rubric.ItemScore{}, fmt.Errorf("encoding candidate: %w", err)
	}

	j, err := ij.judge.Judge(ctx, &Request{
		Mode:         StandaloneMode,
		Problem:      problem,
		ActualAnswer: string(answer),
		Criterion:    Criterion(item),
	})
	if err != nil {
		return rubric.ItemScore{}, fmt.Errorf("judging %s: %w", item.ID, err)
	}

	reasoning := j.Reasoning
	if len(j.Suggestions) > 0 {
		reasoning += " Suggestions: " + strings.Join(j.Suggestions, "; ")
	}
	return rubric.ItemScore{
		Points:    min(max(j.Score, 0), 1) * item.Points,
		Reasoning: reasoning,
	}, nil
}

// Criterion renders a rubric item as criterion text, including its partial
// credit ladder expressed as fractions of the item.
func Criterion[T any](item rubric.Item[T]) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\nPasses when: %s", item.ID, item.Description, item.PassCondition)
	if len(item.PartialConditions) > 0 && item.Points > 0 {
		sb.WriteString("\nPartial credit:")
		for _, pc := range item.PartialConditions {
			fmt.Fprintf(&sb, "\n- %s (%.2f of the score)", pc.Condition, pc.Points/item.Points)
		}
	}
	return sb.String()
}
