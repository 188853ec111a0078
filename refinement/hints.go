/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package refinement

import (
	"fmt"
	"slices"
	"strings"

	"github.com/exergylab/discovery/rubric"
)

// FailedCriterion summarizes one rubric item the previous attempt failed.
type FailedCriterion struct {
	ID            string  `json:"id" xml:"id,attr"`
	Description   string  `json:"description" xml:"description"`
	PassCondition string  `json:"pass_condition" xml:"pass_condition"`
	Reasoning     string  `json:"reasoning" xml:"reasoning"`
	PointsEarned  float64 `json:"points_earned" xml:"points_earned,attr"`
	MaxPoints     float64 `json:"max_points" xml:"max_points,attr"`
}

// Hints carry judge feedback into the next call to the generator.
type Hints struct {
	PreviousScore    float64           `json:"previous_score"`
	FailedCriteria   []FailedCriterion `json:"failed_criteria"`
	SpecificGuidance string            `json:"specific_guidance"`
	Recommendations  []string          `json:"recommendations"`

	// Iteration is the number of the iteration whose judgment produced these hints.
	Iteration int `json:"iteration"`

	// FinalAttempt marks the single focused retry issued after a stall.
	FinalAttempt bool `json:"final_attempt"`
}

// String renders the hints as prompt text.
func (h *Hints) String() string {
	if h == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Previous attempt (iteration %d) scored %.1f/10.\n", h.Iteration, h.PreviousScore)
	if h.FinalAttempt {
		sb.WriteString("This is the FINAL attempt.\n")
	}
	for _, fc := range h.FailedCriteria {
		fmt.Fprintf(&sb, "- %s %s (%.1f/%.1f): %s. Judge said: %s\n", fc.ID, fc.Description, fc.PointsEarned, fc.MaxPoints, fc.PassCondition, fc.Reasoning)
	}
	if h.SpecificGuidance != "" {
		sb.WriteString(h.SpecificGuidance)
		sb.WriteString("\n")
	}
	return sb.String()
}

func failedCriteria[T any](res *rubric.Result[T]) []FailedCriterion {
	out := make([]FailedCriterion, 0, len(res.FailedItems))
	for _, item := range res.FailedItems {
		s, _ := res.Score(item.ID)
		out = append(out, FailedCriterion{
			ID:            item.ID,
			Description:   item.Description,
			PassCondition: item.PassCondition,
			Reasoning:     s.Reasoning,
			PointsEarned:  s.Points,
			MaxPoints:     item.Points,
		})
	}
	return out
}

// normalHints lists every failed criterion of the previous iteration, near
// misses (most partial credit earned) first.
func normalHints[T any](prev *Iteration[T]) *Hints {
	fcs := failedCriteria(prev.Judgement)
	slices.SortStableFunc(fcs, func(a, b FailedCriterion) int {
		switch {
		case a.PointsEarned > b.PointsEarned:
			return -1
		case a.PointsEarned < b.PointsEarned:
			return 1
		}
		return 0
	})

	return &Hints{
		PreviousScore:    prev.Judgement.TotalScore,
		FailedCriteria:   fcs,
		SpecificGuidance: prev.Judgement.IterationHint,
		Recommendations:  slices.Clone(prev.Judgement.Recommendations),
		Iteration:        prev.Number,
	}
}

// aggressiveHints names only the highest-point failed criterion and marks the
// attempt as final. The earliest item in rubric order wins ties.
func aggressiveHints[T any](prev *Iteration[T]) *Hints {
	fcs := failedCriteria(prev.Judgement)

	h := &Hints{
		PreviousScore: prev.Judgement.TotalScore,
		Iteration:     prev.Number,
		FinalAttempt:  true,
	}
	if len(fcs) == 0 {
		h.SpecificGuidance = "FINAL ATTEMPT: every criterion passed individually but the total is below the threshold. Strengthen the whole output."
		return h
	}

	top := fcs[0]
	for _, fc := range fcs[1:] {
		if fc.MaxPoints > top.MaxPoints {
			top = fc
		}
	}
	h.FailedCriteria = []FailedCriterion{top}
	h.SpecificGuidance = fmt.Sprintf("FINAL ATTEMPT: focus exclusively on %s (%s), worth %.1f points. %s",
		top.ID, top.Description, top.MaxPoints, top.PassCondition)
	h.Recommendations = []string{fmt.Sprintf("Satisfy %s: %s", top.ID, top.PassCondition)}
	return h
}
