/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"fmt"
	"strings"
)

const (
	// TotalPoints is the fixed sum of item points in every rubric.
	TotalPoints = 10.0

	// DefaultSuccessThreshold is the score at or above which a candidate passes.
	DefaultSuccessThreshold = 7.0

	// DefaultMaxIterations bounds refinement attempts when a rubric does not say otherwise.
	DefaultMaxIterations = 3

	// PassFraction is the share of an item's points needed for the item to pass.
	PassFraction = 0.7

	// tolerance for floating point sum checks.
	tolerance = 0.001
)

// Category groups related rubric items.
type Category string

const (
	CategoryCompleteness Category = "completeness"
	CategoryRigor        Category = "rigor"
	CategoryNovelty      Category = "novelty"
	CategoryFeasibility  Category = "feasibility"
	CategoryEvidence     Category = "evidence"
	CategoryPhysics      Category = "physics"
	CategorySafety       Category = "safety"
	CategoryEconomics    Category = "economics"
)

// PartialCondition documents one rung of an item's scoring ladder.
type PartialCondition struct {
	Condition string  `json:"condition"`
	Points    float64 `json:"points"`
}

// Item is one weighted criterion within a rubric.
type Item[T any] struct {
	// ID is a short code such as "H1".
	ID string `json:"id"`

	// Description says what the criterion measures.
	Description string `json:"description"`

	// Points is the item's share of the rubric's 10 points.
	Points float64 `json:"points"`

	Category Category `json:"category"`

	// PassCondition is the human-readable bar for full credit.
	PassCondition string `json:"pass_condition"`

	// PartialConditions documents the scoring ladder. When present the
	// points must sum to Points.
	PartialConditions []PartialCondition `json:"partial_conditions,omitempty"`

	// AutomatedValidation scores a candidate without external judgment.
	// It must be a pure function of its input and must tolerate nil or
	// partially populated candidates.
	AutomatedValidation func(candidate T) ItemScore `json:"-"`
}

// PassBar returns the points an item needs to count as passed.
func (i Item[T]) PassBar() float64 {
	return i.Points * PassFraction
}

// Rubric is a named, weighted checklist used to score one phase's output.
type Rubric[T any] struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phase  string `json:"phase"`
	Domain string `json:"domain"`

	Items []Item[T] `json:"items"`

	// SuccessThreshold is the total score (0-10) at or above which a judged
	// output passes.
	SuccessThreshold float64 `json:"success_threshold"`

	// MaxIterations bounds refinement attempts for this rubric. Zero means
	// DefaultMaxIterations.
	MaxIterations int `json:"max_iterations"`
}

// Threshold returns the success threshold, falling back to the default when unset.
func (r *Rubric[T]) Threshold() float64 {
	if r.SuccessThreshold <= 0 {
		return DefaultSuccessThreshold
	}
	return r.SuccessThreshold
}

// Iterations returns the iteration bound, falling back to the default when unset.
func (r *Rubric[T]) Iterations() int {
	if r.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return r.MaxIterations
}

// Item returns the item with the given id.
func (r *Rubric[T]) Item(id string) (Item[T], bool) {
	for _, it := range r.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item[T]{}, false
}

// String returns a compact description of the rubric for logs.
func (r *Rubric[T]) String() string {
	ids := make([]string, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, fmt.Sprintf("%s=%.1f", it.ID, it.Points))
	}
	return fmt.Sprintf("%s (%s) [%s] threshold=%.1f", r.Name, r.Phase, strings.Join(ids, " "), r.Threshold())
}
