/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"fmt"
	"math"
)

// Source records how an ItemScore was produced.
type Source string

const (
	SourceAutomated Source = "automated"
	SourceExternal  Source = "external"
	SourceUnjudged  Source = "unjudged"
	SourceError     Source = "error"
)

// ItemScore is the result of scoring one Item against one candidate.
type ItemScore struct {
	ItemID    string  `json:"item_id"`
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`
	Passed    bool    `json:"passed"`
	Reasoning string  `json:"reasoning"`

	// Judged is false for the placeholder emitted when no scorer or
	// external judgment was available.
	Judged bool   `json:"judged"`
	Source Source `json:"source"`
}

// Gap returns the points still missing to reach the given pass bar.
func (s ItemScore) Gap(bar float64) float64 {
	return math.Max(0, bar-s.Points)
}

// String implements fmt.Stringer.
func (s ItemScore) String() string {
	mark := "FAIL"
	if s.Passed {
		mark = "PASS"
	}
	return fmt.Sprintf("%s %.2f/%.2f %s: %s", s.ItemID, s.Points, s.MaxPoints, mark, s.Reasoning)
}

// Award builds an automated ItemScore worth fraction of max, passing when the
// earned points reach the default per-item pass bar.
func Award(max, fraction float64, reasoning string) ItemScore {
	fraction = math.Max(0, math.Min(1, fraction))
	pts := max * fraction
	return ItemScore{
		Points:    pts,
		MaxPoints: max,
		Passed:    pts >= max*PassFraction-tolerance,
		Reasoning: reasoning,
		Judged:    true,
		Source:    SourceAutomated,
	}
}

// Missing builds a zero-point automated score for absent or malformed data.
func Missing(max float64, reasoning string) ItemScore {
	return Award(max, 0, reasoning)
}

// Step is one rung of a discrete scoring ladder.
type Step struct {
	// Min is the smallest value that earns this rung.
	Min float64
	// Fraction of the item's points awarded at this rung.
	Fraction float64
}

// Ladder returns the fraction of the first step whose Min the value reaches.
// Steps are evaluated in order, so callers list them from the highest
// threshold down. A value below every step earns zero.
func Ladder(value float64, steps ...Step) float64 {
	for _, s := range steps {
		if value >= s.Min {
			return s.Fraction
		}
	}
	return 0
}
