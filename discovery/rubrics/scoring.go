/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"fmt"

	"github.com/exergylab/discovery/rubric"
)

const domain = "energy"

// countScore awards points for how many of something a candidate has.
func countScore(max float64, n int, noun string, ladder ...rubric.Step) rubric.ItemScore {
	if n <= 0 {
		return rubric.Missing(max, "no "+noun)
	}
	return rubric.Award(max, rubric.Ladder(float64(n), ladder...), fmt.Sprintf("%d %s", n, noun))
}

// shareScore awards points in proportion to the share of n items that
// satisfy a condition.
func shareScore(max float64, ok, n int, what string) rubric.ItemScore {
	if n <= 0 {
		return rubric.Missing(max, "nothing to assess for "+what)
	}
	return rubric.Award(max, float64(ok)/float64(n), fmt.Sprintf("%d of %d %s", ok, n, what))
}
