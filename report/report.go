/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/exergylab/discovery/agents/evals"
	"github.com/exergylab/discovery/discovery"
)

// Markdown renders a discovery report: the overall score and tier, a table
// with one row per phase, the lead hypothesis and the open recommendations.
func Markdown(r *discovery.Report) string {
	var buf bytes.Buffer
	_ = Write(&buf, r)
	return buf.String()
}

// Write renders r as Markdown to w.
func Write(w io.Writer, r *discovery.Report) error {
	var buf bytes.Buffer
	if r == nil {
		buf.WriteString("No report.\n")
		_, err := w.Write(buf.Bytes())
		return err
	}

	fmt.Fprintf(&buf, "# Discovery report\n\n")
	fmt.Fprintf(&buf, "**Query:** %s\n\n", r.Query)
	fmt.Fprintf(&buf, "**Overall score:** %.2f/10 (%s)\n\n", r.OverallScore, r.Tier)

	table := newTable(&buf, []string{"Phase", "Score", "Passed", "Weight", "Iterations", "Best", "Stop", "Path"})
	for _, p := range r.Phases {
		passed := "yes"
		if !p.Passed {
			passed = "❌ no"
		}
		_ = table.Append([]string{
			string(p.Phase),
			fmt.Sprintf("%.2f", p.Score),
			passed,
			fmt.Sprintf("%.1f", p.Weight),
			fmt.Sprintf("%d", p.Iterations),
			fmt.Sprintf("%d", p.BestIteration),
			string(p.StopReason),
			path(p.ImprovementPath),
		})
	}
	_ = table.Render()

	if r.Lead != nil {
		fmt.Fprintf(&buf, "\n## Lead hypothesis\n\n**%s:** %s\n", r.Lead.ID, r.Lead.Statement)
		if r.Lead.Mechanism != "" {
			fmt.Fprintf(&buf, "\n%s\n", r.Lead.Mechanism)
		}
	}

	var open []discovery.PhaseResult
	for _, p := range r.Phases {
		if !p.Passed && (len(p.Recommendations) > 0 || len(p.Notes) > 0) {
			open = append(open, p)
		}
	}
	if len(open) > 0 {
		buf.WriteString("\n## Open issues\n")
		for _, p := range open {
			fmt.Fprintf(&buf, "\n### %s\n\n", p.Phase)
			for _, rec := range p.Recommendations {
				fmt.Fprintf(&buf, "- %s\n", rec)
			}
			for _, n := range p.Notes {
				fmt.Fprintf(&buf, "- _%s_\n", n)
			}
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// path formats an improvement path as "4.2 → 6.1 → 7.5".
func path(scores []float64) string {
	if len(scores) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, fmt.Sprintf("%.1f", s))
	}
	return strings.Join(parts, " → ")
}

// Grades renders the grades collected per phase by a namespaced observer.
// Scores are shown on the 0-10 rubric scale; namespaces whose best grade is
// below threshold (a 0-1 fraction) are marked, and the boolean reports
// whether any was.
func Grades(obs *evals.NamespacedObserver[*evals.ResultCollector], threshold float64) (string, bool) {
	var buf bytes.Buffer
	table := newTable(&buf, []string{"Phase", "Iterations", "Failures", "Mean", "Best"})

	rows, below := 0, false
	obs.Walk(func(name string, c *evals.ResultCollector) {
		grades := c.Grades()
		if len(grades) == 0 && len(c.Failures()) == 0 {
			return
		}
		rows++

		var sum float64
		for _, g := range grades {
			sum += g.Score
		}
		mean, best := "-", "-"
		if len(grades) > 0 {
			mean = fmt.Sprintf("%.2f", sum/float64(len(grades))*10)
		}
		if b, ok := c.Best(); ok {
			best = fmt.Sprintf("%.2f", b.Score*10)
			if b.Score < threshold {
				best = "❌ " + best
				below = true
			}
		} else {
			best = "❌ -"
			below = true
		}
		_ = table.Append([]string{
			strings.TrimPrefix(name, "/"),
			fmt.Sprintf("%d", len(grades)),
			fmt.Sprintf("%d", len(c.Failures())),
			mean,
			best,
		})
	})
	if rows == 0 {
		return "", false
	}
	_ = table.Render()
	return buf.String(), below
}
