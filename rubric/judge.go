/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

// ExternalJudge scores items that have no automated validation, typically by
// asking a model. Implementations return the earned points on the item's own
// scale.
type ExternalJudge[T any] interface {
	JudgeItem(ctx context.Context, problem string, candidate T, item Item[T]) (ItemScore, error)
}

// Result is the outcome of scoring one candidate against one rubric.
type Result[T any] struct {
	TotalScore      float64     `json:"total_score"`
	Passed          bool        `json:"passed"`
	ItemScores      []ItemScore `json:"item_scores"`
	FailedItems     []Item[T]   `json:"failed_items"`
	PassedItems     []Item[T]   `json:"passed_items"`
	Recommendations []string    `json:"recommendations"`
	IterationHint   string      `json:"iteration_hint"`
}

// Score returns the ItemScore for the given item id.
func (r *Result[T]) Score(id string) (ItemScore, bool) {
	for _, s := range r.ItemScores {
		if s.ItemID == id {
			return s, true
		}
	}
	return ItemScore{}, false
}

// String returns a human-readable summary of the judgment.
func (r *Result[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %.2f/10 (passed=%t)\n", r.TotalScore, r.Passed)
	for _, s := range r.ItemScores {
		fmt.Fprintf(&sb, "  %s\n", s)
	}
	if r.IterationHint != "" {
		fmt.Fprintf(&sb, "Next: %s\n", r.IterationHint)
	}
	return sb.String()
}

// Judge scores candidates against rubrics.
type Judge[T any] struct {
	external    ExternalJudge[T]
	concurrency int
}

// Option configures a Judge.
type Option[T any] func(*Judge[T])

// WithExternalJudge sets the judgment used for items without automated validation.
func WithExternalJudge[T any](e ExternalJudge[T]) Option[T] {
	return func(j *Judge[T]) {
		j.external = e
	}
}

// WithConcurrency bounds the number of candidates JudgeBatch scores at once.
// Values below one mean unbounded.
func WithConcurrency[T any](n int) Option[T] {
	return func(j *Judge[T]) {
		j.concurrency = n
	}
}

// NewJudge creates a Judge.
func NewJudge[T any](opts ...Option[T]) *Judge[T] {
	j := &Judge[T]{}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Judge scores candidate against every item of r. It never fails: scorer
// panics and external judgment errors become zero-point scores.
func (j *Judge[T]) Judge(ctx context.Context, problem string, candidate T, r *Rubric[T]) *Result[T] {
	log := clog.FromContext(ctx).With("rubric", r.ID)

	res := &Result[T]{
		ItemScores: make([]ItemScore, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		s := j.scoreItem(ctx, problem, candidate, item)
		res.ItemScores = append(res.ItemScores, s)
		res.TotalScore += s.Points
		if s.Passed {
			res.PassedItems = append(res.PassedItems, item)
		} else {
			res.FailedItems = append(res.FailedItems, item)
		}
	}
	res.Passed = res.TotalScore >= r.Threshold()
	res.Recommendations = recommendations(res)
	res.IterationHint = iterationHint(res)

	log.Debugf("judged candidate: score=%.2f passed=%t failed=%d", res.TotalScore, res.Passed, len(res.FailedItems))
	return res
}

// JudgeBatch scores independent candidates in parallel and returns results in
// input order.
func (j *Judge[T]) JudgeBatch(ctx context.Context, problem string, candidates []T, r *Rubric[T]) []*Result[T] {
	results := make([]*Result[T], len(candidates))

	var g errgroup.Group
	if j.concurrency > 0 {
		g.SetLimit(j.concurrency)
	}
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = j.Judge(ctx, problem, c, r)
			return nil
		})
	}
	_ = g.Wait() // Judge never returns an error.
	return results
}

func (j *Judge[T]) scoreItem(ctx context.Context, problem string, candidate T, item Item[T]) (s ItemScore) {
	defer func() {
		if p := recover(); p != nil {
			s = ItemScore{
				Reasoning: fmt.Sprint(p),
				Judged:    true,
				Source:    SourceError,
			}
			clog.FromContext(ctx).With("item", item.ID).Warnf("scorer panicked: %v", p)
		}
		s = normalize(s, item)
	}()

	switch {
	case item.AutomatedValidation != nil:
		s = item.AutomatedValidation(candidate)
		s.Judged = true
		if s.Source == "" {
			s.Source = SourceAutomated
		}

	case j.external != nil:
		es, err := j.external.JudgeItem(ctx, problem, candidate, item)
		if err != nil {
			clog.FromContext(ctx).With("item", item.ID).Warnf("external judgment failed: %v", err)
			return ItemScore{Reasoning: err.Error(), Judged: true, Source: SourceError}
		}
		es.Source = SourceExternal
		es.Judged = true
		s = es

	default:
		s = ItemScore{
			Reasoning: "no automated validation available; requires external judgment",
			Source:    SourceUnjudged,
		}
	}
	return s
}

// normalize pins the score to its item, clamps points into [0, max] and
// derives Passed from the clamped points.
func normalize[T any](s ItemScore, item Item[T]) ItemScore {
	s.ItemID = item.ID
	s.MaxPoints = item.Points
	if math.IsNaN(s.Points) || s.Points < 0 {
		s.Points = 0
	}
	if s.Points > item.Points {
		s.Points = item.Points
	}
	if s.Source == SourceError || s.Source == SourceUnjudged {
		s.Points = 0
	}
	s.Passed = s.Judged && s.Source != SourceError && s.Points >= item.PassBar()-tolerance
	if s.Reasoning == "" {
		s.Reasoning = fmt.Sprintf("%.2f of %.2f points", s.Points, item.Points)
	}
	return s
}

func recommendations[T any](res *Result[T]) []string {
	recs := make([]string, 0, len(res.FailedItems))
	for _, item := range res.FailedItems {
		s, _ := res.Score(item.ID)
		recs = append(recs, fmt.Sprintf("%s (%s): %s [%.1f/%.1f] %s", item.ID, item.Description, item.PassCondition, s.Points, s.MaxPoints, s.Reasoning))
	}
	return recs
}

// iterationHint surfaces the failed item with the smallest gap to its pass bar.
func iterationHint[T any](res *Result[T]) string {
	if len(res.FailedItems) == 0 {
		return "All criteria passed."
	}
	failed := prioritize(res.FailedItems, res)

	first := failed[0]
	s, _ := res.Score(first.ID)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Fix %s first (%s): needs %.2f more points. %s", first.ID, first.Description, s.Gap(first.PassBar()), first.PassCondition)
	if len(failed) > 1 {
		rest := make([]string, 0, len(failed)-1)
		for _, it := range failed[1:] {
			rest = append(rest, it.ID)
		}
		fmt.Fprintf(&sb, " Then: %s.", strings.Join(rest, ", "))
	}
	return sb.String()
}

// prioritize orders failed items by gap to pass ascending, breaking ties with
// heavier items first and then by id.
func prioritize[T any](items []Item[T], res *Result[T]) []Item[T] {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item[T]) int {
		sa, _ := res.Score(a.ID)
		sb, _ := res.Score(b.ID)
		ga, gb := sa.Gap(a.PassBar()), sb.Gap(b.PassBar())
		switch {
		case ga < gb:
			return -1
		case ga > gb:
			return 1
		case a.Points > b.Points:
			return -1
		case a.Points < b.Points:
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
