/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type essay struct {
	Words  int
	Cites  []string
	Closed bool
}

func testRubric() *Rubric[*essay] {
	return &Rubric[*essay]{
		ID:               "essay",
		Name:             "Essay quality",
		Phase:            "writing",
		SuccessThreshold: 7,
		Items: []Item[*essay]{{
			ID:            "E1",
			Description:   "Length",
			Points:        4,
			PassCondition: "at least 500 words",
			AutomatedValidation: func(e *essay) ItemScore {
				if e == nil {
					return Missing(4, "no essay")
				}
				return Award(4, Ladder(float64(e.Words), Step{500, 1}, Step{250, 0.5}), "word count")
			},
		}, {
			ID:            "E2",
			Description:   "Citations",
			Points:        4,
			PassCondition: "at least 3 citations",
			AutomatedValidation: func(e *essay) ItemScore {
				if e == nil || len(e.Cites) == 0 {
					return Missing(4, "no citations")
				}
				return Award(4, Ladder(float64(len(e.Cites)), Step{3, 1}, Step{2, 0.75}, Step{1, 0.25}), "citation count")
			},
		}, {
			ID:            "E3",
			Description:   "Conclusion",
			Points:        2,
			PassCondition: "has a conclusion",
			AutomatedValidation: func(e *essay) ItemScore {
				if e == nil || !e.Closed {
					return Missing(2, "no conclusion")
				}
				return Award(2, 1, "concluded")
			},
		}},
	}
}

func TestJudge(t *testing.T) {
	tests := []struct {
		name       string
		candidate  *essay
		wantScore  float64
		wantPassed bool
		wantFailed []string
	}{{
		name:       "full marks",
		candidate:  &essay{Words: 900, Cites: []string{"a", "b", "c"}, Closed: true},
		wantScore:  10,
		wantPassed: true,
	}, {
		name:       "partial credit",
		candidate:  &essay{Words: 300, Cites: []string{"a", "b"}, Closed: true},
		wantScore:  2 + 3 + 2,
		wantPassed: true,
		wantFailed: []string{"E1"},
	}, {
		name:       "nil candidate",
		candidate:  nil,
		wantScore:  0,
		wantPassed: false,
		wantFailed: []string{"E1", "E2", "E3"},
	}, {
		name:       "empty candidate",
		candidate:  &essay{},
		wantScore:  0,
		wantPassed: false,
		wantFailed: []string{"E1", "E2", "E3"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewJudge[*essay]().Judge(context.Background(), "problem", tt.candidate, testRubric())
			if got.TotalScore != tt.wantScore {
				t.Errorf("TotalScore: got = %v, wanted = %v", got.TotalScore, tt.wantScore)
			}
			if got.Passed != tt.wantPassed {
				t.Errorf("Passed: got = %v, wanted = %v", got.Passed, tt.wantPassed)
			}
			var failed []string
			for _, it := range got.FailedItems {
				failed = append(failed, it.ID)
			}
			if diff := cmp.Diff(tt.wantFailed, failed); diff != "" {
				t.Errorf("FailedItems (-want +got):\n%s", diff)
			}
			if len(got.PassedItems)+len(got.FailedItems) != len(got.ItemScores) {
				t.Errorf("partition covers %d items, wanted %d", len(got.PassedItems)+len(got.FailedItems), len(got.ItemScores))
			}
			for _, s := range got.ItemScores {
				if s.Reasoning == "" {
					t.Errorf("%s: empty reasoning", s.ItemID)
				}
			}
		})
	}
}

func TestJudgeIdempotent(t *testing.T) {
	r := testRubric()
	candidate := &essay{Words: 420, Cites: []string{"a"}, Closed: false}
	j := NewJudge[*essay]()

	first := j.Judge(context.Background(), "problem", candidate, r)
	second := j.Judge(context.Background(), "problem", candidate, r)

	if first.TotalScore != second.TotalScore {
		t.Errorf("TotalScore: got = %v, wanted = %v", second.TotalScore, first.TotalScore)
	}
	if diff := cmp.Diff(first.ItemScores, second.ItemScores); diff != "" {
		t.Errorf("ItemScores differ (-first +second):\n%s", diff)
	}
}

func TestJudgeRecoversScorerPanic(t *testing.T) {
	r := testRubric()
	r.Items[1].AutomatedValidation = func(*essay) ItemScore {
		panic("citation index out of range")
	}

	got := NewJudge[*essay]().Judge(context.Background(), "problem", &essay{Words: 600, Closed: true}, r)

	s, ok := got.Score("E2")
	if !ok {
		t.Fatal("E2 missing from item scores")
	}
	if s.Points != 0 {
		t.Errorf("Points: got = %v, wanted = 0", s.Points)
	}
	if s.Reasoning != "citation index out of range" {
		t.Errorf("Reasoning: got = %q, wanted panic message", s.Reasoning)
	}
	if s.Source != SourceError {
		t.Errorf("Source: got = %v, wanted = %v", s.Source, SourceError)
	}
	// The remaining items are still scored.
	if got.TotalScore != 6 {
		t.Errorf("TotalScore: got = %v, wanted = 6", got.TotalScore)
	}
}

func TestJudgeClampsPoints(t *testing.T) {
	r := &Rubric[int]{
		ID: "clamp",
		Items: []Item[int]{{
			ID:     "A",
			Points: 5,
			AutomatedValidation: func(int) ItemScore {
				return ItemScore{Points: 12, Passed: true, Reasoning: "generous"}
			},
		}, {
			ID:     "B",
			Points: 5,
			AutomatedValidation: func(int) ItemScore {
				return ItemScore{Points: -3, Reasoning: "harsh"}
			},
		}},
	}

	got := NewJudge[int]().Judge(context.Background(), "", 0, r)
	want := []ItemScore{{
		ItemID: "A", Points: 5, MaxPoints: 5, Passed: true, Reasoning: "generous", Judged: true, Source: SourceAutomated,
	}, {
		ItemID: "B", Points: 0, MaxPoints: 5, Reasoning: "harsh", Judged: true, Source: SourceAutomated,
	}}
	if diff := cmp.Diff(want, got.ItemScores); diff != "" {
		t.Errorf("ItemScores (-want +got):\n%s", diff)
	}
}

func TestJudgeAutomatedItemsAreJudged(t *testing.T) {
	tests := []struct {
		name       string
		score      ItemScore
		wantSource Source
		wantPassed bool
	}{{
		name:       "award helper",
		score:      Award(2, 1, "concluded"),
		wantSource: SourceAutomated,
		wantPassed: true,
	}, {
		name:       "scorer names its own source",
		score:      ItemScore{Points: 0.5, Passed: true, Source: "unit-check", Reasoning: "units mismatch"},
		wantSource: "unit-check",
		wantPassed: false,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRubric()
			r.Items[2].AutomatedValidation = func(*essay) ItemScore { return tt.score }

			got := NewJudge[*essay]().Judge(context.Background(), "problem", &essay{}, r)

			s, _ := got.Score("E3")
			if !s.Judged {
				t.Error("Judged: got = false, wanted = true")
			}
			if s.Source != tt.wantSource {
				t.Errorf("Source: got = %v, wanted = %v", s.Source, tt.wantSource)
			}
			if s.Passed != tt.wantPassed {
				t.Errorf("Passed: got = %v, wanted = %v", s.Passed, tt.wantPassed)
			}
		})
	}
}

func TestJudgeUnjudgedItem(t *testing.T) {
	r := testRubric()
	r.Items[2].AutomatedValidation = nil

	got := NewJudge[*essay]().Judge(context.Background(), "problem", &essay{Words: 600, Cites: []string{"a", "b", "c"}, Closed: true}, r)

	s, _ := got.Score("E3")
	if s.Judged {
		t.Error("Judged: got = true, wanted = false")
	}
	if s.Points != 0 || s.Passed {
		t.Errorf("unjudged item scored %v (passed=%v), wanted 0 and failed", s.Points, s.Passed)
	}
	if got.TotalScore != 8 {
		t.Errorf("TotalScore: got = %v, wanted = 8", got.TotalScore)
	}
}

type fakeExternal struct {
	points float64
	passed bool
	err    error
	calls  atomic.Int32
}

func (f *fakeExternal) JudgeItem(_ context.Context, _ string, _ *essay, item Item[*essay]) (ItemScore, error) {
	f.calls.Add(1)
	if f.err != nil {
		return ItemScore{}, f.err
	}
	return ItemScore{Points: f.points, Passed: f.passed, Reasoning: "external says so"}, nil
}

func TestJudgeExternal(t *testing.T) {
	tests := []struct {
		name       string
		ext        *fakeExternal
		wantPoints float64
		wantPassed bool
		wantSource Source
	}{{
		name:       "external full credit",
		ext:        &fakeExternal{points: 2},
		wantPoints: 2,
		wantPassed: true,
		wantSource: SourceExternal,
	}, {
		name:       "external partial credit",
		ext:        &fakeExternal{points: 1},
		wantPoints: 1,
		wantPassed: false,
		wantSource: SourceExternal,
	}, {
		name:       "external claims a pass below the bar",
		ext:        &fakeExternal{points: 1, passed: true},
		wantPoints: 1,
		wantPassed: false,
		wantSource: SourceExternal,
	}, {
		name:       "external overshoots the item maximum",
		ext:        &fakeExternal{points: 9},
		wantPoints: 2,
		wantPassed: true,
		wantSource: SourceExternal,
	}, {
		name:       "external error",
		ext:        &fakeExternal{err: errors.New("model unavailable")},
		wantPoints: 0,
		wantPassed: false,
		wantSource: SourceError,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRubric()
			r.Items[2].AutomatedValidation = nil

			j := NewJudge(WithExternalJudge[*essay](tt.ext))
			got := j.Judge(context.Background(), "problem", &essay{}, r)

			s, _ := got.Score("E3")
			if s.Points != tt.wantPoints {
				t.Errorf("Points: got = %v, wanted = %v", s.Points, tt.wantPoints)
			}
			if s.Passed != tt.wantPassed {
				t.Errorf("Passed: got = %v, wanted = %v", s.Passed, tt.wantPassed)
			}
			if s.Source != tt.wantSource {
				t.Errorf("Source: got = %v, wanted = %v", s.Source, tt.wantSource)
			}
			if n := tt.ext.calls.Load(); n != 1 {
				t.Errorf("external calls: got = %d, wanted = 1", n)
			}
		})
	}
}

func TestIterationHint(t *testing.T) {
	// E1 earns 2/4 (gap 0.8), E2 earns 1/4 (gap 1.8), E3 earns 0/2 (gap 1.4).
	candidate := &essay{Words: 300, Cites: []string{"a"}}
	got := NewJudge[*essay]().Judge(context.Background(), "problem", candidate, testRubric())

	if !strings.HasPrefix(got.IterationHint, "Fix E1 first") {
		t.Errorf("IterationHint: got = %q, wanted E1 first", got.IterationHint)
	}
	if !strings.HasSuffix(got.IterationHint, "Then: E3, E2.") {
		t.Errorf("IterationHint: got = %q, wanted E3 then E2", got.IterationHint)
	}
	if len(got.Recommendations) != 3 {
		t.Errorf("Recommendations: got = %d, wanted = 3", len(got.Recommendations))
	}
}

func TestIterationHintAllPassed(t *testing.T) {
	got := NewJudge[*essay]().Judge(context.Background(), "problem",
		&essay{Words: 900, Cites: []string{"a", "b", "c"}, Closed: true}, testRubric())
	if got.IterationHint != "All criteria passed." {
		t.Errorf("IterationHint: got = %q", got.IterationHint)
	}
	if len(got.Recommendations) != 0 {
		t.Errorf("Recommendations: got = %v, wanted none", got.Recommendations)
	}
}

func TestJudgeBatch(t *testing.T) {
	candidates := []*essay{
		{Words: 900, Cites: []string{"a", "b", "c"}, Closed: true},
		nil,
		{Words: 300, Cites: []string{"a", "b"}, Closed: true},
		{},
	}
	want := []float64{10, 0, 7, 0}

	for _, limit := range []int{0, 1, 2} {
		j := NewJudge(WithConcurrency[*essay](limit))
		got := j.JudgeBatch(context.Background(), "problem", candidates, testRubric())
		if len(got) != len(want) {
			t.Fatalf("len: got = %d, wanted = %d", len(got), len(want))
		}
		for i, res := range got {
			if res.TotalScore != want[i] {
				t.Errorf("limit %d, candidate %d: got = %v, wanted = %v", limit, i, res.TotalScore, want[i])
			}
		}
	}
}

func TestTwoItemRubricPassesOnTotal(t *testing.T) {
	// B is below its own pass bar on the first call, but the total clears the
	// rubric threshold regardless of individual item flags.
	var calls int
	r := &Rubric[int]{
		ID:               "two",
		SuccessThreshold: 7,
		Items: []Item[int]{{
			ID:     "A",
			Points: 6,
			AutomatedValidation: func(int) ItemScore {
				return Award(6, 1, "always full")
			},
		}, {
			ID:     "B",
			Points: 4,
			AutomatedValidation: func(int) ItemScore {
				calls++
				if calls == 1 {
					return ItemScore{Points: 3, Passed: false, Reasoning: "three of four"}
				}
				return Award(4, 1, "full")
			},
		}},
	}

	got := NewJudge[int]().Judge(context.Background(), "", 1, r)
	if got.TotalScore != 9 {
		t.Errorf("TotalScore: got = %v, wanted = 9", got.TotalScore)
	}
	if !got.Passed {
		t.Error("Passed: got = false, wanted = true")
	}
	if diff := cmp.Diff([]string{"B"}, []string{got.FailedItems[0].ID}); diff != "" {
		t.Errorf("FailedItems (-want +got):\n%s", diff)
	}
}
