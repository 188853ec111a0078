/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rubric  *Rubric[string]
		wantErr []error
	}{{
		name: "valid",
		rubric: &Rubric[string]{
			ID: "ok",
			Items: []Item[string]{{
				ID:     "A",
				Points: 7,
				PartialConditions: []PartialCondition{
					{Condition: "half", Points: 3.5},
					{Condition: "rest", Points: 3.5},
				},
			}, {
				ID:     "B",
				Points: 3,
			}},
		},
	}, {
		name: "within tolerance",
		rubric: &Rubric[string]{
			ID: "close",
			Items: []Item[string]{
				{ID: "A", Points: 3.3333},
				{ID: "B", Points: 3.3333},
				{ID: "C", Points: 3.3334},
			},
		},
	}, {
		name: "points short of ten",
		rubric: &Rubric[string]{
			ID: "short",
			Items: []Item[string]{
				{ID: "A", Points: 5},
				{ID: "B", Points: 4},
			},
		},
		wantErr: []error{ErrPointSum},
	}, {
		name: "partial conditions mismatch",
		rubric: &Rubric[string]{
			ID: "partial",
			Items: []Item[string]{{
				ID:     "A",
				Points: 10,
				PartialConditions: []PartialCondition{
					{Condition: "some", Points: 4},
				},
			}},
		},
		wantErr: []error{ErrPartialSum},
	}, {
		name: "every problem reported",
		rubric: &Rubric[string]{
			ID: "broken",
			Items: []Item[string]{{
				ID:                "A",
				Points:            2,
				PartialConditions: []PartialCondition{{Points: 1}},
			}, {
				ID:     "A",
				Points: 2,
			}},
		},
		wantErr: []error{ErrPointSum, ErrPartialSum, ErrDuplicateItem},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rubric.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, wanted nil", err)
				}
				return
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, wanted %v", err, want)
				}
			}
		})
	}
}

func TestCheck(t *testing.T) {
	bad := &Rubric[string]{ID: "bad", Items: []Item[string]{{ID: "A", Points: 1}}}

	got, err := Check(context.Background(), bad, false)
	if err != nil {
		t.Errorf("lenient Check() = %v, wanted nil", err)
	}
	if got != bad {
		t.Error("lenient Check() did not return the rubric")
	}

	if _, err := Check(context.Background(), bad, true); !errors.Is(err, ErrPointSum) {
		t.Errorf("strict Check() = %v, wanted %v", err, ErrPointSum)
	}
}

func TestMustValidatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustValidate did not panic")
		}
	}()
	MustValidate(&Rubric[string]{ID: "bad"})
}

func TestRubricDefaults(t *testing.T) {
	r := &Rubric[string]{}
	if got := r.Threshold(); got != DefaultSuccessThreshold {
		t.Errorf("Threshold: got = %v, wanted = %v", got, DefaultSuccessThreshold)
	}
	if got := r.Iterations(); got != DefaultMaxIterations {
		t.Errorf("Iterations: got = %v, wanted = %v", got, DefaultMaxIterations)
	}
}
