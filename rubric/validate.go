/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/chainguard-dev/clog"
)

var (
	// ErrPointSum is returned when a rubric's item points do not sum to TotalPoints.
	ErrPointSum = errors.New("rubric item points do not sum to 10")

	// ErrPartialSum is returned when an item's partial conditions do not sum to its points.
	ErrPartialSum = errors.New("partial condition points do not sum to item points")

	// ErrDuplicateItem is returned when two items share an id.
	ErrDuplicateItem = errors.New("duplicate rubric item id")
)

// Validate checks the structural invariants of the rubric and returns every
// problem found joined into one error.
func (r *Rubric[T]) Validate() error {
	var errs []error

	sum := 0.0
	seen := make(map[string]struct{}, len(r.Items))
	for _, it := range r.Items {
		sum += it.Points
		if _, ok := seen[it.ID]; ok {
			errs = append(errs, fmt.Errorf("%s: %w: %s", r.ID, ErrDuplicateItem, it.ID))
		}
		seen[it.ID] = struct{}{}

		if len(it.PartialConditions) == 0 {
			continue
		}
		psum := 0.0
		for _, pc := range it.PartialConditions {
			psum += pc.Points
		}
		if math.Abs(psum-it.Points) > tolerance {
			errs = append(errs, fmt.Errorf("%s/%s: %w: got %.3f, wanted %.3f", r.ID, it.ID, ErrPartialSum, psum, it.Points))
		}
	}
	if math.Abs(sum-TotalPoints) > tolerance {
		errs = append(errs, fmt.Errorf("%s: %w: got %.3f", r.ID, ErrPointSum, sum))
	}
	return errors.Join(errs...)
}

// WarnInvalid logs validation problems and returns the rubric unchanged.
// It is the lenient load-time policy: an inconsistent rubric still runs.
func WarnInvalid[T any](ctx context.Context, r *Rubric[T]) *Rubric[T] {
	if err := r.Validate(); err != nil {
		clog.FromContext(ctx).With("rubric", r.ID).Warnf("rubric failed validation: %v", err)
	}
	return r
}

// MustValidate panics when the rubric is structurally invalid.
func MustValidate[T any](r *Rubric[T]) *Rubric[T] {
	if err := r.Validate(); err != nil {
		panic(err)
	}
	return r
}

// Check applies the strict or lenient policy.
func Check[T any](ctx context.Context, r *Rubric[T], strict bool) (*Rubric[T], error) {
	if strict {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		return r, nil
	}
	return WarnInvalid(ctx, r), nil
}
