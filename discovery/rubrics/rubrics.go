/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubrics

import (
	"context"
	"errors"

	"github.com/exergylab/discovery/discovery/model"
	"github.com/exergylab/discovery/rubric"
)

// Set holds the rubric of every refined phase.
type Set struct {
	Research   *rubric.Rubric[*model.Research]
	Hypothesis *rubric.Rubric[*model.HypothesisSet]
	Experiment *rubric.Rubric[*model.Experiment]
	Simulation *rubric.Rubric[*model.Simulation]
	Validation *rubric.Rubric[*model.Validation]
}

// Load builds every rubric and checks it. Structural problems are logged
// and the rubric is used anyway, unless strict is set, in which case every
// problem is returned.
func Load(ctx context.Context, strict bool) (*Set, error) {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	s := &Set{}
	var err error
	s.Research, err = rubric.Check(ctx, Research(), strict)
	check(err)
	s.Hypothesis, err = rubric.Check(ctx, Hypothesis(), strict)
	check(err)
	s.Experiment, err = rubric.Check(ctx, Experiment(), strict)
	check(err)
	s.Simulation, err = rubric.Check(ctx, Simulation(), strict)
	check(err)
	s.Validation, err = rubric.Check(ctx, Validation(), strict)
	check(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}
