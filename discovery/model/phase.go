/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

// Phase names one stage of a discovery run.
type Phase string

const (
	PhaseResearch   Phase = "research"
	PhaseHypothesis Phase = "hypothesis"
	PhaseExperiment Phase = "experiment"
	PhaseSimulation Phase = "simulation"
	PhaseExergy     Phase = "exergy"
	PhaseTEA        Phase = "tea"
	PhaseValidation Phase = "validation"
)

// Phases lists every phase in execution order.
var Phases = []Phase{
	PhaseResearch,
	PhaseHypothesis,
	PhaseExperiment,
	PhaseSimulation,
	PhaseExergy,
	PhaseTEA,
	PhaseValidation,
}
