/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"time"

	"github.com/exergylab/discovery/discovery/model"
)

// EventKind names a progress event.
type EventKind string

const (
	EventRunStarted      EventKind = "run_started"
	EventPhaseStarted    EventKind = "phase_started"
	EventIterationJudged EventKind = "iteration_judged"
	EventPhaseCompleted  EventKind = "phase_completed"
	EventRunCompleted    EventKind = "run_completed"
	EventRunFailed       EventKind = "run_failed"
)

// Terminal reports whether no event follows e.
func (k EventKind) Terminal() bool {
	return k == EventRunCompleted || k == EventRunFailed
}

// Event reports progress of a run.
type Event struct {
	Kind  EventKind   `json:"kind"`
	Phase model.Phase `json:"phase,omitempty"`

	// Progress is the percentage of phases completed.
	Progress int `json:"progress"`

	// Iteration and Score are set on iteration_judged events. Score is on
	// the 0-10 rubric scale.
	Iteration int     `json:"iteration,omitempty"`
	Score     float64 `json:"score,omitempty"`

	Message string `json:"message,omitempty"`

	// Result is set on phase_completed, Report on run_completed.
	Result *PhaseResult `json:"result,omitempty"`
	Report *Report      `json:"report,omitempty"`

	Time time.Time `json:"time"`
}

func progress(completed int) int {
	return completed * 100 / len(model.Phases)
}
