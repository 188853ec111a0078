/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/exergylab/discovery/discovery"
)

// Status is the lifecycle state of a discovery run.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Done reports whether the run has finished.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Progress is the polled view of a run.
type Progress struct {
	ID          string            `json:"id"`
	Query       string            `json:"query"`
	Status      Status            `json:"status"`
	Progress    int               `json:"progress"`
	CurrentStep string            `json:"current_step,omitempty"`
	Error       string            `json:"error,omitempty"`
	Report      *discovery.Report `json:"report,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// run records the events of one discovery and wakes readers when new ones
// arrive. Readers keep their own cursor into the backlog.
type run struct {
	mu       sync.Mutex
	progress Progress
	events   []discovery.Event
	changed  chan struct{}
}

func newRun(id, query string) *run {
	now := time.Now()
	return &run{
		progress: Progress{
			ID:        id,
			Query:     query,
			Status:    StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
		changed: make(chan struct{}),
	}
}

func (r *run) snapshot() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}

// since returns the events after cursor, whether the run is done, and a
// channel that is closed on the next change.
func (r *run) since(cursor int) ([]discovery.Event, bool, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var evs []discovery.Event
	if cursor < len(r.events) {
		evs = append(evs, r.events[cursor:]...)
	}
	return evs, r.progress.Status.Done(), r.changed
}

// broadcast must be called with mu held.
func (r *run) broadcast() {
	r.progress.UpdatedAt = time.Now()
	close(r.changed)
	r.changed = make(chan struct{})
}

func (r *run) apply(ev discovery.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress.Status.Done() {
		return
	}

	r.events = append(r.events, ev)
	p := &r.progress
	p.Progress = max(p.Progress, ev.Progress)

	switch ev.Kind {
	case discovery.EventRunStarted:
		p.Status = StatusRunning
		p.CurrentStep = "Starting discovery"
	case discovery.EventPhaseStarted:
		p.CurrentStep = fmt.Sprintf("Running %s phase", ev.Phase)
	case discovery.EventIterationJudged:
		p.CurrentStep = fmt.Sprintf("%s iteration %d scored %.2f", ev.Phase, ev.Iteration, ev.Score)
	case discovery.EventPhaseCompleted:
		p.CurrentStep = fmt.Sprintf("Completed %s phase (score %.2f)", ev.Phase, ev.Score)
	case discovery.EventRunCompleted:
		p.Status = StatusCompleted
		p.Progress = 100
		p.CurrentStep = "Discovery complete"
		p.Report = ev.Report
	case discovery.EventRunFailed:
		p.Status = StatusFailed
		p.Error = ev.Message
	}
	r.broadcast()
}

// finish settles the run once the orchestrator returns, covering errors
// that produced no terminal event.
func (r *run) finish(report *discovery.Report, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress.Status.Done() {
		return
	}
	p := &r.progress
	if err != nil {
		p.Status = StatusFailed
		p.Error = err.Error()
	} else {
		p.Status = StatusCompleted
		p.Progress = 100
		p.Report = report
	}
	r.broadcast()
}
