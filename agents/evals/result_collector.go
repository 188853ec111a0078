/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"slices"
	"sync"
)

// Grade represents a grade with score and reasoning
type Grade struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// ResultCollector wraps an Observer to collect failure messages and grades.
// Failures are forwarded to the inner observer as logs.
type ResultCollector struct {
	inner    Observer
	failures []string
	grades   []Grade
	mu       sync.Mutex
}

var _ Observer = (*ResultCollector)(nil)

// NewResultCollector creates a new ResultCollector that wraps the given Observer
func NewResultCollector(inner Observer) *ResultCollector {
	if inner == nil {
		inner = Nop{}
	}
	return &ResultCollector{
		inner:    inner,
		failures: make([]string, 0),
		grades:   make([]Grade, 0),
	}
}

// Fail logs the failure message and stores it in the failures list
func (r *ResultCollector) Fail(msg string) {
	r.inner.Log(msg)

	r.mu.Lock()
	r.failures = append(r.failures, msg)
	r.mu.Unlock()
}

// Log passes through to the inner observer
func (r *ResultCollector) Log(msg string) {
	r.inner.Log(msg)
}

// Grade passes through to the inner observer and stores the grade
func (r *ResultCollector) Grade(score float64, reasoning string) {
	r.inner.Grade(score, reasoning)

	r.mu.Lock()
	r.grades = append(r.grades, Grade{
		Score:     score,
		Reasoning: reasoning,
	})
	r.mu.Unlock()
}

// Failures returns a copy of all collected failure messages
func (r *ResultCollector) Failures() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.failures)
}

// Grades returns a copy of all collected grades
func (r *ResultCollector) Grades() []Grade {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.grades)
}

// Best returns the highest grade collected so far. The earliest grade wins ties.
func (r *ResultCollector) Best() (Grade, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.grades) == 0 {
		return Grade{}, false
	}
	best := r.grades[0]
	for _, g := range r.grades[1:] {
		if g.Score > best.Score {
			best = g
		}
	}
	return best, true
}

// Increment passes through to the inner observer
func (r *ResultCollector) Increment() {
	r.inner.Increment()
}

// Total passes through to the inner observer
func (r *ResultCollector) Total() int64 {
	return r.inner.Total()
}
