/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder is an Observer that remembers every call.
type recorder struct {
	mu       sync.Mutex
	fails    []string
	logs     []string
	grades   []Grade
	attempts int64
}

func (r *recorder) Fail(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fails = append(r.fails, msg)
}

func (r *recorder) Log(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, msg)
}

func (r *recorder) Grade(score float64, reasoning string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grades = append(r.grades, Grade{Score: score, Reasoning: reasoning})
}

func (r *recorder) Increment() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++
}

func (r *recorder) Total() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func TestResultCollector(t *testing.T) {
	inner := &recorder{}
	c := NewResultCollector(inner)

	c.Increment()
	c.Grade(0.4, "thin evidence")
	c.Increment()
	c.Grade(0.8, "cites benchmarks")
	c.Increment()
	c.Grade(0.8, "same again")
	c.Fail("iteration 4: empty response")
	c.Log("note")

	if got, want := c.Total(), int64(3); got != want {
		t.Errorf("Total() = %d, wanted = %d", got, want)
	}
	if diff := cmp.Diff([]string{"iteration 4: empty response"}, c.Failures()); diff != "" {
		t.Errorf("Failures() (-want +got):\n%s", diff)
	}
	best, ok := c.Best()
	if !ok {
		t.Fatal("Best() = false")
	}
	if diff := cmp.Diff(Grade{Score: 0.8, Reasoning: "cites benchmarks"}, best); diff != "" {
		t.Errorf("Best() (-want +got):\n%s", diff)
	}
	if got := len(c.Grades()); got != 3 {
		t.Errorf("len(Grades()) = %d, wanted = 3", got)
	}

	// Failures reach the inner observer as logs.
	if diff := cmp.Diff([]string{"iteration 4: empty response", "note"}, inner.logs); diff != "" {
		t.Errorf("inner logs (-want +got):\n%s", diff)
	}
	if len(inner.fails) != 0 {
		t.Errorf("inner fails = %v, wanted none", inner.fails)
	}
	if got := len(inner.grades); got != 3 {
		t.Errorf("inner grades = %d, wanted = 3", got)
	}
}

func TestResultCollectorEmpty(t *testing.T) {
	c := NewResultCollector(nil)
	if _, ok := c.Best(); ok {
		t.Error("Best() = true on an empty collector")
	}
	if got := c.Total(); got != 0 {
		t.Errorf("Total() = %d, wanted = 0", got)
	}
	if got := c.Failures(); len(got) != 0 {
		t.Errorf("Failures() = %v, wanted none", got)
	}
}

func TestNamespacedObserver(t *testing.T) {
	root := NewNamespacedObserver(func(string) *recorder { return &recorder{} })

	research := root.Child("research")
	if got := root.Child("research"); got != research {
		t.Error("Child() created a second research namespace")
	}
	research.Grade(0.9, "good")
	research.Increment()
	root.Child("tea").Fail("bad JSON")
	root.Child("hypothesis").Child("H1").Grade(0.5, "vague")

	var names []string
	root.Walk(func(name string, r *recorder) {
		names = append(names, name)
	})
	want := []string{"/", "/hypothesis", "/hypothesis/H1", "/research", "/tea"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Walk() order (-want +got):\n%s", diff)
	}

	if got := research.Name(); got != "/research" {
		t.Errorf("Name() = %q, wanted = %q", got, "/research")
	}
	if got := research.Total(); got != 1 {
		t.Errorf("Total() = %d, wanted = 1", got)
	}
	if got := root.Total(); got != 0 {
		t.Errorf("root Total() = %d, wanted = 0", got)
	}
}

func TestNamespacedObserverConcurrentChildren(t *testing.T) {
	root := NewNamespacedObserver(func(string) *ResultCollector { return NewResultCollector(nil) })

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root.Child("validation").Grade(0.7, "ok")
		}()
	}
	wg.Wait()

	if got := len(root.Child("validation").inner.Grades()); got != 16 {
		t.Errorf("grades = %d, wanted = 16", got)
	}
}

func TestTee(t *testing.T) {
	first, second := &recorder{}, &recorder{}
	obs := Tee(first, second)

	obs.Increment()
	obs.Increment()
	second.Increment()
	obs.Grade(0.6, "partial")
	obs.Fail("timeout")
	obs.Log("hello")

	for i, r := range []*recorder{first, second} {
		if diff := cmp.Diff([]Grade{{Score: 0.6, Reasoning: "partial"}}, r.grades); diff != "" {
			t.Errorf("observer %d grades (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff([]string{"timeout"}, r.fails); diff != "" {
			t.Errorf("observer %d fails (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff([]string{"hello"}, r.logs); diff != "" {
			t.Errorf("observer %d logs (-want +got):\n%s", i, diff)
		}
	}

	// Total reports the first observer.
	if got := obs.Total(); got != 2 {
		t.Errorf("Total() = %d, wanted = 2", got)
	}
}

func TestNop(t *testing.T) {
	var obs Observer = Nop{}
	obs.Increment()
	obs.Grade(1, "")
	obs.Fail("")
	obs.Log("")
	if got := obs.Total(); got != 0 {
		t.Errorf("Total() = %d, wanted = 0", got)
	}
}

func TestLogObserver(t *testing.T) {
	obs := NewLogObserver(context.Background())
	obs.Increment()
	obs.Grade(0.7, "passes")
	obs.Fail("stalled")
	obs.Log("note")
	if got := obs.Total(); got != 1 {
		t.Errorf("Total() = %d, wanted = 1", got)
	}
}
