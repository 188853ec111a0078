/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"path"
	"sort"
	"sync"
)

// Observer receives the grades and failures produced while refining an output.
type Observer interface {
	// Fail records a failed attempt with the given message.
	Fail(string)
	// Log records an informational message.
	Log(string)
	// Grade records a rating (0.0-1.0) with reasoning for one judged attempt.
	Grade(score float64, reasoning string)
	// Increment is called once per judged attempt.
	Increment()
	// Total returns the number of observed attempts.
	Total() int64
}

// Nop is an Observer that discards everything.
type Nop struct{}

var _ Observer = Nop{}

func (Nop) Fail(string)           {}
func (Nop) Log(string)            {}
func (Nop) Grade(float64, string) {}
func (Nop) Increment()            {}
func (Nop) Total() int64          { return 0 }

// NamespacedObserver provides hierarchical namespacing for Observer instances,
// for example one child per discovery phase.
type NamespacedObserver[T Observer] struct {
	name     string
	inner    T
	factory  func(string) T
	children map[string]*NamespacedObserver[T]
	mu       sync.Mutex
}

// NewNamespacedObserver creates a new root NamespacedObserver with the given factory function
func NewNamespacedObserver[T Observer](factory func(string) T) *NamespacedObserver[T] {
	return &NamespacedObserver[T]{
		name:     "/",
		inner:    factory("/"),
		factory:  factory,
		children: make(map[string]*NamespacedObserver[T]),
	}
}

// Name returns the full path of this namespace.
func (n *NamespacedObserver[T]) Name() string { return n.name }

// Fail delegates to the inner Observer instance
func (n *NamespacedObserver[T]) Fail(msg string) {
	n.inner.Fail(msg)
}

// Log delegates to the inner Observer instance
func (n *NamespacedObserver[T]) Log(msg string) {
	n.inner.Log(msg)
}

// Grade delegates to the inner Observer instance
func (n *NamespacedObserver[T]) Grade(score float64, reasoning string) {
	n.inner.Grade(score, reasoning)
}

// Increment delegates to the inner Observer instance
func (n *NamespacedObserver[T]) Increment() {
	n.inner.Increment()
}

// Total delegates to the inner Observer instance
func (n *NamespacedObserver[T]) Total() int64 {
	return n.inner.Total()
}

// Child returns the child namespace with the given name, creating it if necessary
func (n *NamespacedObserver[T]) Child(name string) *NamespacedObserver[T] {
	n.mu.Lock()
	defer n.mu.Unlock()

	if child, exists := n.children[name]; exists {
		return child
	}

	childPath := path.Join(n.name, name)
	child := &NamespacedObserver[T]{
		name:     childPath,
		inner:    n.factory(childPath),
		factory:  n.factory,
		children: make(map[string]*NamespacedObserver[T]),
	}
	n.children[name] = child
	return child
}

// Walk traverses the observer tree in depth-first order, calling the visitor function
// on the current node first, then on all children in sorted order by name
func (n *NamespacedObserver[T]) Walk(visitor func(string, T)) {
	visitor(n.name, n.inner)

	n.mu.Lock()
	childNames := make([]string, 0, len(n.children))
	for name := range n.children {
		childNames = append(childNames, name)
	}
	n.mu.Unlock()

	sort.Strings(childNames)

	for _, name := range childNames {
		n.mu.Lock()
		child := n.children[name]
		n.mu.Unlock()

		child.Walk(visitor)
	}
}

// Tee fans every call out to all of the given observers. Total reports the
// first observer's count.
func Tee(observers ...Observer) Observer {
	return tee(observers)
}

type tee []Observer

func (t tee) Fail(msg string) {
	for _, o := range t {
		o.Fail(msg)
	}
}

func (t tee) Log(msg string) {
	for _, o := range t {
		o.Log(msg)
	}
}

func (t tee) Grade(score float64, reasoning string) {
	for _, o := range t {
		o.Grade(score, reasoning)
	}
}

func (t tee) Increment() {
	for _, o := range t {
		o.Increment()
	}
}

func (t tee) Total() int64 {
	if len(t) == 0 {
		return 0
	}
	return t[0].Total()
}
