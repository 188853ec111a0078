/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evals

import (
	"context"
	"sync/atomic"

	"github.com/chainguard-dev/clog"
)

// LogObserver writes observations to the logger carried by a context.
type LogObserver struct {
	ctx   context.Context
	total atomic.Int64
}

var _ Observer = (*LogObserver)(nil)

// NewLogObserver creates an observer that logs through clog.FromContext(ctx).
func NewLogObserver(ctx context.Context) *LogObserver {
	return &LogObserver{ctx: ctx}
}

func (l *LogObserver) Fail(msg string) {
	clog.FromContext(l.ctx).Warnf("attempt failed: %s", msg)
}

func (l *LogObserver) Log(msg string) {
	clog.FromContext(l.ctx).Info(msg)
}

func (l *LogObserver) Grade(score float64, reasoning string) {
	clog.FromContext(l.ctx).With("grade", score).Infof("attempt graded: %s", reasoning)
}

func (l *LogObserver) Increment() {
	l.total.Add(1)
}

func (l *LogObserver) Total() int64 {
	return l.total.Load()
}
