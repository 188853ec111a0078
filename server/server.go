/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/semaphore"

	"github.com/exergylab/discovery/agents/agenttrace"
	"github.com/exergylab/discovery/discovery"
)

var runsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "discovery_runs_total",
		Help: "Total number of discovery runs by final status",
	},
	[]string{"status"},
)

// Runner executes one discovery. *discovery.Orchestrator implements it.
type Runner interface {
	Run(ctx context.Context, req discovery.Request, events chan<- discovery.Event) (*discovery.Report, error)
}

var _ Runner = (*discovery.Orchestrator)(nil)

// Server serves the discovery API. Runs are kept in memory for the life of
// the process.
type Server struct {
	ctx    context.Context
	runner Runner

	sem         *semaphore.Weighted
	metricsPath string
	origins     []string

	mu   sync.RWMutex
	runs map[string]*run
	wg   sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server) error

// WithMaxConcurrentRuns bounds the runs in flight. Requests beyond the bound
// are rejected with 503.
func WithMaxConcurrentRuns(n int) Option {
	return func(s *Server) error {
		if n < 1 {
			return errors.New("max concurrent runs must be at least 1")
		}
		s.sem = semaphore.NewWeighted(int64(n))
		return nil
	}
}

// WithMetricsPath serves Prometheus metrics at path.
func WithMetricsPath(path string) Option {
	return func(s *Server) error {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("metrics path must start with /: %q", path)
		}
		s.metricsPath = path
		return nil
	}
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.origins = origins
		return nil
	}
}

// New creates a Server. Runs execute under ctx, so cancelling it stops
// every run in flight.
func New(ctx context.Context, runner Runner, opts ...Option) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner cannot be nil")
	}
	s := &Server{
		ctx:         ctx,
		runner:      runner,
		sem:         semaphore.NewWeighted(4),
		metricsPath: "/metrics",
		origins:     []string{"*"},
		runs:        make(map[string]*run),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle(s.metricsPath, promhttp.Handler())

	r.Route("/v1/discoveries", func(r chi.Router) {
		r.Post("/", s.start)
		r.Get("/", s.list)
		r.Get("/{id}", s.status)
		r.Get("/{id}/events", s.events)
	})
	return r
}

// Wait blocks until every run has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

type errResp struct {
	Error string `json:"error"`
}

type startResp struct {
	ID        string `json:"id"`
	Status    Status `json:"status"`
	StatusURL string `json:"status_url"`
	EventsURL string `json:"events_url"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) lookup(id string) (*run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	return r, ok
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	var req discovery.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{fmt.Sprintf("decoding request: %v", err)})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{err.Error()})
		return
	}
	if !s.sem.TryAcquire(1) {
		writeJSON(w, http.StatusServiceUnavailable, errResp{"too many discoveries in progress"})
		return
	}

	id, query := uuid.NewString(), strings.TrimSpace(req.Query)
	rn := newRun(id, query)
	s.mu.Lock()
	s.runs[id] = rn
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.sem.Release(1)
		s.execute(id, rn, req)
	}()

	clog.FromContext(r.Context()).With("discovery", id).Infof("accepted discovery: %q", query)
	writeJSON(w, http.StatusAccepted, startResp{
		ID:        id,
		Status:    StatusPending,
		StatusURL: "/v1/discoveries/" + id,
		EventsURL: "/v1/discoveries/" + id + "/events",
	})
}

func (s *Server) execute(id string, rn *run, req discovery.Request) {
	ctx := agenttrace.WithExecutionContext(s.ctx, agenttrace.ExecutionContext{DiscoveryID: id})

	events := make(chan discovery.Event, 16)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range events {
			rn.apply(ev)
		}
	}()

	report, err := s.runner.Run(ctx, req, events)
	close(events)
	<-drained
	rn.finish(report, err)

	status := rn.snapshot().Status
	runsCounter.WithLabelValues(string(status)).Inc()
	if err != nil {
		clog.FromContext(ctx).With("discovery", id).Warnf("discovery failed: %v", err)
	}
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make([]Progress, 0, len(s.runs))
	for _, rn := range s.runs {
		p := rn.snapshot()
		p.Report = nil
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Progress) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	rn, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{"discovery not found"})
		return
	}
	writeJSON(w, http.StatusOK, rn.snapshot())
}
