/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/go-chi/chi/v5"

	"github.com/exergylab/discovery/discovery"
)

// events streams a run's progress as Server-Sent Events: first the backlog,
// then live events until the run ends or the client goes away.
func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	rn, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errResp{"discovery not found"})
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errResp{"streaming unsupported"})
		return
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log := clog.FromContext(r.Context())
	cursor := 0
	for {
		evs, done, changed := rn.since(cursor)
		for _, ev := range evs {
			if err := writeEvent(w, cursor, ev); err != nil {
				log.Warnf("writing event: %v", err)
				return
			}
			cursor++
		}
		flusher.Flush()
		if done {
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-changed:
		}
	}
}

func writeEvent(w io.Writer, id int, ev discovery.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", id, ev.Kind, data)
	return err
}
