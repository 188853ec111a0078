/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package server exposes discoveries over HTTP.
//
//	POST /v1/discoveries             start a run, 202 with its id
//	GET  /v1/discoveries             list runs, newest first
//	GET  /v1/discoveries/{id}        status, progress and, once done, the report
//	GET  /v1/discoveries/{id}/events progress as Server-Sent Events
//	GET  /healthz                    liveness
//	GET  /metrics                    Prometheus metrics
//
// Errors are JSON objects with a single "error" field.
package server
