/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"strings"
)

// retryableMarkers appear in the messages of quota, overload and transient
// server errors from both the Gemini API and Vertex AI.
var retryableMarkers = []string{
	"RESOURCE_EXHAUSTED",
	"Resource exhausted",
	"quota exceeded",
	"rate limit",
	"Error 429",
	"Error 500",
	"Error 503",
	"UNAVAILABLE",
	"Overloaded",
	"Internal error",
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range retryableMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
