/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleexecutor

import (
	"errors"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{{
		name: "nil error",
	}, {
		name: "gemini quota",
		err:  errors.New("Error 429, Message: Resource has been exhausted, Status: RESOURCE_EXHAUSTED, Details: []"),
		want: true,
	}, {
		name: "vertex overload",
		err:  errors.New("Error 503, Message: The model is overloaded, Status: UNAVAILABLE, Details: []"),
		want: true,
	}, {
		name: "quota exceeded",
		err:  errors.New("quota exceeded for project"),
		want: true,
	}, {
		name: "invalid argument",
		err:  errors.New("Error 400, Message: Invalid JSON payload, Status: INVALID_ARGUMENT, Details: []"),
	}, {
		name: "permission denied",
		err:  errors.New("Error 403, Message: Permission denied, Status: PERMISSION_DENIED, Details: []"),
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v): got = %v, wanted = %v", tt.err, got, tt.want)
			}
		})
	}
}
