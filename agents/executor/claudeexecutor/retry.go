/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeexecutor

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/exergylab/discovery/agents/executor/retry"
)

// isRetryable reports whether err is a Claude API error worth retrying:
// rate limits, overload (529) and other server-side failures.
func isRetryable(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return retry.Status(apiErr.StatusCode)
	}
	return false
}
