/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// JudgmentMode specifies the type of judgment to perform.
type JudgmentMode string

// StandaloneMode evaluates a single response against a criterion.
const StandaloneMode JudgmentMode = "standalone"

// Request contains the context for a judgment.
type Request struct {
	Mode JudgmentMode `json:"mode"`

	// Problem is the research question the response was written for. Optional.
	Problem string `json:"problem,omitempty"`

	ActualAnswer string `json:"actual_answer"`
	Criterion    string `json:"criterion"`
}

// Validate checks that the fields required by the mode are present.
func (r *Request) Validate() error {
	if r.Mode != StandaloneMode {
		return fmt.Errorf("unsupported mode: %q", r.Mode)
	}
	var errs []error
	if strings.TrimSpace(r.ActualAnswer) == "" {
		errs = append(errs, errors.New("actual_answer is required"))
	}
	if strings.TrimSpace(r.Criterion) == "" {
		errs = append(errs, errors.New("criterion is required"))
	}
	return errors.Join(errs...)
}

// Judgement contains the judgment result.
type Judgement struct {
	Mode JudgmentMode `json:"mode" jsonschema:"required,enum=standalone"`

	// Score runs from 0.0 (fails the criterion) to 1.0 (fully meets it).
	Score float64 `json:"score" jsonschema:"required,description=Score from 0.0 to 1.0"`

	Reasoning string `json:"reasoning" jsonschema:"required,description=Why the response earned this score"`

	// Suggestions are concrete improvements; empty for a perfect score.
	Suggestions []string `json:"suggestions" jsonschema:"description=Specific improvements that would raise the score"`
}

// String returns a one-line grade followed by one line per suggestion.
func (j *Judgement) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grade: %.2f", j.Score)
	if j.Reasoning != "" {
		fmt.Fprintf(&sb, " - %s", j.Reasoning)
	}
	for _, s := range j.Suggestions {
		fmt.Fprintf(&sb, "\n  Suggestion: %s", s)
	}
	return sb.String()
}

// Interface grades responses.
type Interface interface {
	Judge(ctx context.Context, request *Request) (*Judgement, error)
}
