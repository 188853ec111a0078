/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned by Extract when the response holds no JSON content.
var ErrNoJSON = errors.New("no JSON content in response")

// ExtractJSON returns the JSON content of a model response. In order of
// preference it takes the body of the first ```json (or bare ```) fenced
// block, then the first balanced object or array embedded in prose, and
// finally the trimmed response itself.
func ExtractJSON(responseText string) string {
	if body, ok := fenced(responseText); ok {
		return body
	}
	text := strings.TrimSpace(responseText)
	if span, ok := embedded(text); ok {
		return span
	}
	return text
}

// Extract extracts JSON content from a response and unmarshals it into T.
func Extract[T any](responseText string) (T, error) {
	var out T
	content := ExtractJSON(responseText)
	if content == "" {
		return out, ErrNoJSON
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return out, fmt.Errorf("unmarshaling response: %w", err)
	}
	return out, nil
}

// fenced returns the body of the first fenced code block tagged json or
// untagged. An unterminated block runs to the end of the text.
func fenced(text string) (string, bool) {
	var (
		body    []string
		inBlock bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if !inBlock {
			if trimmed == "```json" || trimmed == "```JSON" || trimmed == "```" {
				inBlock = true
			}
			continue
		}
		if trimmed == "```" {
			break
		}
		body = append(body, line)
	}
	if !inBlock {
		return "", false
	}
	return strings.TrimSpace(strings.Join(body, "\n")), true
}

// embedded returns the first balanced {...} or [...] span of text, skipping
// brackets inside string literals.
func embedded(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}
	var (
		stack    []byte
		inString bool
		escaped  bool
	)
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
