/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// walkTemplate copies template, replacing each {{name}} with resolve(name).
func walkTemplate(template string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder
	for {
		before, rest, found := strings.Cut(template, "{{")
		out.WriteString(before)
		if !found {
			return out.String(), nil
		}
		inner, after, closed := strings.Cut(rest, "}}")
		if !closed {
			return "", errors.New("unclosed binding: missing '}}'")
		}
		name := strings.TrimSpace(inner)
		if !isIdentifier(name) {
			return "", fmt.Errorf("invalid binding identifier %q", name)
		}
		v, err := resolve(name)
		if err != nil {
			return "", err
		}
		out.WriteString(v)
		template = after
	}
}

// isIdentifier reports whether s starts with a letter and continues with
// letters, digits or underscores.
func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '_'):
		default:
			return false
		}
	}
	return s != ""
}
