/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
)

// Number is a float64 that also decodes from strings such as "12.5%",
// "$1,200" or "1.2e6", and from null. Strings with no leading number
// decode as zero.
type Number float64

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] != '"' {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("decoding number: %w", err)
		}
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// Text such as "N/A" or "unknown" means the value is absent.
	f, err := ParseNumber(s)
	if err != nil {
		f = 0
	}
	*n = Number(f)
	return nil
}

// JSONSchema implements jsonschema's custom schema hook so Number is
// advertised as a plain number.
func (Number) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "number"}
}

// ParseNumber parses the leading number of s after dropping currency
// symbols, thousands separators and a trailing percent sign. An empty
// string is zero.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", "_", "").Replace(s)
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if s == "" {
		return 0, nil
	}
	// Keep the numeric prefix: "1.2 MW" parses as 1.2.
	end := 0
	for end < len(s) && strings.ContainsRune("+-.0123456789eE", rune(s[end])) {
		end++
	}
	// A trailing exponent marker belongs to a unit, not the number.
	for end > 0 && (s[end-1] == 'e' || s[end-1] == 'E') {
		end--
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %q as a number: %w", s, err)
	}
	return f, nil
}

// Strings is a string list that also decodes from a single string or from
// a list of objects carrying a text field.
type Strings []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Strings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*s = nil
		return nil
	case b[0] == '"':
		var one string
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		*s = Strings{one}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decoding string list: %w", err)
	}
	out := make(Strings, 0, len(raw))
	for _, r := range raw {
		if text := textOf(r); text != "" {
			out = append(out, text)
		}
	}
	*s = out
	return nil
}

// JSONSchema advertises Strings as an array of strings.
func (Strings) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}}
}

// textKeys are the object fields tried, in order, when a list of strings
// arrives as a list of objects.
var textKeys = []string{"text", "description", "statement", "name", "value", "step"}

func textOf(r json.RawMessage) string {
	var str string
	if err := json.Unmarshal(r, &str); err == nil {
		return strings.TrimSpace(str)
	}
	var obj map[string]any
	if err := json.Unmarshal(r, &obj); err == nil {
		for _, k := range textKeys {
			if v, ok := obj[k].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	var f float64
	if err := json.Unmarshal(r, &f); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return ""
}

// clean trims every entry and drops empty and repeated ones, ignoring case.
func clean(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// HasDigit reports whether s mentions a number.
func HasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
