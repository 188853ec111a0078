/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnbound is returned by Build when a placeholder has no value.
var ErrUnbound = errors.New("unbound placeholder")

type binding interface {
	render() (string, error)
}

type unbound string

func (u unbound) render() (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnbound, string(u))
}

type literal string

func (l literal) render() (string, error) { return string(l), nil }

type xmlBinding struct{ data any }

func (x xmlBinding) render() (string, error) {
	b, err := xml.MarshalIndent(x.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling XML: %w", err)
	}
	return string(b), nil
}

type jsonBinding struct{ data any }

func (j jsonBinding) render() (string, error) {
	b, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return string(b), nil
}

type yamlBinding struct{ data any }

func (y yamlBinding) render() (string, error) {
	b, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return string(b), nil
}
