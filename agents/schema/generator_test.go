/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/exergylab/discovery/agents/schema"
)

type source struct {
	Title string `json:"title" jsonschema:"description=Publication title,required"`
	Year  int    `json:"year,omitempty"`
}

type findings struct {
	Summary string   `json:"summary" jsonschema:"description=One paragraph summary,required"`
	Sources []source `json:"sources" jsonschema:"description=Cited sources"`
	Gaps    []string `json:"gaps,omitempty"`
	Score   float64  `json:"score,omitempty"`
}

func TestReflect(t *testing.T) {
	s := schema.Reflect(&findings{})
	if s == nil {
		t.Fatal("Reflect() = nil")
	}
	if s.Type != "object" {
		t.Errorf("Type: got = %q, wanted = %q", s.Type, "object")
	}
	if s.Version != "" {
		t.Errorf("Version: got = %q, wanted empty", s.Version)
	}
	if diff := cmp.Diff([]string{"summary"}, s.Required); diff != "" {
		t.Errorf("Required (-want +got):\n%s", diff)
	}

	tests := []struct {
		prop     string
		typ      string
		desc     string
		itemType string
	}{{
		prop: "summary",
		typ:  "string",
		desc: "One paragraph summary",
	}, {
		prop:     "sources",
		typ:      "array",
		desc:     "Cited sources",
		itemType: "object",
	}, {
		prop:     "gaps",
		typ:      "array",
		itemType: "string",
	}, {
		prop: "score",
		typ:  "number",
	}}
	for _, tt := range tests {
		t.Run(tt.prop, func(t *testing.T) {
			p, ok := s.Properties.Get(tt.prop)
			if !ok {
				t.Fatalf("missing property %q", tt.prop)
			}
			if p.Type != tt.typ {
				t.Errorf("Type: got = %q, wanted = %q", p.Type, tt.typ)
			}
			if p.Description != tt.desc {
				t.Errorf("Description: got = %q, wanted = %q", p.Description, tt.desc)
			}
			if tt.itemType != "" && p.Items.Type != tt.itemType {
				t.Errorf("Items.Type: got = %q, wanted = %q", p.Items.Type, tt.itemType)
			}
		})
	}

	srcs, _ := s.Properties.Get("sources")
	if _, ok := srcs.Items.Properties.Get("title"); !ok {
		t.Error("nested source schema is missing title")
	}
}

func TestJSON(t *testing.T) {
	got, err := schema.JSON[findings]()
	if err != nil {
		t.Fatalf("JSON() = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	if !strings.Contains(got, `"summary"`) {
		t.Errorf("JSON() = %s, wanted a summary property", got)
	}
	if strings.Contains(got, "$schema") {
		t.Errorf("JSON() = %s, wanted no $schema keyword", got)
	}
}

func TestGenai(t *testing.T) {
	got := schema.GenaiType[findings]()

	if got.Type != genai.TypeObject {
		t.Errorf("Type: got = %v, wanted = %v", got.Type, genai.TypeObject)
	}
	if diff := cmp.Diff([]string{"summary", "sources", "gaps", "score"}, got.PropertyOrdering); diff != "" {
		t.Errorf("PropertyOrdering (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"summary"}, got.Required); diff != "" {
		t.Errorf("Required (-want +got):\n%s", diff)
	}

	sources := got.Properties["sources"]
	if sources == nil || sources.Type != genai.TypeArray {
		t.Fatalf("sources: got = %+v, wanted an array", sources)
	}
	if sources.Items.Type != genai.TypeObject {
		t.Errorf("sources.Items.Type: got = %v, wanted = %v", sources.Items.Type, genai.TypeObject)
	}
	if title := sources.Items.Properties["title"]; title == nil || title.Description != "Publication title" {
		t.Errorf("sources.Items.title: got = %+v", title)
	}
	if got.Properties["score"].Type != genai.TypeNumber {
		t.Errorf("score.Type: got = %v, wanted = %v", got.Properties["score"].Type, genai.TypeNumber)
	}

	if schema.Genai(nil) != nil {
		t.Error("Genai(nil) should be nil")
	}
}

func TestReflectTypePointer(t *testing.T) {
	if diff := cmp.Diff(schema.ReflectType[findings]().Required, schema.ReflectType[*findings]().Required); diff != "" {
		t.Errorf("ReflectType[*findings] (-value +pointer):\n%s", diff)
	}
	if got := schema.ReflectType[**findings]().Type; got != "object" {
		t.Errorf("ReflectType[**findings].Type: got = %q, wanted = %q", got, "object")
	}
}
