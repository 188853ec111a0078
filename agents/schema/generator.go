/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// Generator wraps jsonschema.Reflector with the defaults used for phase
// output contracts: inline definitions and required fields taken from
// jsonschema tags.
type Generator struct {
	reflector jsonschema.Reflector
}

// NewGenerator constructs a Generator.
func NewGenerator() *Generator {
	return &Generator{
		reflector: jsonschema.Reflector{
			RequiredFromJSONSchemaTags: true,
			ExpandedStruct:             true,
			AllowAdditionalProperties:  true,
			DoNotReference:             true,
		},
	}
}

// Reflect returns the JSON schema for v.
func (g *Generator) Reflect(v any) *jsonschema.Schema {
	s := g.reflector.Reflect(v)
	// The draft URL is noise inside a prompt.
	s.Version = ""
	return s
}

// Reflect derives the JSON schema for v using a default generator.
func Reflect(v any) *jsonschema.Schema {
	return NewGenerator().Reflect(v)
}

// ReflectType reflects T to a schema. Pointer types are reflected as the
// type they point to, so *Response and Response give the same schema.
func ReflectType[T any]() *jsonschema.Schema {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return Reflect(reflect.New(t).Interface())
}

// JSON renders the schema of T as indented JSON, ready to bind into a prompt.
func JSON[T any]() (string, error) {
	b, err := json.MarshalIndent(ReflectType[T](), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling schema: %w", err)
	}
	return string(b), nil
}

// Genai converts a reflected schema into the subset Gemini accepts for
// structured output. Unsupported keywords are dropped.
func Genai(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Format:      s.Format,
		Required:    s.Required,
	}
	for _, e := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(e))
	}
	if s.Items != nil {
		out.Items = Genai(s.Items)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = Genai(pair.Value)
			out.PropertyOrdering = append(out.PropertyOrdering, pair.Key)
		}
	}
	return out
}

// GenaiType reflects T and converts it with Genai.
func GenaiType[T any]() *genai.Schema {
	return Genai(ReflectType[T]())
}

func genaiType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
