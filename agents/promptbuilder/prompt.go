/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
	"slices"
)

// stringLiteral only accepts untyped string constants, so that
// model-controlled or user-controlled text cannot be bound as a literal.
type stringLiteral string

// Prompt is an immutable template with named {{placeholders}}.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses a template literal and records its placeholders.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = unbound(name)
		}
		return "{{" + name + "}}", nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{template: tmpl, bindings: bindings}, nil
}

// Must panics if err is non-nil. It is intended for package-level prompts:
//
//	var p = promptbuilder.Must(promptbuilder.NewPrompt(`Hello {{name}}`))
func Must(p *Prompt, err error) *Prompt {
	if err != nil {
		panic(err)
	}
	return p
}

// MustNewPrompt is Must(NewPrompt(template)).
func MustNewPrompt(template stringLiteral) *Prompt {
	return Must(NewPrompt(template))
}

// Placeholders returns the sorted names of every placeholder in the template.
func (p *Prompt) Placeholders() []string {
	return slices.Sorted(maps.Keys(p.bindings))
}

// Unbound returns the sorted names of placeholders that still need a value.
func (p *Prompt) Unbound() []string {
	var out []string
	for _, name := range p.Placeholders() {
		if _, ok := p.bindings[name].(unbound); ok {
			out = append(out, name)
		}
	}
	return out
}

// BindStringLiteral binds a developer-supplied constant.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.bind(name, literal(value))
}

// BindXML binds data marshaled with encoding/xml. Untrusted text should be
// bound this way so that it is escaped.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.bind(name, xmlBinding{data})
}

// BindJSON binds data marshaled as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.bind(name, jsonBinding{data})
}

// BindYAML binds data marshaled as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, yamlBinding{data})
}

// MustBindXML is Must(p.BindXML(name, data)).
func (p *Prompt) MustBindXML(name string, data any) *Prompt {
	return Must(p.BindXML(name, data))
}

// MustBindStringLiteral is Must(p.BindStringLiteral(name, value)).
func (p *Prompt) MustBindStringLiteral(name string, value stringLiteral) *Prompt {
	return Must(p.BindStringLiteral(name, value))
}

// bind returns a copy of p with name bound. Each placeholder can be bound once.
func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	current, exists := p.bindings[name]
	if !exists {
		return nil, fmt.Errorf("binding %q not found in template", name)
	}
	if _, ok := current.(unbound); !ok {
		return nil, fmt.Errorf("binding %q already bound", name)
	}
	next := &Prompt{template: p.template, bindings: maps.Clone(p.bindings)}
	next.bindings[name] = b
	return next, nil
}

// Build renders the prompt. It fails if any placeholder is unbound or a
// value cannot be marshaled.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		v, err := b.render()
		if err != nil {
			return "", fmt.Errorf("rendering %q: %w", name, err)
		}
		values[name] = v
	}
	return walkTemplate(p.template, func(name string) (string, error) {
		v, ok := values[name]
		if !ok {
			return "", fmt.Errorf("internal error: binding %q not found", name)
		}
		return v, nil
	})
}

// Bindable is implemented by request types so executors can bind
// request-specific data into a prompt.
type Bindable interface {
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop is a Bindable that leaves the prompt unchanged.
type Noop struct{}

// Bind implements Bindable.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}
