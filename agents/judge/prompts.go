/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"encoding/xml"
	"fmt"

	"github.com/exergylab/discovery/agents/promptbuilder"
)

var systemPrompt = promptbuilder.MustNewPrompt(`You are a rigorous scientific reviewer. You grade one criterion at a time and you never reward a response for qualities the criterion does not ask about.`)

var standalonePrompt = promptbuilder.MustNewPrompt(`<task>
Grade the response below against a single criterion.
</task>

{{problem}}

{{response}}

{{criterion}}

<instructions>
1. Judge the response SOLELY on the criterion. Ignore every other quality.
2. When the criterion lists partial credit levels, pick the level the response actually reaches.
3. Score from 0.0 to 1.0:
   - 1.0: fully meets the criterion. Suggestions MUST be empty.
   - 0.75-0.99: meets it with minor gaps. Name each gap as a suggestion.
   - 0.50-0.74: partially meets it; important elements are missing.
   - 0.25-0.49: shows awareness of the criterion but fails it in major ways.
   - 0.0-0.24: ignores or contradicts the criterion.
4. Quote numbers, sources or claims from the response in your reasoning where they decide the score.
</instructions>

<output_format>
Return a JSON object:
{
  "mode": "standalone",
  "score": 0.0 to 1.0,
  "reasoning": "how well the response meets the criterion",
  "suggestions": ["specific improvement", ...]
}
</output_format>

Respond with only the JSON object, no additional text.`)

// element renders as <name>content</name>, escaping content.
type element struct {
	XMLName xml.Name
	Content string `xml:",chardata"`
}

func bindText(p *promptbuilder.Prompt, name, content string) (*promptbuilder.Prompt, error) {
	return p.BindXML(name, element{XMLName: xml.Name{Local: name}, Content: content})
}

// Bind implements promptbuilder.Bindable.
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	fields := []struct{ name, content string }{
		{"problem", r.Problem},
		{"response", r.ActualAnswer},
		{"criterion", r.Criterion},
	}
	if r.Mode != StandaloneMode {
		return nil, fmt.Errorf("unknown judgment mode: %s", r.Mode)
	}

	var err error
	for _, f := range fields {
		if prompt, err = bindText(prompt, f.name, f.content); err != nil {
			return nil, err
		}
	}
	return prompt, nil
}
