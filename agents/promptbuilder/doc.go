/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder builds model prompts from developer-owned templates in
the manner of SQL prepared statements.

Templates are string constants with {{name}} placeholders. Values reach a
template only through a binding: BindStringLiteral accepts constants, while
BindXML, BindJSON and BindYAML marshal structured data so that text coming
from users or from earlier model output is escaped. Substitution is a single
pass, so a bound value that itself contains {{x}} is never expanded.

	var researchPrompt = promptbuilder.MustNewPrompt(`
	Investigate this problem:
	{{problem}}

	Earlier findings:
	{{context}}`)

	p, err := researchPrompt.BindXML("problem", problemXML)
	if err != nil {
		return err
	}
	p, err = p.BindYAML("context", previous)
	if err != nil {
		return err
	}
	text, err := p.Build()

Placeholder names start with a letter followed by letters, digits or
underscores. Binding an unknown or already bound placeholder is an error, and
Build fails with ErrUnbound while any placeholder is missing a value.

Prompts are immutable; every Bind method returns a new Prompt, so a
package-level template can be shared across goroutines.

Executors accept request types that implement Bindable, letting each request
bind its own data into the executor's prompt.
*/
package promptbuilder
