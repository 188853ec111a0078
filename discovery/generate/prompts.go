/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"github.com/exergylab/discovery/agents/promptbuilder"
	"github.com/exergylab/discovery/discovery/model"
)

var systemPrompt = promptbuilder.MustNewPrompt(`You are a senior energy scientist working through one stage of a discovery pipeline for clean energy technology.

You are precise with numbers and units, you name your sources, and you never claim performance beyond physical limits such as the Shockley-Queisser, Carnot or Betz limits.

When feedback from a reviewer is present, fix every criterion it lists before anything else. When it marks the final attempt, concentrate on the single criterion it names.

You answer with a single JSON object that conforms to the schema you are given, and nothing else.`)

var researchPrompt = promptbuilder.MustNewPrompt(`<task>
Survey the prior art relevant to the research question.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. List at least 20 distinct sources. Mix peer-reviewed papers, patents, datasets and technical reports, and set each source's kind.
2. State at least five key findings, each with the number that makes it concrete.
3. Name at least three open problems the literature leaves unanswered.
4. Give at least three state of the art benchmarks with values and units.
</instructions>

<schema>
{{schema}}
</schema>`)

var hypothesisPrompt = promptbuilder.MustNewPrompt(`<task>
Propose hypotheses that answer the research question and go beyond the state of the art.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Propose at least three distinct hypotheses.
2. Explain each mechanism in physical or chemical terms, in at least two sentences.
3. Give each hypothesis measurable predictions with target numbers, and the observation that would refute it.
4. Rate novelty, feasibility and impact from 0 to 10, honestly.
</instructions>

<schema>
{{schema}}
</schema>`)

var experimentPrompt = promptbuilder.MustNewPrompt(`<task>
Design an experiment that tests the lead hypothesis.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Name the independent, dependent and controlled variables.
2. Write a procedure of at least eight concrete steps.
3. Include at least two controls and at least two safety notes with mitigations.
4. State at least three expected outcomes with target values.
5. Estimate the cost in USD and the duration in weeks.
</instructions>

<schema>
{{schema}}
</schema>`)

var simulationPrompt = promptbuilder.MustNewPrompt(`<task>
Model the proposed system computationally and report the predicted performance.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Choose an established method (for example DFT, molecular dynamics, CFD, finite element, detailed balance or a process simulation) and justify it.
2. List at least six input parameters with values and units.
3. Report at least three results with values and units, whether the run converged, and the relative uncertainty of the headline result.
4. State at least four assumptions or limitations.
</instructions>

<schema>
{{schema}}
</schema>`)

var exergyPrompt = promptbuilder.MustNewPrompt(`<task>
Perform an exergy analysis of the proposed system per functional unit.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Report input exergy, useful exergy and exergy destruction in MJ. They must balance: input = useful + destruction.
2. Report first and second law efficiencies as fractions between 0 and 1. The second law efficiency is useful over input exergy.
3. Break destruction down by component.
</instructions>

<schema>
{{schema}}
</schema>`)

var teaPrompt = promptbuilder.MustNewPrompt(`<task>
Perform a techno-economic analysis of the proposed system at commercial scale.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Report total CAPEX and annual OPEX in USD, annual production in MWh, project lifetime in years and the discount rate as a fraction.
2. Compute the LCOE in USD/MWh from those inputs with a capital recovery factor, so the numbers reproduce.
3. Report NPV in USD, IRR in percent and payback in years, consistent with each other.
</instructions>

<schema>
{{schema}}
</schema>`)

var validationPrompt = promptbuilder.MustNewPrompt(`<task>
Critically validate the discovery as an independent reviewer.
</task>

{{question}}

<earlier_phases>
{{context}}
</earlier_phases>

{{feedback}}

<instructions>
1. Extract every quantitative performance claim. Where a physical limit bounds a claim, name it (shockley_queisser, carnot, betz, electrolysis_voltage or second_law) and give the reservoir temperatures for carnot.
2. Run at least four independent checks and report honestly whether each passed.
3. Name at least three technical or commercial risks.
4. Give a verdict that follows from the checks, and a confidence between 0 and 1.
</instructions>

<schema>
{{schema}}
</schema>`)

// prompts maps each phase to its user prompt.
var prompts = map[model.Phase]*promptbuilder.Prompt{
	model.PhaseResearch:   researchPrompt,
	model.PhaseHypothesis: hypothesisPrompt,
	model.PhaseExperiment: experimentPrompt,
	model.PhaseSimulation: simulationPrompt,
	model.PhaseExergy:     exergyPrompt,
	model.PhaseTEA:        teaPrompt,
	model.PhaseValidation: validationPrompt,
}
