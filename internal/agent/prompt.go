package agent

import (
	"bytes"
	"fmt"
	"text/template"
)

const defaultPlannerPrompt = `You are the Planner in a team of agents working together to fix a software issue. Analyze the problem description and produce an actionable step by step blueprint for the Coder.

- Use the file inspection tools to read and understand the relevant source files of the repository ` + "`{{ .Repo }}`" + ` before planning.
- Use the list_files_in_repository tool only once!
- Identify the root cause of the test failures or the bug described below.
- For each coding task specify:
  1. The objective of the change.
  2. The exact file path(s) to modify.
  3. The tool calls needed to inspect those files.
  4. The precise edits (e.g. function names, lines to insert or update).
- Keep the changes minimal and scoped to what is necessary.
- List any edge case or test scenario that must be covered.

Your output must be a numbered list of instructions the Coder can follow in sequence.

Problem description:
{{ .ProblemStatement }}

USE THE 'list_files_in_repository' TOOL ONLY ONCE!!!!
`

const defaultCoderPrompt = `You are the Coder in a team of agents working together to fix a software issue. Implement the code changes following the plan provided by the Planner.

You are working on the repository ` + "`{{ .Repo }}`" + `. Always pass ` + "`{{ .Repo }}`" + ` as the repository when using the tools.

**Task:**
- Modify only the necessary files using the tools provided to you.
- Keep the changes minimal and scoped to what is strictly required to make the failing tests pass.
- Save all the changes to the files so they appear in the ` + "`git diff`" + `.
- Follow the conventions of the surrounding code.

**Rules:**
- NEVER execute two tools at once, always in sequence.
- Use the tools to inspect the files and understand the code.
- Use the 'list_files_in_repository' tool only once!
- Use the 'find_and_replace' tool to update the files.
{{- if .LineTools }}
- The 'delete_lines', 'insert_at_line' and 'replace_lines' tools can be used for line based edits, line numbers are 1-based.
{{- end }}

Do not make unrelated changes or refactor code not involved in the fix.

Problem description:
{{ .ProblemStatement }}

Planner instructions:
{{ .Plan }}

USE THE 'list_files_in_repository' TOOL ONLY ONCE!!!!
`

// Prompts are the text/template sources of the agent prompts.
type Prompts struct {
	Planner string
	Coder   string
}

// PromptData is the data available to the prompt templates.
type PromptData struct {
	Index            int
	Repo             string
	ProblemStatement string
	Plan             string
	LineTools        bool
}

type promptRenderer struct {
	planner *template.Template
	coder   *template.Template
}

func newPromptRenderer(p Prompts) (*promptRenderer, error) {
	if p.Planner == "" {
		p.Planner = defaultPlannerPrompt
	}
	if p.Coder == "" {
		p.Coder = defaultCoderPrompt
	}

	planner, err := template.New("planner").Option("missingkey=error").Parse(p.Planner)
	if err != nil {
		return nil, fmt.Errorf("could not parse planner prompt: %w", err)
	}
	coder, err := template.New("coder").Option("missingkey=error").Parse(p.Coder)
	if err != nil {
		return nil, fmt.Errorf("could not parse coder prompt: %w", err)
	}

	return &promptRenderer{planner: planner, coder: coder}, nil
}

func (p *promptRenderer) Planner(data PromptData) (string, error) {
	return render(p.planner, data)
}

func (p *promptRenderer) Coder(data PromptData) (string, error) {
	return render(p.coder, data)
}

func render(tpl *template.Template, data PromptData) (string, error) {
	var b bytes.Buffer
	if err := tpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("could not render %s prompt: %w", tpl.Name(), err)
	}
	return b.String(), nil
}
