package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptRenderer(t *testing.T) {
	tests := map[string]struct {
		prompts     Prompts
		data        PromptData
		expPlanner  []string
		expCoder    []string
		notExpCoder []string
	}{
		"Default prompts should include the task data.": {
			data: PromptData{Index: 3, Repo: "repo_3/flask", ProblemStatement: "Bug in routing.", Plan: "1. Edit app.py"},
			expPlanner: []string{
				"`repo_3/flask`",
				"Bug in routing.",
				"numbered list",
			},
			expCoder: []string{
				"`repo_3/flask`",
				"Bug in routing.",
				"Planner instructions:\n1. Edit app.py",
				"'find_and_replace'",
			},
			notExpCoder: []string{"insert_at_line"},
		},

		"Line tools should be documented on the coder prompt when enabled.": {
			data:     PromptData{Repo: "repo_1/x", ProblemStatement: "p", Plan: "1.", LineTools: true},
			expCoder: []string{"'insert_at_line'"},
		},

		"Custom prompts should be used.": {
			prompts:    Prompts{Planner: "Plan {{ .Repo }}", Coder: "Code {{ .Index }}: {{ .Plan }}"},
			data:       PromptData{Index: 9, Repo: "repo_9/x", Plan: "steps"},
			expPlanner: []string{"Plan repo_9/x"},
			expCoder:   []string{"Code 9: steps"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			r, err := newPromptRenderer(test.prompts)
			require.NoError(err)

			planner, err := r.Planner(test.data)
			require.NoError(err)
			for _, exp := range test.expPlanner {
				assert.Contains(planner, exp)
			}

			coder, err := r.Coder(test.data)
			require.NoError(err)
			for _, exp := range test.expCoder {
				assert.Contains(coder, exp)
			}
			for _, notExp := range test.notExpCoder {
				assert.NotContains(coder, notExp)
			}
		})
	}
}

func TestPromptRendererUnknownField(t *testing.T) {
	r, err := newPromptRenderer(Prompts{Planner: "{{ .Missing }}"})
	require.NoError(t, err)

	_, err = r.Planner(PromptData{})
	assert.Error(t, err)
}
