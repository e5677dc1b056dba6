package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/swemas/internal/llm"
)

func TestParseToolArguments(t *testing.T) {
	tests := map[string]struct {
		raw         string
		expArgs     map[string]any
		expRepaired bool
		expErr      bool
	}{
		"Empty arguments should be an empty map.": {
			raw:     "",
			expArgs: map[string]any{},
		},

		"Valid JSON should be decoded.": {
			raw:     `{"repo": "repo_1/proj", "start_line": 3}`,
			expArgs: map[string]any{"repo": "repo_1/proj", "start_line": float64(3)},
		},

		"A JSON null should be an empty map.": {
			raw:     `null`,
			expArgs: map[string]any{},
		},

		"A trailing comma should be repaired.": {
			raw:         `{"repo": "repo_1/proj",}`,
			expArgs:     map[string]any{"repo": "repo_1/proj"},
			expRepaired: true,
		},

		"A truncated object should be repaired.": {
			raw:         `{"repo": "repo_1/proj"`,
			expArgs:     map[string]any{"repo": "repo_1/proj"},
			expRepaired: true,
		},

		"A non object JSON should fail.": {
			raw:    `["a", "b"]`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			args, repaired, err := llm.ParseToolArguments(test.raw)

			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expArgs, args)
				assert.Equal(test.expRepaired, repaired)
			}
		})
	}
}

func TestStepMessages(t *testing.T) {
	calls := []llm.ToolCall{{ID: "c1", Name: "get_file_content", Args: map[string]any{"repo": "r"}}}

	msg := llm.ToolRequest{Content: "looking", Calls: calls}.Message()
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "looking", ToolCalls: calls}, msg)

	msg = llm.FinalText{Content: "done"}.Message()
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "done"}, msg)

	msg = llm.ToolResultMessage(calls[0], "content")
	assert.Equal(t, llm.Message{Role: llm.RoleTool, Content: "content", ToolCallID: "c1", Name: "get_file_content"}, msg)
}
