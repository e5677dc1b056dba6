package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/model"
)

// JSONPrinter prints run information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// runListItem represents a run in the list output (subset of fields).
type runListItem struct {
	ID         string      `json:"id"`
	Index      int         `json:"task_index"`
	InstanceID string      `json:"instance_id,omitempty"`
	Status     string      `json:"status"`
	FailToPass *testOutput `json:"fail_to_pass,omitempty"`
	PassToPass *testOutput `json:"pass_to_pass,omitempty"`
	AllPassed  bool        `json:"all_passed"`
	Error      string      `json:"error,omitempty"`
	Steps      int         `json:"steps"`
	CreatedAt  time.Time   `json:"created_at"`
}

// runOutput represents the full run output.
type runOutput struct {
	runListItem
	Plan   string `json:"plan,omitempty"`
	Output string `json:"output,omitempty"`
}

type testOutput struct {
	Passed int `json:"passed"`
	Total  int `json:"total"`
}

type toolOutput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

func newRunListItem(r model.Run) runListItem {
	item := runListItem{
		ID:         r.ID,
		Index:      r.Index,
		InstanceID: r.InstanceID,
		Status:     string(r.Status),
		AllPassed:  r.AllPassed(),
		Error:      r.Error,
		Steps:      r.Steps,
		CreatedAt:  r.CreatedAt.UTC(),
	}
	if r.Status != model.RunStatusErrored {
		item.FailToPass = &testOutput{Passed: r.Results.FailToPass.Passed, Total: r.Results.FailToPass.Total}
		item.PassToPass = &testOutput{Passed: r.Results.PassToPass.Passed, Total: r.Results.PassToPass.Total}
	}
	return item
}

// PrintRunList prints runs in JSON format with a subset of fields.
func (j *JSONPrinter) PrintRunList(runs []model.Run) error {
	items := make([]runListItem, len(runs))
	for i, r := range runs {
		items[i] = newRunListItem(r)
	}
	return j.encode(items)
}

// PrintRun prints the full run in JSON format.
func (j *JSONPrinter) PrintRun(r model.Run) error {
	return j.encode(runOutput{
		runListItem: newRunListItem(r),
		Plan:        r.Plan,
		Output:      r.Output,
	})
}

// PrintTools prints the tool schemas in JSON format.
func (j *JSONPrinter) PrintTools(tools []llm.ToolSchema) error {
	items := make([]toolOutput, len(tools))
	for i, t := range tools {
		items[i] = toolOutput{Name: t.Name, Description: t.Description, Parameters: t.Parameters}
	}
	return j.encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
