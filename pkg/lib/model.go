package lib

import (
	"errors"
	"fmt"
	"time"

	"github.com/slok/swemas/internal/model"
)

var (
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when the input is not valid.
	ErrNotValid = errors.New("not valid")
)

// RunStatus is the outcome of a task run.
type RunStatus string

const (
	// RunStatusPassed means all the expected tests passed after the agents fix.
	RunStatusPassed RunStatus = "passed"
	// RunStatusFailed means the harness evaluated the fix and some tests failed.
	RunStatusFailed RunStatus = "failed"
	// RunStatusErrored means the run was aborted before getting an evaluation.
	RunStatusErrored RunStatus = "errored"
)

// TestStatus is the pass ratio of a test category.
type TestStatus struct {
	Passed int
	Total  int
}

// Run is a recorded task run, it's a read-only snapshot.
type Run struct {
	// ID is the unique identifier (ULID) of the run.
	ID string
	// Index is the benchmark task index.
	Index int
	// InstanceID is the benchmark instance, empty if the task couldn't be fetched.
	InstanceID string
	Status     RunStatus
	// FailToPass are the results of the tests the fix should make pass.
	FailToPass TestStatus
	// PassToPass are the results of the tests that should keep passing.
	PassToPass TestStatus
	// Error is the reason of an errored run.
	Error string
	// Plan is the planner agent output.
	Plan string
	// Output is the coder agent output.
	Output    string
	Steps     int
	CreatedAt time.Time
}

// ToolSchema describes a tool exposed to the agents.
type ToolSchema struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the tool arguments.
	Parameters map[string]any
}

func fromInternalRun(r model.Run) Run {
	return Run{
		ID:         r.ID,
		Index:      r.Index,
		InstanceID: r.InstanceID,
		Status:     RunStatus(r.Status),
		FailToPass: TestStatus(r.Results.FailToPass),
		PassToPass: TestStatus(r.Results.PassToPass),
		Error:      r.Error,
		Plan:       r.Plan,
		Output:     r.Output,
		Steps:      r.Steps,
		CreatedAt:  r.CreatedAt,
	}
}

// mapError maps internal errors to the public SDK sentinel errors keeping the message.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, model.ErrNotValid):
		return fmt.Errorf("%w: %w", ErrNotValid, err)
	default:
		return err
	}
}
