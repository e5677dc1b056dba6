package model

import (
	"time"
)

// RunStatus represents the outcome of a task run.
type RunStatus string

const (
	// RunStatusPassed indicates all the expected tests passed.
	RunStatusPassed RunStatus = "passed"
	// RunStatusFailed indicates the harness ran but some expected tests failed.
	RunStatusFailed RunStatus = "failed"
	// RunStatusErrored indicates the run was aborted before getting a harness result.
	RunStatusErrored RunStatus = "errored"
)

// TestStatus is the pass ratio of a test category.
type TestStatus struct {
	Passed int
	Total  int
}

// AllPassed returns true when every test of the category passed.
func (t TestStatus) AllPassed() bool { return t.Passed == t.Total }

// TestResults is the harness evaluation of a repository.
type TestResults struct {
	InstanceID string
	FailToPass TestStatus
	PassToPass TestStatus
}

// AllPassed returns true when both categories fully passed.
func (t TestResults) AllPassed() bool {
	return t.FailToPass.AllPassed() && t.PassToPass.AllPassed()
}

// Run is the record of a single task execution.
type Run struct {
	ID         string
	Index      int
	InstanceID string
	Status     RunStatus
	Results    TestResults
	// Error is set when the run was aborted.
	Error string
	// Plan is the planner final text.
	Plan string
	// Output is the coder final text.
	Output    string
	Steps     int
	CreatedAt time.Time
}

// AllPassed returns true when the run finished and all the tests passed.
func (r Run) AllPassed() bool {
	return r.Status == RunStatusPassed
}
