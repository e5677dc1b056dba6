package model

import (
	"fmt"
	"strings"
)

// TestCase is a bug fixing task fetched from the test case service.
// It's immutable once fetched.
type TestCase struct {
	Index            int
	InstanceID       string
	ProblemStatement string
	// CloneCommand is the shell-like compound command used to get the repository
	// (e.g. `git clone https://x/y.git y && git checkout abc123`).
	CloneCommand string
	// FailToPass are the tests that are expected to fail before the fix and pass after it.
	FailToPass []string
	// PassToPass are the tests that are expected to keep passing.
	PassToPass []string
}

// Validate validates the test case.
func (t TestCase) Validate() error {
	if t.InstanceID == "" {
		return fmt.Errorf("instance id is required: %w", ErrNotValid)
	}
	if t.ProblemStatement == "" {
		return fmt.Errorf("problem statement is required: %w", ErrNotValid)
	}
	if t.CloneCommand == "" {
		return fmt.Errorf("clone command is required: %w", ErrNotValid)
	}
	return nil
}

// CloneSpec is the information required to get a repository at a specific point.
type CloneSpec struct {
	URL string
	// Name is the directory name of the repository checkout.
	Name string
	// Commit is optional, if empty the default branch head is used.
	Commit string
}

// Validate validates the clone spec.
func (c CloneSpec) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("url is required: %w", ErrNotValid)
	}
	if c.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if c.Name == "." || c.Name == ".." || strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("name %q must be a single directory name: %w", c.Name, ErrNotValid)
	}
	return nil
}
