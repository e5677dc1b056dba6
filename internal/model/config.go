package model

import "fmt"

// RunConfig is the configuration of a benchmark run loaded from a file. Zero values
// mean unset so they can be merged with the command line flags.
type RunConfig struct {
	Indexes         []int
	Model           string
	StepLimit       int
	LineTools       bool
	APIURL          string
	HarnessURL      string
	ReposDir        string
	HarnessReposDir string
	ResultsLog      string
	GitEnv          map[string]string
	PlannerPrompt   string
	CoderPrompt     string
}

// Validate validates the run configuration.
func (c RunConfig) Validate() error {
	for _, i := range c.Indexes {
		if i < 0 {
			return fmt.Errorf("task index %d can't be negative: %w", i, ErrNotValid)
		}
	}
	if c.StepLimit < 0 {
		return fmt.Errorf("step limit can't be negative: %w", ErrNotValid)
	}
	return nil
}
