package io

import (
	"context"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/swemas/internal/model"
)

// RunConfigYAMLRepository loads run configuration from YAML files.
type RunConfigYAMLRepository struct {
	fs fs.FS
}

// NewRunConfigYAMLRepository creates a new YAML run config repository.
func NewRunConfigYAMLRepository(filesystem fs.FS) *RunConfigYAMLRepository {
	return &RunConfigYAMLRepository{fs: filesystem}
}

// GetRunConfig loads a run configuration from a YAML file and returns a validated domain model.
func (r *RunConfigYAMLRepository) GetRunConfig(ctx context.Context, path string) (model.RunConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.RunConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.RunConfig{}, ctx.Err()
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return model.RunConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	m := cfg.toModel()
	if err := m.Validate(); err != nil {
		return model.RunConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return m, nil
}

// RunConfig represents the YAML structure of a run configuration.
type RunConfig struct {
	Indexes         []int             `yaml:"indexes"`
	Model           string            `yaml:"model"`
	StepLimit       int               `yaml:"step_limit"`
	LineTools       bool              `yaml:"line_tools"`
	APIURL          string            `yaml:"api_url"`
	HarnessURL      string            `yaml:"harness_url"`
	ReposDir        string            `yaml:"repos_dir"`
	HarnessReposDir string            `yaml:"harness_repos_dir"`
	ResultsLog      string            `yaml:"results_log"`
	GitEnv          map[string]string `yaml:"git_env"`
	Prompts         PromptsConfig     `yaml:"prompts"`
}

// PromptsConfig represents the YAML structure of the agent prompt templates.
type PromptsConfig struct {
	Planner string `yaml:"planner"`
	Coder   string `yaml:"coder"`
}

func (c RunConfig) toModel() model.RunConfig {
	return model.RunConfig{
		Indexes:         c.Indexes,
		Model:           c.Model,
		StepLimit:       c.StepLimit,
		LineTools:       c.LineTools,
		APIURL:          c.APIURL,
		HarnessURL:      c.HarnessURL,
		ReposDir:        c.ReposDir,
		HarnessReposDir: c.HarnessReposDir,
		ResultsLog:      c.ResultsLog,
		GitEnv:          c.GitEnv,
		PlannerPrompt:   c.Prompts.Planner,
		CoderPrompt:     c.Prompts.Coder,
	}
}
