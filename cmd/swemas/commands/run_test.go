package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/swemas/internal/model"
)

func TestResolveRunConfig(t *testing.T) {
	tests := map[string]struct {
		flags  model.RunConfig
		file   model.RunConfig
		expCfg model.RunConfig
	}{
		"Without flags nor file the defaults should be used": {
			expCfg: model.RunConfig{
				Model:           "gpt-4o-mini",
				StepLimit:       100,
				APIURL:          "http://localhost:8081/task/index",
				HarnessURL:      "http://localhost:8082/test",
				ReposDir:        "/data/repos",
				HarnessReposDir: "/repos",
				ResultsLog:      "results.log",
			},
		},

		"File values should be used over the defaults": {
			file: model.RunConfig{
				Indexes:       []int{4, 5},
				Model:         "gpt-4o",
				StepLimit:     30,
				LineTools:     true,
				ReposDir:      "/work",
				PlannerPrompt: "plan",
			},
			expCfg: model.RunConfig{
				Indexes:         []int{4, 5},
				Model:           "gpt-4o",
				StepLimit:       30,
				LineTools:       true,
				APIURL:          "http://localhost:8081/task/index",
				HarnessURL:      "http://localhost:8082/test",
				ReposDir:        "/work",
				HarnessReposDir: "/repos",
				ResultsLog:      "results.log",
				PlannerPrompt:   "plan",
			},
		},

		"Flags should override the file values": {
			flags: model.RunConfig{
				Indexes:    []int{1},
				Model:      "o3-mini",
				StepLimit:  10,
				HarnessURL: "http://harness/test",
			},
			file: model.RunConfig{
				Indexes:    []int{4, 5},
				Model:      "gpt-4o",
				StepLimit:  30,
				HarnessURL: "http://other/test",
				ResultsLog: "/var/log/swemas.log",
			},
			expCfg: model.RunConfig{
				Indexes:         []int{1},
				Model:           "o3-mini",
				StepLimit:       10,
				APIURL:          "http://localhost:8081/task/index",
				HarnessURL:      "http://harness/test",
				ReposDir:        "/data/repos",
				HarnessReposDir: "/repos",
				ResultsLog:      "/var/log/swemas.log",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := resolveRunConfig(test.flags, test.file, "/data")
			assert.Equal(t, test.expCfg, got)
		})
	}
}
