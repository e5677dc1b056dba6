package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/swemas/internal/model"
)

func TestTestCaseValidate(t *testing.T) {
	tests := map[string]struct {
		tc     model.TestCase
		expErr bool
	}{
		"A valid test case should not fail": {
			tc: model.TestCase{
				InstanceID:       "django__django-1",
				ProblemStatement: "It breaks",
				CloneCommand:     "git clone https://example.com/r.git repo",
			},
		},

		"Missing instance ID should fail": {
			tc: model.TestCase{
				ProblemStatement: "It breaks",
				CloneCommand:     "git clone https://example.com/r.git repo",
			},
			expErr: true,
		},

		"Missing problem statement should fail": {
			tc: model.TestCase{
				InstanceID:   "django__django-1",
				CloneCommand: "git clone https://example.com/r.git repo",
			},
			expErr: true,
		},

		"Missing clone command should fail": {
			tc: model.TestCase{
				InstanceID:       "django__django-1",
				ProblemStatement: "It breaks",
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.tc.Validate()

			if test.expErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrNotValid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTestResultsAllPassed(t *testing.T) {
	tests := map[string]struct {
		results   model.TestResults
		expPassed bool
	}{
		"All tests passing should be reported as passed.": {
			results: model.TestResults{
				FailToPass: model.TestStatus{Passed: 2, Total: 2},
				PassToPass: model.TestStatus{Passed: 5, Total: 5},
			},
			expPassed: true,
		},

		"A failing FAIL_TO_PASS test should not be reported as passed.": {
			results: model.TestResults{
				FailToPass: model.TestStatus{Passed: 1, Total: 2},
				PassToPass: model.TestStatus{Passed: 5, Total: 5},
			},
			expPassed: false,
		},

		"A failing PASS_TO_PASS test should not be reported as passed.": {
			results: model.TestResults{
				FailToPass: model.TestStatus{Passed: 2, Total: 2},
				PassToPass: model.TestStatus{Passed: 4, Total: 5},
			},
			expPassed: false,
		},

		"Empty categories should be reported as passed.": {
			results:   model.TestResults{},
			expPassed: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expPassed, test.results.AllPassed())
		})
	}
}
