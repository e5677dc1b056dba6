package taskapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/taskapi"
)

func TestNewClient(t *testing.T) {
	_, err := taskapi.NewClient(taskapi.ClientConfig{})
	assert.Error(t, err)
}

func TestClientGetTestCase(t *testing.T) {
	tests := map[string]struct {
		status      int
		body        string
		expTestCase *model.TestCase
		expErr      bool
		expErrIs    error
	}{
		"A test case with JSON encoded test lists should be decoded.": {
			status: http.StatusOK,
			body: `{
				"Problem_statement": "Admin crashes",
				"git_clone": "git clone https://example.com/r.git repo && git checkout abc123",
				"FAIL_TO_PASS": "[\"tests/test_a.py::test_x\", \"tests/test_a.py::test_y\"]",
				"PASS_TO_PASS": "[\"tests/test_b.py::test_z\"]",
				"instance_id": "django__django-11099"
			}`,
			expTestCase: &model.TestCase{
				Index:            7,
				InstanceID:       "django__django-11099",
				ProblemStatement: "Admin crashes",
				CloneCommand:     "git clone https://example.com/r.git repo && git checkout abc123",
				FailToPass:       []string{"tests/test_a.py::test_x", "tests/test_a.py::test_y"},
				PassToPass:       []string{"tests/test_b.py::test_z"},
			},
		},

		"Missing test lists should be empty.": {
			status: http.StatusOK,
			body:   `{"Problem_statement": "p", "git_clone": "git clone u r", "instance_id": "i"}`,
			expTestCase: &model.TestCase{
				Index:            7,
				InstanceID:       "i",
				ProblemStatement: "p",
				CloneCommand:     "git clone u r",
				FailToPass:       []string{},
				PassToPass:       []string{},
			},
		},

		"Plain JSON test lists should be decoded.": {
			status: http.StatusOK,
			body:   `{"Problem_statement": "p", "git_clone": "git clone u r", "instance_id": "i", "FAIL_TO_PASS": ["t1"], "PASS_TO_PASS": []}`,
			expTestCase: &model.TestCase{
				Index:            7,
				InstanceID:       "i",
				ProblemStatement: "p",
				CloneCommand:     "git clone u r",
				FailToPass:       []string{"t1"},
				PassToPass:       []string{},
			},
		},

		"A missing required field should fail.": {
			status:   http.StatusOK,
			body:     `{"Problem_statement": "p", "instance_id": "i"}`,
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"A malformed test list should fail.": {
			status: http.StatusOK,
			body:   `{"Problem_statement": "p", "git_clone": "git clone u r", "instance_id": "i", "FAIL_TO_PASS": "[not json"}`,
			expErr: true,
		},

		"A non 200 response should fail.": {
			status: http.StatusNotFound,
			body:   `{}`,
			expErr: true,
		},

		"An invalid JSON body should fail.": {
			status: http.StatusOK,
			body:   `<html>`,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(http.MethodGet, r.Method)
				assert.Equal("/task/index/7", r.URL.Path)
				w.WriteHeader(test.status)
				_, _ = w.Write([]byte(test.body))
			}))
			defer srv.Close()

			c, err := taskapi.NewClient(taskapi.ClientConfig{BaseURL: srv.URL + "/task/index/"})
			require.NoError(err)

			tc, err := c.GetTestCase(context.TODO(), 7)

			if test.expErr {
				assert.Error(err)
				if test.expErrIs != nil {
					assert.True(errors.Is(err, test.expErrIs))
				}
				return
			}
			assert.NoError(err)
			assert.Equal(test.expTestCase, tc)
		})
	}
}
