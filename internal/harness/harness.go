package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
)

// Request is an evaluation request for a repository checkout.
type Request struct {
	InstanceID string
	// RepoDir is the checkout path as seen by the harness.
	RepoDir    string
	FailToPass []string
	PassToPass []string
}

// Evaluator knows how to run the benchmark tests on a repository checkout.
//
//go:generate mockery --name Evaluator --output harnessmock --outpkg harnessmock --structname MockEvaluator --filename evaluator.go
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (*model.TestResults, error)
}

// ClientConfig is the configuration of the harness HTTP service client.
type ClientConfig struct {
	URL        string
	HTTPClient *http.Client
	// Timeout is the per request timeout, zero means no timeout.
	Timeout time.Duration
	Logger  log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.URL == "" {
		return fmt.Errorf("url is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "harness.Client"})
	return nil
}

// Client is an Evaluator backed by the harness HTTP service.
type Client struct {
	url    string
	client *http.Client
	logger log.Logger
}

var _ Evaluator = &Client{}

// NewClient returns a new harness client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		url:    cfg.URL,
		client: cfg.HTTPClient,
		logger: cfg.Logger,
	}, nil
}

type requestJSON struct {
	InstanceID string   `json:"instance_id"`
	RepoDir    string   `json:"repoDir"`
	FailToPass []string `json:"FAIL_TO_PASS"`
	PassToPass []string `json:"PASS_TO_PASS"`
}

type responseJSON struct {
	// HarnessOutput is a JSON document encoded as a string.
	HarnessOutput *string `json:"harnessOutput"`
}

// Pointers tell a missing key apart from an empty list.
type testListJSON struct {
	Success *[]string `json:"success"`
	Failure *[]string `json:"failure"`
}

type testsStatusJSON struct {
	FailToPass *testListJSON `json:"FAIL_TO_PASS"`
	PassToPass *testListJSON `json:"PASS_TO_PASS"`
}

type instanceJSON struct {
	TestsStatus *testsStatusJSON `json:"tests_status"`
}

// Evaluate asks the harness to run the tests and returns the results.
func (c *Client) Evaluate(ctx context.Context, r Request) (*model.TestResults, error) {
	body, err := json.Marshal(requestJSON{
		InstanceID: r.InstanceID,
		RepoDir:    r.RepoDir,
		FailToPass: nonNil(r.FailToPass),
		PassToPass: nonNil(r.PassToPass),
	})
	if err != nil {
		return nil, fmt.Errorf("could not encode request: %w", err)
	}

	c.logger.Infof("Calling harness with repository %s", r.RepoDir)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not call harness: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("harness answered with %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var hr responseJSON
	if err := json.Unmarshal(respBody, &hr); err != nil {
		return nil, fmt.Errorf("could not decode harness response: %w", err)
	}

	return parseHarnessOutput(hr.HarnessOutput)
}

func parseHarnessOutput(raw *string) (*model.TestResults, error) {
	output := "{}"
	if raw != nil && strings.TrimSpace(*raw) != "" {
		output = *raw
	}

	instances := map[string]instanceJSON{}
	if err := json.Unmarshal([]byte(output), &instances); err != nil {
		return nil, fmt.Errorf("could not decode harness output: %w", err)
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("no data in harness output, possible evaluation error: %w", model.ErrEmptyResult)
	}

	// The output is keyed by instance, only one is expected.
	ids := make([]string, 0, len(instances))
	for id := range instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	id := ids[0]
	st := instances[id].TestsStatus
	if st == nil {
		return nil, fmt.Errorf("instance %q has no tests_status: %w", id, model.ErrNotValid)
	}

	failToPass, err := testStatus("FAIL_TO_PASS", st.FailToPass)
	if err != nil {
		return nil, fmt.Errorf("instance %q: %w", id, err)
	}
	passToPass, err := testStatus("PASS_TO_PASS", st.PassToPass)
	if err != nil {
		return nil, fmt.Errorf("instance %q: %w", id, err)
	}

	return &model.TestResults{
		InstanceID: id,
		FailToPass: failToPass,
		PassToPass: passToPass,
	}, nil
}

func testStatus(name string, l *testListJSON) (model.TestStatus, error) {
	switch {
	case l == nil:
		return model.TestStatus{}, fmt.Errorf("missing %s: %w", name, model.ErrNotValid)
	case l.Success == nil:
		return model.TestStatus{}, fmt.Errorf("missing %s success list: %w", name, model.ErrNotValid)
	case l.Failure == nil:
		return model.TestStatus{}, fmt.Errorf("missing %s failure list: %w", name, model.ErrNotValid)
	}

	return model.TestStatus{
		Passed: len(*l.Success),
		Total:  len(*l.Success) + len(*l.Failure),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
