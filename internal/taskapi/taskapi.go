package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
)

// Repository knows how to get benchmark test cases.
//
//go:generate mockery --name Repository --output taskapimock --outpkg taskapimock --structname MockRepository --filename repository.go
type Repository interface {
	GetTestCase(ctx context.Context, index int) (*model.TestCase, error)
}

// ClientConfig is the configuration of the test case HTTP service client.
type ClientConfig struct {
	// BaseURL is the test case endpoint, the task index is appended as the last path element.
	BaseURL    string
	HTTPClient *http.Client
	// Timeout is the per request timeout, zero means no timeout.
	Timeout time.Duration
	Logger  log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "taskapi.Client"})
	return nil
}

// Client is a Repository backed by the test case HTTP service.
type Client struct {
	baseURL  string
	client   *http.Client
	validate *validator.Validate
	logger   log.Logger
}

var _ Repository = &Client{}

// NewClient returns a new test case service client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		client:   cfg.HTTPClient,
		validate: validator.New(),
		logger:   cfg.Logger,
	}, nil
}

type testCaseJSON struct {
	ProblemStatement string          `json:"Problem_statement" validate:"required"`
	GitClone         string          `json:"git_clone" validate:"required"`
	FailToPass       json.RawMessage `json:"FAIL_TO_PASS"`
	PassToPass       json.RawMessage `json:"PASS_TO_PASS"`
	InstanceID       string          `json:"instance_id" validate:"required"`
}

// GetTestCase fetches the test case of the index.
func (c *Client) GetTestCase(ctx context.Context, index int) (*model.TestCase, error) {
	url := c.baseURL + "/" + strconv.Itoa(index)
	c.logger.Infof("Fetching test case %d from %s", index, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not get test case: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid response: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}

	var tc testCaseJSON
	if err := json.Unmarshal(body, &tc); err != nil {
		return nil, fmt.Errorf("could not decode test case: %w", err)
	}
	if err := c.validate.Struct(tc); err != nil {
		return nil, fmt.Errorf("invalid test case: %w: %w", err, model.ErrNotValid)
	}

	failToPass, err := decodeTestList(tc.FailToPass)
	if err != nil {
		return nil, fmt.Errorf("invalid FAIL_TO_PASS: %w", err)
	}
	passToPass, err := decodeTestList(tc.PassToPass)
	if err != nil {
		return nil, fmt.Errorf("invalid PASS_TO_PASS: %w", err)
	}

	return &model.TestCase{
		Index:            index,
		InstanceID:       tc.InstanceID,
		ProblemStatement: tc.ProblemStatement,
		CloneCommand:     tc.GitClone,
		FailToPass:       failToPass,
		PassToPass:       passToPass,
	}, nil
}

// decodeTestList decodes a test identifier list. The service sends them as JSON
// encoded strings, plain JSON lists are accepted too.
func decodeTestList(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		if strings.TrimSpace(encoded) == "" {
			return []string{}, nil
		}
		raw = json.RawMessage(encoded)
	}

	tests := []string{}
	if err := json.Unmarshal(raw, &tests); err != nil {
		return nil, fmt.Errorf("could not decode test list: %w", err)
	}

	return tests, nil
}
