package logfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage"
)

// TimeFormat is the format of the run timestamps.
const TimeFormat = "2006-01-02T15:04:05.000000Z07:00"

// WriterConfig is the configuration of the results log writer.
type WriterConfig struct {
	Path   string
	Logger log.Logger
}

func (c *WriterConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.LogFile"})
	return nil
}

// Writer is a storage.RunWriter that appends a human readable block per run
// to a results log file.
type Writer struct {
	path   string
	mu     sync.Mutex
	logger log.Logger
}

var _ storage.RunWriter = &Writer{}

// NewWriter returns a new results log writer.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Writer{
		path:   cfg.Path,
		logger: cfg.Logger,
	}, nil
}

// CreateRun appends the run block to the log file.
func (w *Writer) CreateRun(ctx context.Context, r model.Run) error {
	block := FormatRun(r)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("could not create results log directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open results log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("could not write results log: %w", err)
	}

	w.logger.Debugf("Run %s of test case %d logged", r.ID, r.Index)
	return nil
}

// FormatRun returns the results log block of a run.
func FormatRun(r model.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- TESTCASE %d ---\n", r.Index)

	if r.Status == model.RunStatusErrored {
		fmt.Fprintf(&b, "Error: %s\n", r.Error)
		return b.String()
	}

	// The harness keys its output by instance, log the one it answered with.
	instanceID := r.Results.InstanceID
	if instanceID == "" {
		instanceID = r.InstanceID
	}
	fmt.Fprintf(&b, "Instance ID: %s\n", instanceID)
	fmt.Fprintf(&b, "FAIL_TO_PASS passed: %d/%d\n", r.Results.FailToPass.Passed, r.Results.FailToPass.Total)
	fmt.Fprintf(&b, "PASS_TO_PASS passed: %d/%d\n", r.Results.PassToPass.Passed, r.Results.PassToPass.Total)
	fmt.Fprintf(&b, "All tests passed: %t\n", r.Results.AllPassed())
	fmt.Fprintf(&b, "Time: %s\n", r.CreatedAt.UTC().Format(TimeFormat))

	return b.String()
}
