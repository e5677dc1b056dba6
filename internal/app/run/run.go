package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/swemas/internal/agent"
	"github.com/slok/swemas/internal/conventions"
	"github.com/slok/swemas/internal/git"
	"github.com/slok/swemas/internal/harness"
	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/metrics"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage"
	"github.com/slok/swemas/internal/taskapi"
)

// ServiceConfig is the configuration for the run service.
type ServiceConfig struct {
	TestCases taskapi.Repository
	Git       git.Manager
	Runner    agent.Runner
	Evaluator harness.Evaluator
	RunWriter storage.RunWriter
	// ReposDir is the local directory where the task repositories are cloned.
	ReposDir string
	// HarnessReposDir is ReposDir as seen by the harness.
	HarnessReposDir string
	IDGenerator     func() string
	TimeNow         func() time.Time
	MetricRecorder  metrics.Recorder
	Logger          log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.TestCases == nil {
		return fmt.Errorf("test case repository is required")
	}
	if c.Git == nil {
		return fmt.Errorf("git manager is required")
	}
	if c.Runner == nil {
		return fmt.Errorf("agent runner is required")
	}
	if c.Evaluator == nil {
		return fmt.Errorf("evaluator is required")
	}
	if c.RunWriter == nil {
		return fmt.Errorf("run writer is required")
	}
	if c.ReposDir == "" {
		return fmt.Errorf("repositories dir is required")
	}
	if c.HarnessReposDir == "" {
		c.HarnessReposDir = conventions.HarnessReposDir
	}
	if c.IDGenerator == nil {
		c.IDGenerator = func() string { return ulid.Make().String() }
	}
	if c.TimeNow == nil {
		c.TimeNow = time.Now
	}
	if c.MetricRecorder == nil {
		c.MetricRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Run"})
	return nil
}

// Service runs benchmark tasks end to end: it gets the repository, lets the agents fix it
// and evaluates the result with the harness.
type Service struct {
	testCases       taskapi.Repository
	git             git.Manager
	runner          agent.Runner
	evaluator       harness.Evaluator
	runWriter       storage.RunWriter
	reposDir        string
	harnessReposDir string
	idGen           func() string
	timeNow         func() time.Time
	metricRecorder  metrics.Recorder
	logger          log.Logger
}

// NewService creates a new run service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		testCases:       cfg.TestCases,
		git:             cfg.Git,
		runner:          cfg.Runner,
		evaluator:       cfg.Evaluator,
		runWriter:       cfg.RunWriter,
		reposDir:        cfg.ReposDir,
		harnessReposDir: cfg.HarnessReposDir,
		idGen:           cfg.IDGenerator,
		timeNow:         cfg.TimeNow,
		metricRecorder:  cfg.MetricRecorder,
		logger:          cfg.Logger,
	}, nil
}

// Request represents the run request parameters.
type Request struct {
	Indexes []int
}

// Response is the result of running multiple tasks.
type Response struct {
	Runs []model.Run
}

// Run runs the requested tasks sequentially. A failed task doesn't stop the next ones,
// only a cancelled context does.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	if len(req.Indexes) == 0 {
		return nil, fmt.Errorf("at least one task index is required: %w", model.ErrNotValid)
	}

	runs := make([]model.Run, 0, len(req.Indexes))
	for _, index := range req.Indexes {
		if err := ctx.Err(); err != nil {
			return &Response{Runs: runs}, fmt.Errorf("run cancelled: %w", err)
		}

		r, err := s.RunTask(ctx, index)
		if r != nil {
			runs = append(runs, *r)
		}
		if err != nil {
			s.logger.Errorf("task %d failed: %s", index, err)
			continue
		}
	}

	return &Response{Runs: runs}, nil
}

// RunTask runs a single task. The run is always recorded, even when the task fails,
// in that case the returned run is the errored record along with the error.
func (s *Service) RunTask(ctx context.Context, index int) (*model.Run, error) {
	logger := s.logger.WithValues(log.Kv{"task": index})
	ctx = logger.SetValuesOnCtx(ctx, log.Kv{"task": index})
	logger.Infof("running task")

	r := model.Run{
		ID:        s.idGen(),
		Index:     index,
		CreatedAt: s.timeNow().UTC(),
	}

	taskErr := s.runTask(ctx, &r)
	if taskErr != nil {
		r.Status = model.RunStatusErrored
		r.Error = taskErr.Error()
	}
	s.metricRecorder.IncTaskRun(ctx, string(r.Status))

	if err := s.runWriter.CreateRun(ctx, r); err != nil {
		return &r, errors.Join(taskErr, fmt.Errorf("could not record run: %w", err))
	}

	if taskErr != nil {
		return &r, taskErr
	}

	logger.Infof("task finished with status %s (FAIL_TO_PASS %d/%d, PASS_TO_PASS %d/%d)", r.Status,
		r.Results.FailToPass.Passed, r.Results.FailToPass.Total,
		r.Results.PassToPass.Passed, r.Results.PassToPass.Total)

	return &r, nil
}

func (s *Service) runTask(ctx context.Context, r *model.Run) error {
	tc, err := s.testCases.GetTestCase(ctx, r.Index)
	if err != nil {
		return fmt.Errorf("could not get test case: %w", err)
	}
	r.InstanceID = tc.InstanceID

	spec, err := git.ParseCloneCommand(tc.CloneCommand)
	if err != nil {
		return fmt.Errorf("could not parse clone command: %w", err)
	}

	repoDir := conventions.RepoDir(s.reposDir, r.Index, spec.Name)
	if err := s.prepareRepository(ctx, spec, repoDir); err != nil {
		return err
	}

	res, err := s.runner.Run(ctx, agent.Task{
		Index:            r.Index,
		RepoRef:          conventions.RepoRef(r.Index, spec.Name),
		ProblemStatement: tc.ProblemStatement,
	})
	if err != nil {
		return fmt.Errorf("could not run agents: %w", err)
	}
	r.Plan = res.Plan
	r.Output = res.Output
	r.Steps = res.Steps

	results, err := s.evaluator.Evaluate(ctx, harness.Request{
		InstanceID: tc.InstanceID,
		RepoDir:    conventions.HarnessRepoDir(s.harnessReposDir, r.Index, spec.Name),
		FailToPass: tc.FailToPass,
		PassToPass: tc.PassToPass,
	})
	if err != nil {
		return fmt.Errorf("could not evaluate repository: %w", err)
	}

	r.Results = *results
	r.Status = model.RunStatusFailed
	if results.AllPassed() {
		r.Status = model.RunStatusPassed
	}

	return nil
}

// prepareRepository clones the repository if missing and moves it to the task commit.
func (s *Service) prepareRepository(ctx context.Context, spec model.CloneSpec, repoDir string) error {
	_, err := os.Stat(repoDir)
	switch {
	case err == nil:
		s.logger.Debugf("repository %s already present, skipping clone", repoDir)
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(repoDir), 0o755); err != nil {
			return fmt.Errorf("could not create task dir: %w", err)
		}
		if err := s.git.Clone(ctx, spec.URL, repoDir); err != nil {
			return fmt.Errorf("could not clone repository: %w", err)
		}
	default:
		return fmt.Errorf("could not check repository dir: %w", err)
	}

	if spec.Commit == "" {
		return nil
	}

	if err := s.git.Checkout(ctx, repoDir, spec.Commit); err != nil {
		return fmt.Errorf("could not checkout commit: %w", err)
	}
	if err := s.git.ResetHard(ctx, repoDir); err != nil {
		return fmt.Errorf("could not reset repository: %w", err)
	}

	return nil
}
