package results

import (
	"context"
	"fmt"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage"
)

// ServiceConfig is the configuration for the results service.
type ServiceConfig struct {
	Repository storage.RunReader
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Results"})

	return nil
}

// Service lists the recorded runs.
type Service struct {
	repo   storage.RunReader
	logger log.Logger
}

// NewService creates a new results service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// ListRequest represents the list request parameters.
type ListRequest struct {
	InstanceID string
	Index      *int
	// Status is an optional filter to only show runs with this status.
	Status *model.RunStatus
}

// ListResponse is the list of runs with a summary of them.
type ListResponse struct {
	Runs    []model.Run
	Summary Summary
}

// Summary aggregates the outcome of multiple runs.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Errored int
}

// List lists the runs, newest first.
func (s *Service) List(ctx context.Context, req ListRequest) (*ListResponse, error) {
	s.logger.Debugf("listing runs with instance %q", req.InstanceID)

	runs, err := s.repo.ListRuns(ctx, storage.ListRunsOpts{
		InstanceID: req.InstanceID,
		Index:      req.Index,
	})
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}

	if req.Status != nil {
		filtered := make([]model.Run, 0, len(runs))
		for _, r := range runs {
			if r.Status == *req.Status {
				filtered = append(filtered, r)
			}
		}
		runs = filtered
	}

	summary := Summary{Total: len(runs)}
	for _, r := range runs {
		switch r.Status {
		case model.RunStatusPassed:
			summary.Passed++
		case model.RunStatusFailed:
			summary.Failed++
		case model.RunStatusErrored:
			summary.Errored++
		}
	}

	s.logger.Debugf("found %d runs", len(runs))
	return &ListResponse{Runs: runs, Summary: summary}, nil
}

// Get returns a single run by its ID.
func (s *Service) Get(ctx context.Context, id string) (*model.Run, error) {
	r, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get run: %w", err)
	}
	return r, nil
}
