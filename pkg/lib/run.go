package lib

import (
	"context"

	"github.com/slok/swemas/internal/storage"
)

// ListRunsOpts filters the listed runs, zero values don't filter.
type ListRunsOpts struct {
	InstanceID string
	Index      *int
	Status     RunStatus
}

// ListRuns returns the recorded runs, newest first.
func (c *Client) ListRuns(ctx context.Context, opts ListRunsOpts) ([]Run, error) {
	runs, err := c.repo.ListRuns(ctx, storage.ListRunsOpts{
		InstanceID: opts.InstanceID,
		Index:      opts.Index,
	})
	if err != nil {
		return nil, mapError(err)
	}

	res := make([]Run, 0, len(runs))
	for _, r := range runs {
		run := fromInternalRun(r)
		if opts.Status != "" && run.Status != opts.Status {
			continue
		}
		res = append(res, run)
	}

	return res, nil
}

// GetRun returns a run by its ID.
//
// Returns [ErrNotFound] if the run does not exist.
func (c *Client) GetRun(ctx context.Context, id string) (*Run, error) {
	r, err := c.repo.GetRun(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	run := fromInternalRun(*r)
	return &run, nil
}
