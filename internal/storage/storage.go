package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/swemas/internal/model"
)

// RunWriter knows how to record task runs.
//
//go:generate mockery --name RunWriter --output storagemock --outpkg storagemock --structname MockRunWriter --filename run_writer.go
type RunWriter interface {
	CreateRun(ctx context.Context, r model.Run) error
}

// ListRunsOpts are the filters of a run listing.
type ListRunsOpts struct {
	// InstanceID filters by benchmark instance when set.
	InstanceID string
	// Index filters by task index when set.
	Index *int
}

// RunReader knows how to get recorded task runs.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns the runs ordered from the newest to the oldest.
	ListRuns(ctx context.Context, opts ListRunsOpts) ([]model.Run, error)
}

// RunRepository is the interface for task run persistence.
type RunRepository interface {
	RunWriter
	RunReader
}

type multiRunWriter []RunWriter

// NewMultiRunWriter returns a RunWriter that records runs on all the writers. Every
// writer is used even if a previous one failed.
func NewMultiRunWriter(writers ...RunWriter) RunWriter {
	return multiRunWriter(writers)
}

func (m multiRunWriter) CreateRun(ctx context.Context, r model.Run) error {
	var errs []error
	for _, w := range m {
		if err := w.CreateRun(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not record run on all the writers: %w", err)
	}

	return nil
}

// Matches returns true if the run satisfies the listing filters.
func (o ListRunsOpts) Matches(r model.Run) bool {
	if o.InstanceID != "" && r.InstanceID != o.InstanceID {
		return false
	}
	if o.Index != nil && r.Index != *o.Index {
		return false
	}
	return true
}
