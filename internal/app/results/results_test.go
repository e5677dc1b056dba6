package results_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/swemas/internal/app/results"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage/memory"
)

func newRepository(t *testing.T, runs ...model.Run) *memory.Repository {
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	for _, r := range runs {
		require.NoError(t, repo.CreateRun(context.TODO(), r))
	}
	return repo
}

func TestNewService(t *testing.T) {
	_, err := results.NewService(results.ServiceConfig{})
	assert.ErrorContains(t, err, "repository is required")

	svc, err := results.NewService(results.ServiceConfig{Repository: newRepository(t)})
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestServiceList(t *testing.T) {
	base := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{ID: "r1", Index: 1, InstanceID: "a", Status: model.RunStatusPassed, CreatedAt: base},
		{ID: "r2", Index: 2, InstanceID: "b", Status: model.RunStatusFailed, CreatedAt: base.Add(time.Minute)},
		{ID: "r3", Index: 1, InstanceID: "a", Status: model.RunStatusErrored, Error: "boom", CreatedAt: base.Add(2 * time.Minute)},
	}
	one := 1
	errored := model.RunStatusErrored

	tests := map[string]struct {
		req        results.ListRequest
		expIDs     []string
		expSummary results.Summary
	}{
		"Listing without filters should return all the runs newest first.": {
			req:        results.ListRequest{},
			expIDs:     []string{"r3", "r2", "r1"},
			expSummary: results.Summary{Total: 3, Passed: 1, Failed: 1, Errored: 1},
		},
		"Listing by instance should return only the instance runs.": {
			req:        results.ListRequest{InstanceID: "a"},
			expIDs:     []string{"r3", "r1"},
			expSummary: results.Summary{Total: 2, Passed: 1, Errored: 1},
		},
		"Listing by index and status should combine the filters.": {
			req:        results.ListRequest{Index: &one, Status: &errored},
			expIDs:     []string{"r3"},
			expSummary: results.Summary{Total: 1, Errored: 1},
		},
		"Listing with no matches should return an empty list.": {
			req:        results.ListRequest{InstanceID: "missing"},
			expIDs:     []string{},
			expSummary: results.Summary{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			svc, err := results.NewService(results.ServiceConfig{Repository: newRepository(t, runs...)})
			require.NoError(err)

			resp, err := svc.List(context.TODO(), test.req)
			require.NoError(err)

			gotIDs := []string{}
			for _, r := range resp.Runs {
				gotIDs = append(gotIDs, r.ID)
			}
			assert.Equal(test.expIDs, gotIDs)
			assert.Equal(test.expSummary, resp.Summary)
		})
	}
}

func TestServiceGet(t *testing.T) {
	assert := assert.New(t)

	svc, err := results.NewService(results.ServiceConfig{Repository: newRepository(t, model.Run{ID: "r1", Index: 1})})
	require.NoError(t, err)

	r, err := svc.Get(context.TODO(), "r1")
	assert.NoError(err)
	assert.Equal("r1", r.ID)

	_, err = svc.Get(context.TODO(), "missing")
	assert.ErrorIs(err, model.ErrNotFound)
}
