package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage"
	"github.com/slok/swemas/internal/storage/memory"
)

func newRepo(t *testing.T) *memory.Repository {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
	require.NoError(t, err)
	return repo
}

func TestRepositoryRuns(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository)
	}{
		"Creating a run should allow getting it back": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				run := model.Run{ID: "r1", Index: 7, InstanceID: "a", Status: model.RunStatusPassed, CreatedAt: base}
				require.NoError(t, repo.CreateRun(ctx, run))

				got, err := repo.GetRun(ctx, "r1")
				require.NoError(t, err)
				assert.Equal(t, run, *got)
			},
		},

		"Creating a duplicated run should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				run := model.Run{ID: "r1", CreatedAt: base}
				require.NoError(t, repo.CreateRun(ctx, run))

				err := repo.CreateRun(ctx, run)
				assert.True(t, errors.Is(err, model.ErrAlreadyExists))
			},
		},

		"Creating a run without ID should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				err := repo.CreateRun(ctx, model.Run{CreatedAt: base})
				assert.True(t, errors.Is(err, model.ErrNotValid))
			},
		},

		"Getting a missing run should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				_, err := repo.GetRun(ctx, "missing")
				assert.True(t, errors.Is(err, model.ErrNotFound))
			},
		},

		"Listing runs should filter and sort newest first": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) {
				require.NoError(t, repo.CreateRun(ctx, model.Run{ID: "r1", Index: 1, InstanceID: "a", CreatedAt: base}))
				require.NoError(t, repo.CreateRun(ctx, model.Run{ID: "r2", Index: 2, InstanceID: "b", CreatedAt: base.Add(time.Hour)}))
				require.NoError(t, repo.CreateRun(ctx, model.Run{ID: "r3", Index: 1, InstanceID: "a", CreatedAt: base.Add(time.Hour)}))

				runs, err := repo.ListRuns(ctx, storage.ListRunsOpts{})
				require.NoError(t, err)
				require.Len(t, runs, 3)
				assert.Equal(t, []string{"r3", "r2", "r1"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

				runs, err = repo.ListRuns(ctx, storage.ListRunsOpts{InstanceID: "a"})
				require.NoError(t, err)
				require.Len(t, runs, 2)
				assert.Equal(t, "r3", runs[0].ID)
				assert.Equal(t, "r1", runs[1].ID)

				index := 2
				runs, err = repo.ListRuns(ctx, storage.ListRunsOpts{Index: &index})
				require.NoError(t, err)
				require.Len(t, runs, 1)
				assert.Equal(t, "r2", runs[0].ID)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			test.actions(context.Background(), t, newRepo(t))
		})
	}
}

func TestRepositoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.CreateRun(ctx, model.Run{ID: string(rune('a' + i)), CreatedAt: time.Now()})
			_, _ = repo.ListRuns(ctx, storage.ListRunsOpts{})
		}(i)
	}
	wg.Wait()

	runs, err := repo.ListRuns(ctx, storage.ListRunsOpts{})
	require.NoError(t, err)
	assert.Len(t, runs, 20)
}
