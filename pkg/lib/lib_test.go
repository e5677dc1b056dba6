package lib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/storage/sqlite"
	"github.com/slok/swemas/pkg/lib"
)

// newTestClient creates a client with a temp SQLite DB seeded with runs.
func newTestClient(t *testing.T, runs ...model.Run) (*lib.Client, string) {
	t.Helper()

	ctx := context.Background()
	dataDir := t.TempDir()
	dbPath := filepath.Join(dataDir, "test.db")

	seed, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath})
	require.NoError(t, err)
	for _, r := range runs {
		require.NoError(t, seed.CreateRun(ctx, r))
	}
	require.NoError(t, seed.Close())

	client, err := lib.New(ctx, lib.Config{
		DBPath:  dbPath,
		DataDir: dataDir,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client, dataDir
}

func TestListRuns(t *testing.T) {
	base := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:         "r1",
			Index:      1,
			InstanceID: "a",
			Status:     model.RunStatusPassed,
			Results: model.TestResults{
				InstanceID: "a",
				FailToPass: model.TestStatus{Passed: 2, Total: 2},
				PassToPass: model.TestStatus{Passed: 5, Total: 5},
			},
			CreatedAt: base,
		},
		{ID: "r2", Index: 2, Status: model.RunStatusErrored, Error: "boom", CreatedAt: base.Add(time.Minute)},
	}
	two := 2

	tests := map[string]struct {
		opts   lib.ListRunsOpts
		expIDs []string
	}{
		"Listing without filters should return all the runs newest first.": {
			expIDs: []string{"r2", "r1"},
		},
		"Listing by status should filter the runs.": {
			opts:   lib.ListRunsOpts{Status: lib.RunStatusPassed},
			expIDs: []string{"r1"},
		},
		"Listing by index should filter the runs.": {
			opts:   lib.ListRunsOpts{Index: &two},
			expIDs: []string{"r2"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, runs...)

			got, err := client.ListRuns(context.Background(), test.opts)
			require.NoError(t, err)

			gotIDs := []string{}
			for _, r := range got {
				gotIDs = append(gotIDs, r.ID)
			}
			assert.Equal(t, test.expIDs, gotIDs)
		})
	}
}

func TestGetRun(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, model.Run{
		ID:         "r1",
		Index:      1,
		InstanceID: "a",
		Status:     model.RunStatusFailed,
		Results: model.TestResults{
			InstanceID: "a",
			FailToPass: model.TestStatus{Passed: 1, Total: 2},
			PassToPass: model.TestStatus{Passed: 5, Total: 5},
		},
		Plan:      "1. Fix.",
		Steps:     3,
		CreatedAt: createdAt,
	})

	r, err := client.GetRun(context.Background(), "r1")
	require.NoError(err)
	assert.Equal(lib.RunStatusFailed, r.Status)
	assert.Equal(lib.TestStatus{Passed: 1, Total: 2}, r.FailToPass)
	assert.Equal("1. Fix.", r.Plan)
	assert.True(createdAt.Equal(r.CreatedAt))

	_, err = client.GetRun(context.Background(), "missing")
	assert.ErrorIs(err, lib.ErrNotFound)
}

func TestTools(t *testing.T) {
	client, _ := newTestClient(t)

	tools, err := client.Tools(lib.ToolSetRead, false)
	require.NoError(t, err)

	names := []string{}
	for _, tl := range tools {
		names = append(names, tl.Name)
	}
	assert.ElementsMatch(t, []string{"list_files_in_repository", "get_file_content"}, names)

	_, err = client.Tools("unknown", false)
	assert.Error(t, err)
}

func TestEditors(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client, dataDir := newTestClient(t)
	ctx := context.Background()

	repoDir := filepath.Join(dataDir, "repos", "repo_1", "proj")
	require.NoError(os.MkdirAll(repoDir, 0o755))
	require.NoError(os.WriteFile(filepath.Join(repoDir, "main.py"), []byte("a\nb\nc\n"), 0o644))

	require.NoError(client.InsertAtLine(ctx, "repo_1/proj", "main.py", 2, "x"))
	assert.Equal("a\nx\nb\nc\n", client.GetFileContent(ctx, "repo_1/proj", "main.py"))

	require.NoError(client.ReplaceLines(ctx, "repo_1/proj", "main.py", 1, 2, []string{"z"}))
	require.NoError(client.DeleteLines(ctx, "repo_1/proj", "main.py", 3, 3))
	assert.Equal("z\nb\n", client.GetFileContent(ctx, "repo_1/proj", "main.py"))

	err := client.DeleteLines(ctx, "repo_1/proj", "main.py", 2, 9)
	assert.ErrorIs(err, lib.ErrNotValid)

	assert.Equal([]string{"main.py"}, client.ListFiles(ctx, "repo_1/proj"))
}
