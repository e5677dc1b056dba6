package conventions

import (
	"fmt"
	"path"
	"path/filepath"
)

const (
	// DefaultDataDir is the default swemas data directory name (relative to home).
	DefaultDataDir = ".swemas"
	// DBFile is the SQLite database filename inside the data dir.
	DBFile = "swemas.db"
	// ReposDir is the default subdirectory where repositories are cloned.
	ReposDir = "repos"
	// ResultsLogFile is the default append-only results log filename.
	ResultsLogFile = "results.log"

	// HarnessReposDir is the path where the harness sees the repositories.
	HarnessReposDir = "/repos"
	// DefaultAPIURL is the default test case service base URL.
	DefaultAPIURL = "http://localhost:8081/task/index"
	// DefaultHarnessURL is the default test harness endpoint.
	DefaultHarnessURL = "http://localhost:8082/test"
)

// TaskDirName returns the directory name that holds the checkout of a task.
func TaskDirName(index int) string {
	return fmt.Sprintf("repo_%d", index)
}

// RepoRef returns the workspace relative reference of a task repository
// (e.g. `repo_7/django`), this is what agents use to address a repository.
func RepoRef(index int, name string) string {
	return path.Join(TaskDirName(index), name)
}

// TaskDir returns the directory for a specific task inside the repositories dir.
func TaskDir(reposDir string, index int) string {
	return filepath.Join(reposDir, TaskDirName(index))
}

// RepoDir returns the full path of a task repository checkout.
func RepoDir(reposDir string, index int, name string) string {
	return filepath.Join(TaskDir(reposDir, index), name)
}

// HarnessRepoDir returns the repository path as seen by the harness.
func HarnessRepoDir(harnessReposDir string, index int, name string) string {
	return path.Join(harnessReposDir, RepoRef(index, name))
}
