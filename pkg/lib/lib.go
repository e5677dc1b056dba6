package lib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/swemas/internal/conventions"
	"github.com/slok/swemas/internal/editor"
	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/storage"
	"github.com/slok/swemas/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses ~/.swemas/swemas.db for the runs
// and ~/.swemas/repos as the repositories workspace.
type Config struct {
	// DBPath is the SQLite database path.
	// Default: ~/.swemas/swemas.db.
	DBPath string

	// DataDir is the base directory for swemas data.
	// Default: ~/.swemas.
	DataDir string

	// ReposDir is the workspace of the editors, repositories are addressed relative to it.
	// Default: <DataDir>/repos.
	ReposDir string

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not get user home dir: %w", err)
		}
		c.DataDir = filepath.Join(home, conventions.DefaultDataDir)
	}

	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, conventions.DBFile)
	}

	if c.ReposDir == "" {
		c.ReposDir = filepath.Join(c.DataDir, conventions.ReposDir)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point.
//
// Create a Client with [New] and release its resources with [Client.Close].
type Client struct {
	repo      storage.RunReader
	workspace *editor.Workspace
	logger    log.Logger
	closeFn   func() error
}

// New creates a new SDK client backed by a SQLite database.
//
// The caller must call [Client.Close] when done to release the database connection.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ws, err := editor.NewWorkspace(editor.WorkspaceConfig{
		Root:   cfg.ReposDir,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create workspace: %w", err)
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create repository: %w", err)
	}

	return &Client{
		repo:      repo,
		workspace: ws,
		logger:    cfg.Logger,
		closeFn:   repo.Close,
	}, nil
}

// Close releases resources held by the client, including the database connection.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
