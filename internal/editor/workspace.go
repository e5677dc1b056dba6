package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/model"
)

// WorkspaceConfig is the configuration for the workspace.
type WorkspaceConfig struct {
	// Root is the directory that holds all the repositories, every repository
	// reference is relative to it.
	Root   string
	Logger log.Logger
}

func (c *WorkspaceConfig) defaults() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("could not resolve root path: %w", err)
	}
	c.Root = root

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "editor.Workspace"})
	return nil
}

// Workspace reads and edits files of the repositories under a root directory.
//
// Inspection and find and replace operations never fail, they return a textual
// diagnosis instead so the caller (usually a model) can self-correct. Line range
// editors return errors.
type Workspace struct {
	root   string
	logger log.Logger
}

// NewWorkspace returns a new workspace.
func NewWorkspace(cfg WorkspaceConfig) (*Workspace, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Workspace{
		root:   cfg.Root,
		logger: cfg.Logger,
	}, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// resolve returns the absolute path of a workspace relative path, paths
// escaping the root are rejected.
func (w *Workspace) resolve(elems ...string) (string, error) {
	p := filepath.Join(append([]string{w.root}, elems...)...)
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the workspace: %w", filepath.Join(elems...), model.ErrNotValid)
	}
	return p, nil
}

func (w *Workspace) readLines(repo, file string) (path string, lines []string, err error) {
	path, err = w.resolve(repo, file)
	if err != nil {
		return "", nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("could not read file: %w", err)
	}

	return path, SplitLines(string(data)), nil
}

// writeFile atomically replaces the file content keeping its permissions.
func (w *Workspace) writeFile(path, before, after string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".swemas-tmp-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.WriteString(after)
	tmp.Close()
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not write: %w", err)
	}

	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not set permissions: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not rename: %w", err)
	}

	added, deleted := lineDiffStats(before, after)
	w.logger.Debugf("File %s written (+%d -%d lines)", w.rel(path), added, deleted)

	return nil
}

func (w *Workspace) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// lineDiffStats returns the number of added and deleted lines between two contents.
func lineDiffStats(before, after string) (added, deleted int) {
	if before == after {
		return 0, 0
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	for _, d := range diffs {
		n := len(SplitLines(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			deleted += n
		}
	}

	return added, deleted
}
