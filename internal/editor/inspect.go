package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ListFiles returns the paths of all the files of a repository relative to its root.
// On failure it returns a single element with the error description.
func (w *Workspace) ListFiles(ctx context.Context, repo string) []string {
	repoPath, err := w.resolve(repo)
	if err != nil {
		return []string{fmt.Sprintf("Error: %s", err)}
	}

	if _, err := os.Stat(repoPath); err != nil {
		return []string{fmt.Sprintf("Error: Repository path '%s' does not exist.", repo)}
	}

	files := []string{}
	err = filepath.WalkDir(repoPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Git internals are not part of the repository sources.
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(repoPath, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return []string{fmt.Sprintf("Error: An error occurred while listing files: %s", err)}
	}

	w.logger.Debugf("Listed %d files on %s", len(files), repo)

	return files
}

// GetFileContent returns the full content of a repository file or an error description.
func (w *Workspace) GetFileContent(ctx context.Context, repo, file string) string {
	path, err := w.resolve(repo, file)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Sprintf("Error: File '%s' not found.", filepath.ToSlash(filepath.Join(repo, file)))
		}
		return fmt.Sprintf("Error: An error occurred while reading the file: %s", err)
	}

	return string(data)
}
