package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// FindAndReplace replaces all the non overlapping matches of the pattern regex on the
// file content. It never fails, errors are returned as a textual diagnosis.
func (w *Workspace) FindAndReplace(ctx context.Context, repo, file, pattern, replacement string) string {
	ref := filepath.ToSlash(filepath.Join(repo, file))

	path, err := w.resolve(repo, file)
	if err != nil {
		return fmt.Sprintf("[ERROR] An error occurred during find and replace: %s", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Sprintf("[ERROR] File not found: %s", ref)
		}
		return fmt.Sprintf("[ERROR] An error occurred during find and replace: %s", err)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Sprintf("[ERROR] An error occurred during find and replace: invalid pattern: %s", err)
	}

	before := string(data)
	after := re.ReplaceAllString(before, regexpTemplate(replacement))
	if after == before {
		w.logger.Debugf("Find and replace on %s didn't change the file", ref)
		return fmt.Sprintf("FIND AND REPLACE in %s successful!", ref)
	}

	if err := w.writeFile(path, before, after); err != nil {
		return fmt.Sprintf("[ERROR] An error occurred during find and replace: %s", err)
	}

	return fmt.Sprintf("FIND AND REPLACE in %s successful!", ref)
}

// DeleteLines deletes the 1-based inclusive range of lines from a file.
func (w *Workspace) DeleteLines(ctx context.Context, repo, file string, start, end int) error {
	return w.editLines(repo, file, func(lines []string) ([]string, error) {
		return DeleteRange(lines, start, end)
	})
}

// InsertAtLine inserts content as a new line at the 1-based pos line of a file.
func (w *Workspace) InsertAtLine(ctx context.Context, repo, file string, pos int, content string) error {
	return w.editLines(repo, file, func(lines []string) ([]string, error) {
		return InsertLine(lines, pos, content)
	})
}

// ReplaceLines replaces the 1-based inclusive range of lines of a file with new lines.
func (w *Workspace) ReplaceLines(ctx context.Context, repo, file string, start, end int, newLines []string) error {
	return w.editLines(repo, file, func(lines []string) ([]string, error) {
		return ReplaceRange(lines, start, end, newLines)
	})
}

func (w *Workspace) editLines(repo, file string, edit func([]string) ([]string, error)) error {
	path, lines, err := w.readLines(repo, file)
	if err != nil {
		return err
	}

	newLines, err := edit(lines)
	if err != nil {
		return err
	}

	if err := w.writeFile(path, JoinLines(lines), JoinLines(newLines)); err != nil {
		return fmt.Errorf("could not write file: %w", err)
	}

	return nil
}
