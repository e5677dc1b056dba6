package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/metrics"
)

// Tool names.
const (
	NameListFiles      = "list_files_in_repository"
	NameGetFileContent = "get_file_content"
	NameFindAndReplace = "find_and_replace"
	NameDeleteLines    = "delete_lines"
	NameInsertAtLine   = "insert_at_line"
	NameReplaceLines   = "replace_lines"
)

// Editor is the repository workspace the editor tools act on.
type Editor interface {
	ListFiles(ctx context.Context, repo string) []string
	GetFileContent(ctx context.Context, repo, file string) string
	FindAndReplace(ctx context.Context, repo, file, pattern, replacement string) string
	DeleteLines(ctx context.Context, repo, file string, start, end int) error
	InsertAtLine(ctx context.Context, repo, file string, pos int, content string) error
	ReplaceLines(ctx context.Context, repo, file string, start, end int, newLines []string) error
}

func objectSchema(required []string, props map[string]any) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

const repoDesc = "The name of the repository (e.g. repo_1/django)."

// NewListFilesTool returns the tool that lists the files of a repository.
func NewListFilesTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameListFiles,
		ToolDesc: "Lists all files in a given repository directory recursively. Returns a list of file paths relative to the repository root, or an error message.",
		ToolParams: objectSchema([]string{"repo"}, map[string]any{
			"repo": stringProp(repoDesc),
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repo")
			if err != nil {
				return "", err
			}

			files := e.ListFiles(ctx, repo)
			data, err := json.Marshal(files)
			if err != nil {
				return "", fmt.Errorf("could not encode file list: %w", err)
			}

			return string(data), nil
		},
	}
}

// NewGetFileContentTool returns the tool that reads a repository file.
func NewGetFileContentTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameGetFileContent,
		ToolDesc: "Reads the content of a file and returns it as a string. Always provide the base repo.",
		ToolParams: objectSchema([]string{"repo", "file_path"}, map[string]any{
			"repo":      stringProp(repoDesc),
			"file_path": stringProp("Path to the file to be read, relative to the repository."),
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repo")
			if err != nil {
				return "", err
			}
			file, err := argString(args, "file_path")
			if err != nil {
				return "", err
			}

			return e.GetFileContent(ctx, repo, file), nil
		},
	}
}

// NewFindAndReplaceTool returns the tool that applies a regex substitution on a file.
func NewFindAndReplaceTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameFindAndReplace,
		ToolDesc: "Allows to use search and replace writing operations via Regex expressions. Every match of the pattern in the file is replaced.",
		ToolParams: objectSchema([]string{"repository_name", "file_path", "pattern", "replacement"}, map[string]any{
			"repository_name": stringProp(repoDesc),
			"file_path":       stringProp("Path to the file, relative to the repository."),
			"pattern":         stringProp("The regex pattern to replace."),
			"replacement":     stringProp("Content to replace the pattern with."),
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repository_name")
			if err != nil {
				return "", err
			}
			file, err := argString(args, "file_path")
			if err != nil {
				return "", err
			}
			pattern, err := argString(args, "pattern")
			if err != nil {
				return "", err
			}
			replacement, err := argString(args, "replacement")
			if err != nil {
				return "", err
			}

			return e.FindAndReplace(ctx, repo, file, pattern, replacement), nil
		},
	}
}

// NewDeleteLinesTool returns the tool that deletes a range of lines from a file.
func NewDeleteLinesTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameDeleteLines,
		ToolDesc: "Delete a range of lines from a file.",
		ToolParams: objectSchema([]string{"repository_name", "file_path", "start_line", "end_line"}, map[string]any{
			"repository_name": stringProp(repoDesc),
			"file_path":       stringProp("Path to the target file, relative to the repository."),
			"start_line":      intProp("The starting line number (1-based index) of the range to delete."),
			"end_line":        intProp("The ending line number (inclusive, 1-based index) of the range to delete."),
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repository_name")
			if err != nil {
				return "", err
			}
			file, err := argString(args, "file_path")
			if err != nil {
				return "", err
			}
			start, err := argInt(args, "start_line")
			if err != nil {
				return "", err
			}
			end, err := argInt(args, "end_line")
			if err != nil {
				return "", err
			}

			if err := e.DeleteLines(ctx, repo, file, start, end); err != nil {
				return "", err
			}

			return fmt.Sprintf("Lines %d to %d deleted from %s.", start, end, file), nil
		},
	}
}

// NewInsertAtLineTool returns the tool that inserts a line in a file.
func NewInsertAtLineTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameInsertAtLine,
		ToolDesc: "Insert a line of text at a specific position in a file.",
		ToolParams: objectSchema([]string{"repository_name", "file_path", "line_number", "content"}, map[string]any{
			"repository_name": stringProp(repoDesc),
			"file_path":       stringProp("Path to the target file, relative to the repository."),
			"line_number":     intProp("The line number (1-based index) at which to insert the new content."),
			"content":         stringProp("The content to insert into the file."),
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repository_name")
			if err != nil {
				return "", err
			}
			file, err := argString(args, "file_path")
			if err != nil {
				return "", err
			}
			pos, err := argInt(args, "line_number")
			if err != nil {
				return "", err
			}
			content, err := argString(args, "content")
			if err != nil {
				return "", err
			}

			if err := e.InsertAtLine(ctx, repo, file, pos, content); err != nil {
				return "", err
			}

			return fmt.Sprintf("Content inserted at line %d of %s.", pos, file), nil
		},
	}
}

// NewReplaceLinesTool returns the tool that replaces a range of lines in a file.
func NewReplaceLinesTool(e Editor) Tool {
	return &FuncTool{
		ToolName: NameReplaceLines,
		ToolDesc: "Replace a range of lines in a file with new content.",
		ToolParams: objectSchema([]string{"repository_name", "file_path", "start_line", "end_line", "new_content"}, map[string]any{
			"repository_name": stringProp(repoDesc),
			"file_path":       stringProp("Path to the target file, relative to the repository."),
			"start_line":      intProp("The starting line number (1-based index) of the range to replace."),
			"end_line":        intProp("The ending line number (inclusive, 1-based index) of the range to replace."),
			"new_content": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The new lines to replace the range with.",
			},
		}),
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			repo, err := argString(args, "repository_name")
			if err != nil {
				return "", err
			}
			file, err := argString(args, "file_path")
			if err != nil {
				return "", err
			}
			start, err := argInt(args, "start_line")
			if err != nil {
				return "", err
			}
			end, err := argInt(args, "end_line")
			if err != nil {
				return "", err
			}
			newLines, err := argStringSlice(args, "new_content")
			if err != nil {
				return "", err
			}

			if err := e.ReplaceLines(ctx, repo, file, start, end, newLines); err != nil {
				return "", err
			}

			return fmt.Sprintf("Lines %d to %d of %s replaced with %d lines.", start, end, file, len(newLines)), nil
		},
	}
}

// Kind is a predefined group of tools.
type Kind string

const (
	KindRead      Kind = "read"
	KindReadWrite Kind = "read-write"
	KindAll       Kind = "all"
)

// EditorSetConfig is the configuration to build a predefined editor tool set.
type EditorSetConfig struct {
	Editor Editor
	Kind   Kind
	// LineTools adds the line editing tools to the read-write set.
	LineTools      bool
	MetricRecorder metrics.Recorder
	Logger         log.Logger
}

// NewEditorSet returns one of the predefined editor tool sets.
func NewEditorSet(cfg EditorSetConfig) (*Set, error) {
	if cfg.Editor == nil {
		return nil, fmt.Errorf("invalid config: editor is required")
	}
	e := cfg.Editor

	var tools []Tool
	switch cfg.Kind {
	case KindRead:
		tools = []Tool{NewListFilesTool(e), NewGetFileContentTool(e)}
	case KindReadWrite, "":
		tools = []Tool{NewFindAndReplaceTool(e), NewListFilesTool(e), NewGetFileContentTool(e)}
		if cfg.LineTools {
			tools = append(tools, NewDeleteLinesTool(e), NewInsertAtLineTool(e), NewReplaceLinesTool(e))
		}
	case KindAll:
		tools = []Tool{
			NewFindAndReplaceTool(e),
			NewListFilesTool(e),
			NewGetFileContentTool(e),
			NewDeleteLinesTool(e),
			NewInsertAtLineTool(e),
			NewReplaceLinesTool(e),
		}
	default:
		return nil, fmt.Errorf("invalid config: unknown tool set kind %q", cfg.Kind)
	}

	return NewSet(SetConfig{
		Tools:          tools,
		MetricRecorder: cfg.MetricRecorder,
		Logger:         cfg.Logger,
	})
}
