package lib

import (
	"context"

	"github.com/slok/swemas/internal/tool"
)

// ToolSet selects a group of agent tools.
type ToolSet string

const (
	// ToolSetRead are the planner tools (list and read files).
	ToolSetRead ToolSet = ToolSet(tool.KindRead)
	// ToolSetReadWrite are the coder tools, read tools plus find and replace.
	ToolSetReadWrite ToolSet = ToolSet(tool.KindReadWrite)
	// ToolSetAll are all the tools including the line editing ones.
	ToolSetAll ToolSet = ToolSet(tool.KindAll)
)

// Tools returns the schemas of a tool set as exposed to the models.
func (c *Client) Tools(set ToolSet, lineTools bool) ([]ToolSchema, error) {
	s, err := tool.NewEditorSet(tool.EditorSetConfig{
		Editor:    c.workspace,
		Kind:      tool.Kind(set),
		LineTools: lineTools,
		Logger:    c.logger,
	})
	if err != nil {
		return nil, mapError(err)
	}

	schemas := s.Schemas()
	res := make([]ToolSchema, 0, len(schemas))
	for _, sc := range schemas {
		res = append(res, ToolSchema{Name: sc.Name, Description: sc.Description, Parameters: sc.Parameters})
	}

	return res, nil
}

// ListFiles lists the files of a workspace repository. On failure the only element
// is the error description.
func (c *Client) ListFiles(ctx context.Context, repo string) []string {
	return c.workspace.ListFiles(ctx, repo)
}

// GetFileContent returns the file content or an error description.
func (c *Client) GetFileContent(ctx context.Context, repo, file string) string {
	return c.workspace.GetFileContent(ctx, repo, file)
}

// FindAndReplace replaces every match of the regex pattern in the file and returns
// a result description.
func (c *Client) FindAndReplace(ctx context.Context, repo, file, pattern, replacement string) string {
	return c.workspace.FindAndReplace(ctx, repo, file, pattern, replacement)
}

// DeleteLines deletes the 1-based inclusive line range.
//
// Returns [ErrNotValid] if the range is out of the file.
func (c *Client) DeleteLines(ctx context.Context, repo, file string, start, end int) error {
	return mapError(c.workspace.DeleteLines(ctx, repo, file, start, end))
}

// InsertAtLine inserts content as a new line before the 1-based line position.
//
// Returns [ErrNotValid] if the position is out of the file.
func (c *Client) InsertAtLine(ctx context.Context, repo, file string, pos int, content string) error {
	return mapError(c.workspace.InsertAtLine(ctx, repo, file, pos, content))
}

// ReplaceLines replaces the 1-based inclusive line range with the new lines.
//
// Returns [ErrNotValid] if the range is out of the file.
func (c *Client) ReplaceLines(ctx context.Context, repo, file string, start, end int, newLines []string) error {
	return mapError(c.workspace.ReplaceLines(ctx, repo, file, start, end, newLines))
}
