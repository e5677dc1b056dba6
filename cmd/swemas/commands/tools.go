package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/swemas/internal/editor"
	"github.com/slok/swemas/internal/tool"
)

type ToolsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	set       string
	lineTools bool
	format    string
}

// NewToolsCommand returns the tools command.
func NewToolsCommand(rootCmd *RootCommand, app *kingpin.Application) *ToolsCommand {
	c := &ToolsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("tools", "Show the tools exposed to the agents.")
	c.Cmd.Flag("set", "Tool set (read, read-write, all).").Default(string(tool.KindReadWrite)).
		EnumVar(&c.set, string(tool.KindRead), string(tool.KindReadWrite), string(tool.KindAll))
	c.Cmd.Flag("line-tools", "Include the line editing tools in the read-write set.").BoolVar(&c.lineTools)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ToolsCommand) Name() string { return c.Cmd.FullCommand() }

func (c ToolsCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Tools only need the workspace to execute, the schemas don't touch it.
	ws, err := editor.NewWorkspace(editor.WorkspaceConfig{
		Root:   c.rootCmd.DataDir,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create workspace: %w", err)
	}

	set, err := tool.NewEditorSet(tool.EditorSetConfig{
		Editor:    ws,
		Kind:      tool.Kind(c.set),
		LineTools: c.lineTools,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("could not create tool set: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd).PrintTools(set.Schemas()); err != nil {
		return fmt.Errorf("could not print tools: %w", err)
	}

	return nil
}
