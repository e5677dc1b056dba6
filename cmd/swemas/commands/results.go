package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/swemas/internal/app/results"
	"github.com/slok/swemas/internal/model"
	"github.com/slok/swemas/internal/printer"
	"github.com/slok/swemas/internal/storage/sqlite"
)

type ResultsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id           string
	instanceID   string
	index        int
	statusFilter string
	format       string
}

// NewResultsCommand returns the results command.
func NewResultsCommand(rootCmd *RootCommand, app *kingpin.Application) *ResultsCommand {
	c := &ResultsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("results", "List the recorded task runs.")
	c.Cmd.Flag("id", "Show the details of a single run.").StringVar(&c.id)
	c.Cmd.Flag("instance", "Filter by instance id.").StringVar(&c.instanceID)
	c.Cmd.Flag("index", "Filter by task index.").Default("-1").IntVar(&c.index)
	c.Cmd.Flag("status", "Filter by status (passed, failed, errored).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c ResultsCommand) Name() string { return c.Cmd.FullCommand() }

func (c ResultsCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	var statusFilter *model.RunStatus
	if c.statusFilter != "" {
		status := model.RunStatus(strings.ToLower(c.statusFilter))
		switch status {
		case model.RunStatusPassed, model.RunStatusFailed, model.RunStatusErrored:
			statusFilter = &status
		default:
			return fmt.Errorf("invalid status filter: %s (must be: passed, failed, errored)", c.statusFilter)
		}
	}

	var index *int
	if c.index >= 0 {
		index = &c.index
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DatabasePath(),
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer repo.Close()

	svc, err := results.NewService(results.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	p := newPrinter(c.format, c.rootCmd)

	if c.id != "" {
		r, err := svc.Get(ctx, c.id)
		if err != nil {
			return err
		}
		if err := p.PrintRun(*r); err != nil {
			return fmt.Errorf("could not print run: %w", err)
		}
		return nil
	}

	resp, err := svc.List(ctx, results.ListRequest{
		InstanceID: c.instanceID,
		Index:      index,
		Status:     statusFilter,
	})
	if err != nil {
		return fmt.Errorf("could not list runs: %w", err)
	}

	if err := p.PrintRunList(resp.Runs); err != nil {
		return fmt.Errorf("could not print runs: %w", err)
	}
	logger.Infof("%d runs: %d passed, %d failed, %d errored", resp.Summary.Total, resp.Summary.Passed, resp.Summary.Failed, resp.Summary.Errored)

	return nil
}

func newPrinter(format string, rootCmd *RootCommand) printer.Printer {
	switch format {
	case formatJSON:
		return printer.NewJSONPrinter(rootCmd.Stdout)
	default:
		return printer.NewTablePrinter(rootCmd.Stdout)
	}
}
