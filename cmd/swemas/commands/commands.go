package commands

import (
	"context"
	"io"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/swemas/internal/conventions"
	"github.com/slok/swemas/internal/log"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug                bool
	NoLog                bool
	NoColor              bool
	LoggerType           string
	DataDir              string
	DBPath               string
	MetricsListenAddress string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
	// MetricsRegisterer is set when the metrics server is enabled.
	MetricsRegisterer prometheus.Registerer
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("data-dir", "Directory for the swemas state (database and repositories).").Default(filepath.Join(homedir.HomeDir(), conventions.DefaultDataDir)).StringVar(&c.DataDir)
	app.Flag("db-path", "Path to the SQLite database file, by default inside the data dir.").StringVar(&c.DBPath)
	app.Flag("metrics-listen-address", "If set, serves Prometheus metrics on this address (e.g. :8090).").StringVar(&c.MetricsListenAddress)

	return c
}

// DatabasePath returns the SQLite database file path.
func (r RootCommand) DatabasePath() string {
	if r.DBPath != "" {
		return r.DBPath
	}
	return filepath.Join(r.DataDir, conventions.DBFile)
}
