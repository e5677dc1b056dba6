package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/utils/env"
)

// Manager knows how to manage repository checkouts.
//
//go:generate mockery --name Manager --output gitmock --outpkg gitmock --structname MockManager --filename manager.go
type Manager interface {
	// Clone clones the repository URL into dir, dir must not exist.
	Clone(ctx context.Context, url, dir string) error
	// Checkout checks out the commit on the repository at dir.
	Checkout(ctx context.Context, dir, commit string) error
	// ResetHard discards every change of the working tree at dir.
	ResetHard(ctx context.Context, dir string) error
}

// CLIConfig is the configuration of the git CLI manager.
type CLIConfig struct {
	// Binary is the git binary, by default `git` from PATH.
	Binary string
	// Env is merged on top of the process environment of each git command.
	Env    map[string]string
	Logger log.Logger
}

func (c *CLIConfig) defaults() error {
	if c.Binary == "" {
		c.Binary = "git"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "git.CLI"})
	return nil
}

// CLI is a Manager that runs the git CLI.
type CLI struct {
	binary string
	env    []string
	logger log.Logger
}

var _ Manager = &CLI{}

// NewCLI returns a new git CLI manager.
func NewCLI(cfg CLIConfig) (*CLI, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &CLI{
		binary: cfg.Binary,
		env:    commandEnv(os.Environ(), cfg.Env),
		logger: cfg.Logger,
	}, nil
}

func (c *CLI) Clone(ctx context.Context, url, dir string) error {
	c.logger.Infof("Cloning repository %s into %s", url, dir)
	if err := c.run(ctx, "", "clone", url, dir); err != nil {
		return fmt.Errorf("could not clone repository: %w", err)
	}
	return nil
}

func (c *CLI) Checkout(ctx context.Context, dir, commit string) error {
	c.logger.Infof("Checking out commit %s", commit)
	if err := c.run(ctx, dir, "checkout", commit); err != nil {
		return fmt.Errorf("could not checkout commit: %w", err)
	}
	return nil
}

func (c *CLI) ResetHard(ctx context.Context, dir string) error {
	if err := c.run(ctx, dir, "reset", "--hard"); err != nil {
		return fmt.Errorf("could not reset working tree: %w", err)
	}
	return nil
}

// run executes a git command with dir as working directory, an empty dir uses the
// current process one.
func (c *CLI) run(ctx context.Context, dir string, args ...string) error {
	c.logger.Debugf("Executing: %s %s", c.binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = dir
	cmd.Env = c.env
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(out.String())
		if output == "" {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
		return fmt.Errorf("git %s: %w: %s", args[0], err, output)
	}

	return nil
}

// commandEnv returns the git command environment. Prompts are always disabled so
// a private repository fails instead of blocking.
func commandEnv(base []string, extra map[string]string) []string {
	merged := env.Merge(env.FromList(base), extra)
	merged["GIT_TERMINAL_PROMPT"] = "0"

	return env.ToList(merged)
}
