package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/metrics"
	"github.com/slok/swemas/internal/model"
)

// Tool is a capability the agents can invoke.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON schema of the tool arguments.
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (string, error)
}

// FuncTool wraps a plain function as a Tool.
type FuncTool struct {
	ToolName   string
	ToolDesc   string
	ToolParams map[string]any
	Fn         func(ctx context.Context, args map[string]any) (string, error)
}

func (f *FuncTool) Name() string { return f.ToolName }

func (f *FuncTool) Description() string { return f.ToolDesc }

func (f *FuncTool) Parameters() map[string]any { return f.ToolParams }

func (f *FuncTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	return f.Fn(ctx, args)
}

// SetConfig is the configuration of a tool set.
type SetConfig struct {
	Tools          []Tool
	MetricRecorder metrics.Recorder
	Logger         log.Logger
}

func (c *SetConfig) defaults() error {
	seen := map[string]struct{}{}
	for _, t := range c.Tools {
		if t == nil {
			return fmt.Errorf("tool can't be nil")
		}
		if _, ok := seen[t.Name()]; ok {
			return fmt.Errorf("tool %q is registered multiple times: %w", t.Name(), model.ErrAlreadyExists)
		}
		seen[t.Name()] = struct{}{}
	}

	if c.MetricRecorder == nil {
		c.MetricRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "tool.Set"})
	return nil
}

// Set is an ordered group of tools exposed to a model.
type Set struct {
	tools   []Tool
	byName  map[string]Tool
	metrics metrics.Recorder
	logger  log.Logger
}

// NewSet returns a new tool set.
func NewSet(cfg SetConfig) (*Set, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	byName := make(map[string]Tool, len(cfg.Tools))
	for _, t := range cfg.Tools {
		byName[t.Name()] = t
	}

	return &Set{
		tools:   cfg.Tools,
		byName:  byName,
		metrics: cfg.MetricRecorder,
		logger:  cfg.Logger,
	}, nil
}

// Names returns the tool names in registration order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.tools))
	for _, t := range s.tools {
		names = append(names, t.Name())
	}
	return names
}

// Tools returns the tools in registration order.
func (s *Set) Tools() []Tool {
	return append([]Tool{}, s.tools...)
}

// Schemas returns the tool schemas for the model.
func (s *Set) Schemas() []llm.ToolSchema {
	schemas := make([]llm.ToolSchema, 0, len(s.tools))
	for _, t := range s.tools {
		schemas = append(schemas, llm.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return schemas
}

// Execute runs the tool requested by the call.
func (s *Set) Execute(ctx context.Context, call llm.ToolCall) (string, error) {
	t, ok := s.byName[call.Name]
	if !ok {
		return "", fmt.Errorf("tool %q: %w", call.Name, model.ErrNotFound)
	}

	logger := s.logger.WithValues(log.Kv{"tool": call.Name, "call-id": call.ID})
	logger.Debugf("Executing tool with arguments: %v", call.Args)

	start := time.Now()
	res, err := t.Execute(ctx, call.Args)
	duration := time.Since(start)
	s.metrics.ObserveToolCall(ctx, call.Name, duration, err == nil)
	if err != nil {
		logger.Warningf("Tool failed after %s: %s", duration, err)
		return "", err
	}

	logger.Infof("Tool executed in %s", duration)

	return res, nil
}
