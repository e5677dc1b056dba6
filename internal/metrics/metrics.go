package metrics

import (
	"context"
	"time"
)

// Recorder knows how to record the agent pipeline metrics.
type Recorder interface {
	// ObserveModelCall records a model invocation for an agent role.
	ObserveModelCall(ctx context.Context, role, model string, duration time.Duration, success bool)
	// AddModelTokens records the tokens used by a model invocation.
	AddModelTokens(ctx context.Context, role, model string, promptTokens, completionTokens int)
	// ObserveToolCall records a tool execution.
	ObserveToolCall(ctx context.Context, tool string, duration time.Duration, success bool)
	// ObserveAgentRun records a finished multi agent run with the number of steps executed.
	ObserveAgentRun(ctx context.Context, steps int, success bool)
	// IncTaskRun records a processed task with its final status.
	IncTaskRun(ctx context.Context, status string)
}

// Noop is a metrics recorder that doesn't record anything.
const Noop = noop(0)

var _ Recorder = Noop

type noop int

func (noop) ObserveModelCall(context.Context, string, string, time.Duration, bool) {}
func (noop) AddModelTokens(context.Context, string, string, int, int) {}
func (noop) ObserveToolCall(context.Context, string, time.Duration, bool) {}
func (noop) ObserveAgentRun(context.Context, int, bool) {}
func (noop) IncTaskRun(context.Context, string) {}
