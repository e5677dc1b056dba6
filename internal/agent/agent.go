package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/metrics"
)

// ErrStepLimitExceeded is returned when a run doesn't finish within the configured steps.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// DefaultStepLimit is the maximum number of state executions of a run.
const DefaultStepLimit = 100

// StateName is the name of an orchestration state.
type StateName string

const (
	StatePlanner     StateName = "planner"
	StatePlannerTool StateName = "planner-tool"
	StateCoder       StateName = "coder"
	StateCoderTool   StateName = "coder-tool"
	StateDone        StateName = "done"
)

// Task is the unit of work of a run.
type Task struct {
	Index int
	// RepoRef is the repository path relative to the workspace root (e.g. repo_7/django).
	RepoRef          string
	ProblemStatement string
}

func (t Task) validate() error {
	if t.RepoRef == "" {
		return fmt.Errorf("repository is required")
	}
	if t.ProblemStatement == "" {
		return fmt.Errorf("problem statement is required")
	}
	return nil
}

// State is a snapshot of a run. Step returns new states, the received one is never mutated.
type State struct {
	Name    StateName
	Task    Task
	Planner Conversation
	Coder   Conversation
	// Pending are the tool calls requested on the last model step.
	Pending []llm.ToolCall
	Plan    string
	Result  string
	Steps   int
}

// Result is the outcome of a finished run.
type Result struct {
	Plan    string
	Output  string
	Steps   int
	Planner Conversation
	Coder   Conversation
}

// ToolSet is a group of tools a model can use.
type ToolSet interface {
	Schemas() []llm.ToolSchema
	Execute(ctx context.Context, call llm.ToolCall) (string, error)
}

// Runner runs the planner and coder agents on a task.
//
//go:generate mockery --name Runner --output agentmock --outpkg agentmock --structname MockRunner --filename runner.go
type Runner interface {
	Run(ctx context.Context, task Task) (*Result, error)
}

// OrchestratorConfig is the configuration of the Orchestrator.
type OrchestratorConfig struct {
	PlannerModel llm.Model
	CoderModel   llm.Model
	// ReadTools are used by the planner.
	ReadTools ToolSet
	// WriteTools are used by the coder.
	WriteTools ToolSet
	StepLimit  int
	Prompts    Prompts
	// LineTools is exposed to the prompts.
	LineTools      bool
	MetricRecorder metrics.Recorder
	Logger         log.Logger
}

func (c *OrchestratorConfig) defaults() error {
	if c.PlannerModel == nil {
		return fmt.Errorf("planner model is required")
	}
	if c.CoderModel == nil {
		c.CoderModel = c.PlannerModel
	}
	if c.ReadTools == nil {
		return fmt.Errorf("read tools are required")
	}
	if c.WriteTools == nil {
		return fmt.Errorf("write tools are required")
	}
	if c.StepLimit < 0 {
		return fmt.Errorf("step limit can't be negative")
	}
	if c.StepLimit == 0 {
		c.StepLimit = DefaultStepLimit
	}
	if c.MetricRecorder == nil {
		c.MetricRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "agent.Orchestrator"})
	return nil
}

// Orchestrator runs the planner and coder agents as a state machine.
type Orchestrator struct {
	plannerModel llm.Model
	coderModel   llm.Model
	readTools    ToolSet
	writeTools   ToolSet
	stepLimit    int
	lineTools    bool
	prompts      *promptRenderer
	metrics      metrics.Recorder
	logger       log.Logger
}

var _ Runner = &Orchestrator{}

// NewOrchestrator returns a new Orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) (*Orchestrator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	prompts, err := newPromptRenderer(cfg.Prompts)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Orchestrator{
		plannerModel: cfg.PlannerModel,
		coderModel:   cfg.CoderModel,
		readTools:    cfg.ReadTools,
		writeTools:   cfg.WriteTools,
		stepLimit:    cfg.StepLimit,
		lineTools:    cfg.LineTools,
		prompts:      prompts,
		metrics:      cfg.MetricRecorder,
		logger:       cfg.Logger,
	}, nil
}

// Start returns the initial state of a run for the task.
func (o *Orchestrator) Start(task Task) (State, error) {
	if err := task.validate(); err != nil {
		return State{}, fmt.Errorf("invalid task: %w", err)
	}

	prompt, err := o.prompts.Planner(o.promptData(task, ""))
	if err != nil {
		return State{}, err
	}

	return State{
		Name:    StatePlanner,
		Task:    task,
		Planner: NewConversation(llm.UserMessage(prompt)),
	}, nil
}

// Run executes the state machine until the coder finishes.
func (o *Orchestrator) Run(ctx context.Context, task Task) (*Result, error) {
	state, err := o.Start(task)
	if err != nil {
		return nil, err
	}

	logger := o.logger.WithValues(log.Kv{"repo": task.RepoRef})
	logger.Infof("Starting agents")

	for state.Name != StateDone {
		if err := ctx.Err(); err != nil {
			o.metrics.ObserveAgentRun(ctx, state.Steps, false)
			return nil, fmt.Errorf("run cancelled on %s state after %d steps: %w", state.Name, state.Steps, err)
		}

		state, err = o.Step(ctx, state)
		if err != nil {
			o.metrics.ObserveAgentRun(ctx, state.Steps, false)
			return nil, err
		}
	}

	o.metrics.ObserveAgentRun(ctx, state.Steps, true)
	logger.Infof("Agents finished in %d steps", state.Steps)

	return &Result{
		Plan:    state.Plan,
		Output:  state.Result,
		Steps:   state.Steps,
		Planner: state.Planner,
		Coder:   state.Coder,
	}, nil
}

// Step executes the current state and returns the next one.
func (o *Orchestrator) Step(ctx context.Context, s State) (State, error) {
	if s.Steps >= o.stepLimit {
		return s, fmt.Errorf("run didn't finish in %d steps: %w", o.stepLimit, ErrStepLimitExceeded)
	}

	next := s
	next.Steps++

	switch s.Name {
	case StatePlanner:
		return o.plannerStep(ctx, next)
	case StatePlannerTool:
		next.Planner = o.executeTools(ctx, o.readTools, s.Pending, s.Planner)
		next.Pending = nil
		next.Name = StatePlanner
		return next, nil
	case StateCoder:
		return o.coderStep(ctx, next)
	case StateCoderTool:
		next.Coder = o.executeTools(ctx, o.writeTools, s.Pending, s.Coder)
		next.Pending = nil
		next.Name = StateCoder
		return next, nil
	case StateDone:
		return s, fmt.Errorf("run already finished")
	}

	return s, fmt.Errorf("unknown state %q", s.Name)
}

func (o *Orchestrator) plannerStep(ctx context.Context, s State) (State, error) {
	o.logger.Debugf("Planner working")

	step, err := o.plannerModel.Step(ctx, llm.Request{
		Messages: s.Planner.Messages(),
		Tools:    o.readTools.Schemas(),
	})
	if err != nil {
		return s, fmt.Errorf("planner model failed: %w", err)
	}
	s.Planner = s.Planner.Append(step.Message())

	switch st := step.(type) {
	case llm.ToolRequest:
		s.Pending = st.Calls
		s.Name = StatePlannerTool
		return s, nil
	case llm.FinalText:
		prompt, err := o.prompts.Coder(o.promptData(s.Task, st.Content))
		if err != nil {
			return s, err
		}
		o.logger.Debugf("Planner finished, handing over to the coder")

		s.Plan = st.Content
		s.Coder = NewConversation(llm.UserMessage(prompt))
		s.Name = StateCoder
		return s, nil
	}

	return s, fmt.Errorf("unknown planner model step %T", step)
}

func (o *Orchestrator) coderStep(ctx context.Context, s State) (State, error) {
	o.logger.Debugf("Coder working")

	step, err := o.coderModel.Step(ctx, llm.Request{
		Messages: s.Coder.Messages(),
		Tools:    o.writeTools.Schemas(),
	})
	if err != nil {
		return s, fmt.Errorf("coder model failed: %w", err)
	}
	s.Coder = s.Coder.Append(step.Message())

	switch st := step.(type) {
	case llm.ToolRequest:
		s.Pending = st.Calls
		s.Name = StateCoderTool
		return s, nil
	case llm.FinalText:
		s.Result = st.Content
		s.Name = StateDone
		return s, nil
	}

	return s, fmt.Errorf("unknown coder model step %T", step)
}

// executeTools runs the calls in order. Tool failures are sent back to the model as results.
func (o *Orchestrator) executeTools(ctx context.Context, tools ToolSet, calls []llm.ToolCall, conv Conversation) Conversation {
	for _, call := range calls {
		res, err := tools.Execute(ctx, call)
		if err != nil {
			res = fmt.Sprintf("Error: %s", err)
		}
		conv = conv.Append(llm.ToolResultMessage(call, res))
	}
	return conv
}

func (o *Orchestrator) promptData(task Task, plan string) PromptData {
	return PromptData{
		Index:            task.Index,
		Repo:             task.RepoRef,
		ProblemStatement: task.ProblemStatement,
		Plan:             plan,
		LineTools:        o.lineTools,
	}
}
