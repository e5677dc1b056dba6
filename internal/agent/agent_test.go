package agent_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/swemas/internal/agent"
	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/llm/llmmock"
	"github.com/slok/swemas/internal/tool"
)

// recordingTools is a tool set that records the executed calls.
type recordingTools struct {
	names []string
	calls []llm.ToolCall
}

func (r *recordingTools) Schemas() []llm.ToolSchema {
	schemas := []llm.ToolSchema{}
	for _, n := range r.names {
		schemas = append(schemas, llm.ToolSchema{Name: n})
	}
	return schemas
}

func (r *recordingTools) Execute(ctx context.Context, call llm.ToolCall) (string, error) {
	r.calls = append(r.calls, call)
	if call.Name == "broken" {
		return "", fmt.Errorf("something failed")
	}
	return "result of " + call.Name, nil
}

var testTask = agent.Task{
	Index:            7,
	RepoRef:          "repo_7/django",
	ProblemStatement: "The admin crashes when saving.",
}

func newTestOrchestrator(t *testing.T, mPlanner, mCoder *llmmock.MockModel, read, write agent.ToolSet, stepLimit int) *agent.Orchestrator {
	t.Helper()
	o, err := agent.NewOrchestrator(agent.OrchestratorConfig{
		PlannerModel: mPlanner,
		CoderModel:   mCoder,
		ReadTools:    read,
		WriteTools:   write,
		StepLimit:    stepLimit,
	})
	require.NoError(t, err)
	return o
}

func TestNewOrchestrator(t *testing.T) {
	tests := map[string]struct {
		cfg    agent.OrchestratorConfig
		expErr bool
	}{
		"Missing planner model should fail.": {
			cfg: agent.OrchestratorConfig{
				ReadTools:  &recordingTools{},
				WriteTools: &recordingTools{},
			},
			expErr: true,
		},

		"Missing tools should fail.": {
			cfg: agent.OrchestratorConfig{
				PlannerModel: &llmmock.MockModel{},
			},
			expErr: true,
		},

		"Invalid prompt templates should fail.": {
			cfg: agent.OrchestratorConfig{
				PlannerModel: &llmmock.MockModel{},
				ReadTools:    &recordingTools{},
				WriteTools:   &recordingTools{},
				Prompts:      agent.Prompts{Planner: "{{ .Repo "},
			},
			expErr: true,
		},

		"Negative step limit should fail.": {
			cfg: agent.OrchestratorConfig{
				PlannerModel: &llmmock.MockModel{},
				ReadTools:    &recordingTools{},
				WriteTools:   &recordingTools{},
				StepLimit:    -1,
			},
			expErr: true,
		},

		"A single model should be used for both roles.": {
			cfg: agent.OrchestratorConfig{
				PlannerModel: &llmmock.MockModel{},
				ReadTools:    &recordingTools{},
				WriteTools:   &recordingTools{},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := agent.NewOrchestrator(test.cfg)
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestOrchestratorStart(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	o := newTestOrchestrator(t, &llmmock.MockModel{}, &llmmock.MockModel{}, &recordingTools{}, &recordingTools{}, 0)

	s, err := o.Start(testTask)
	require.NoError(err)

	assert.Equal(agent.StatePlanner, s.Name)
	assert.Equal(0, s.Steps)
	assert.Equal(0, s.Coder.Len())
	require.Equal(1, s.Planner.Len())

	seed, _ := s.Planner.Last()
	assert.Equal(llm.RoleUser, seed.Role)
	assert.Contains(seed.Content, "repo_7/django")
	assert.Contains(seed.Content, "The admin crashes when saving.")
	assert.Contains(seed.Content, "ONLY ONCE")

	_, err = o.Start(agent.Task{RepoRef: "repo_1/x"})
	assert.Error(err)
}

func TestOrchestratorRun(t *testing.T) {
	tests := map[string]struct {
		mock         func(mPlanner, mCoder *llmmock.MockModel)
		stepLimit    int
		expErr       error
		expResult    *agent.Result
		expReadCalls []string
		expWrite     []string
	}{
		"A planner without tools should hand over to the coder and finish.": {
			mock: func(mPlanner, mCoder *llmmock.MockModel) {
				mPlanner.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "1. Fix it."}, nil)
				mCoder.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "Fixed."}, nil)
			},
			expResult: &agent.Result{Plan: "1. Fix it.", Output: "Fixed.", Steps: 2},
		},

		"Tool calls should be executed in order on each role tool set.": {
			mock: func(mPlanner, mCoder *llmmock.MockModel) {
				mPlanner.On("Step", mock.Anything, mock.Anything).Once().Return(llm.ToolRequest{Calls: []llm.ToolCall{
					{ID: "1", Name: "list_files_in_repository"},
					{ID: "2", Name: "get_file_content"},
				}}, nil)
				mPlanner.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "1. Edit a.py."}, nil)
				mCoder.On("Step", mock.Anything, mock.Anything).Once().Return(llm.ToolRequest{Calls: []llm.ToolCall{
					{ID: "3", Name: "find_and_replace"},
				}}, nil)
				mCoder.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "Done."}, nil)
			},
			expResult:    &agent.Result{Plan: "1. Edit a.py.", Output: "Done.", Steps: 6},
			expReadCalls: []string{"list_files_in_repository", "get_file_content"},
			expWrite:     []string{"find_and_replace"},
		},

		"A planner that never stops calling tools should exceed the step limit.": {
			mock: func(mPlanner, mCoder *llmmock.MockModel) {
				mPlanner.On("Step", mock.Anything, mock.Anything).Return(llm.ToolRequest{Calls: []llm.ToolCall{
					{ID: "1", Name: "get_file_content"},
				}}, nil)
			},
			stepLimit:    4,
			expErr:       agent.ErrStepLimitExceeded,
			expReadCalls: []string{"get_file_content", "get_file_content"},
		},

		"A model error should stop the run.": {
			mock: func(mPlanner, mCoder *llmmock.MockModel) {
				mPlanner.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "1. Fix it."}, nil)
				mCoder.On("Step", mock.Anything, mock.Anything).Once().Return(nil, errors.New("rate limited"))
			},
			expErr: errors.New("coder model failed: rate limited"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			mPlanner := &llmmock.MockModel{}
			mCoder := &llmmock.MockModel{}
			test.mock(mPlanner, mCoder)

			read := &recordingTools{names: []string{"list_files_in_repository", "get_file_content"}}
			write := &recordingTools{names: []string{"find_and_replace"}}
			o := newTestOrchestrator(t, mPlanner, mCoder, read, write, test.stepLimit)

			res, err := o.Run(context.TODO(), testTask)

			if test.expErr != nil {
				if errors.Is(test.expErr, agent.ErrStepLimitExceeded) {
					assert.True(errors.Is(err, agent.ErrStepLimitExceeded))
				} else {
					assert.EqualError(err, test.expErr.Error())
				}
			} else if assert.NoError(err) {
				assert.Equal(test.expResult.Plan, res.Plan)
				assert.Equal(test.expResult.Output, res.Output)
				assert.Equal(test.expResult.Steps, res.Steps)
			}

			gotRead := []string{}
			for _, c := range read.calls {
				gotRead = append(gotRead, c.Name)
			}
			gotWrite := []string{}
			for _, c := range write.calls {
				gotWrite = append(gotWrite, c.Name)
			}
			if test.expReadCalls == nil {
				test.expReadCalls = []string{}
			}
			if test.expWrite == nil {
				test.expWrite = []string{}
			}
			assert.Equal(test.expReadCalls, gotRead)
			assert.Equal(test.expWrite, gotWrite)

			mPlanner.AssertExpectations(t)
			mCoder.AssertExpectations(t)
		})
	}
}

func TestOrchestratorPlanSeedsCoderOnce(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mPlanner := &llmmock.MockModel{}
	mCoder := &llmmock.MockModel{}
	mPlanner.On("Step", mock.Anything, mock.Anything).Once().Return(llm.FinalText{Content: "1. Change the save method."}, nil)
	mCoder.On("Step", mock.Anything, mock.MatchedBy(func(r llm.Request) bool {
		return len(r.Messages) == 1 &&
			r.Messages[0].Role == llm.RoleUser &&
			strings.Contains(r.Messages[0].Content, "1. Change the save method.") &&
			strings.Contains(r.Messages[0].Content, "The admin crashes when saving.") &&
			len(r.Tools) == 1 && r.Tools[0].Name == "find_and_replace"
	})).Once().Return(llm.FinalText{Content: "Changed."}, nil)

	read := &recordingTools{names: []string{"list_files_in_repository"}}
	write := &recordingTools{names: []string{"find_and_replace"}}
	o := newTestOrchestrator(t, mPlanner, mCoder, read, write, 0)

	s, err := o.Start(testTask)
	require.NoError(err)

	s, err = o.Step(context.TODO(), s)
	require.NoError(err)
	assert.Equal(agent.StateCoder, s.Name)
	assert.Equal("1. Change the save method.", s.Plan)
	require.Equal(1, s.Coder.Len())
	assert.Equal(2, s.Planner.Len())

	s, err = o.Step(context.TODO(), s)
	require.NoError(err)
	assert.Equal(agent.StateDone, s.Name)
	assert.Equal("Changed.", s.Result)
	assert.Equal(2, s.Coder.Len())

	_, err = o.Step(context.TODO(), s)
	assert.Error(err)

	mPlanner.AssertExpectations(t)
	mCoder.AssertExpectations(t)
}

func TestOrchestratorToolErrorsAreSentToTheModel(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	mPlanner := &llmmock.MockModel{}
	o := newTestOrchestrator(t, mPlanner, &llmmock.MockModel{}, &recordingTools{}, &recordingTools{}, 0)

	call := llm.ToolCall{ID: "c1", Name: "broken"}
	s, err := o.Start(testTask)
	require.NoError(err)
	s.Name = agent.StatePlannerTool
	s.Pending = []llm.ToolCall{call}

	next, err := o.Step(context.TODO(), s)
	require.NoError(err)

	assert.Equal(agent.StatePlanner, next.Name)
	assert.Empty(next.Pending)
	assert.Equal(1, s.Planner.Len())
	require.Equal(2, next.Planner.Len())
	res, _ := next.Planner.Last()
	assert.Equal(llm.ToolResultMessage(call, "Error: something failed"), res)
}

func TestOrchestratorUnknownToolIsReported(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	set, err := tool.NewSet(tool.SetConfig{})
	require.NoError(err)
	o := newTestOrchestrator(t, &llmmock.MockModel{}, &llmmock.MockModel{}, set, set, 0)

	s, err := o.Start(testTask)
	require.NoError(err)
	s.Name = agent.StatePlannerTool
	s.Pending = []llm.ToolCall{{ID: "c1", Name: "rm_rf"}}

	next, err := o.Step(context.TODO(), s)
	require.NoError(err)
	res, _ := next.Planner.Last()
	assert.Equal(`Error: tool "rm_rf": not found`, res.Content)
}

func TestOrchestratorRunCancelled(t *testing.T) {
	assert := assert.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newTestOrchestrator(t, &llmmock.MockModel{}, &llmmock.MockModel{}, &recordingTools{}, &recordingTools{}, 0)
	_, err := o.Run(ctx, testTask)
	assert.True(errors.Is(err, context.Canceled))
}
