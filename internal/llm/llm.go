package llm

import (
	"context"
)

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a model request to invoke a named tool with arguments.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
	// ToolCalls are set on assistant messages that requested tools.
	ToolCalls []ToolCall
	// ToolCallID and Name are set on tool result messages.
	ToolCallID string
	Name       string
}

// UserMessage returns a human authored message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// ToolResultMessage returns the message with the result of a tool call.
func ToolResultMessage(call ToolCall, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		Name:       call.Name,
	}
}

// ToolSchema describes a tool for the model.
type ToolSchema struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the tool arguments.
	Parameters map[string]any
}

// Request is the input of a model step.
type Request struct {
	Messages []Message
	Tools    []ToolSchema
}

// Step is the result of a model invocation, it's one of ToolRequest or FinalText.
type Step interface {
	// Message returns the assistant message that represents the step in a conversation.
	Message() Message
	isStep()
}

// ToolRequest is a step where the model asks for one or more tool calls.
type ToolRequest struct {
	// Content is the optional text sent along the calls.
	Content string
	Calls   []ToolCall
}

func (t ToolRequest) Message() Message {
	return Message{Role: RoleAssistant, Content: t.Content, ToolCalls: t.Calls}
}

func (ToolRequest) isStep() {}

// FinalText is a step where the model answered without requesting tools.
type FinalText struct {
	Content string
}

func (f FinalText) Message() Message {
	return Message{Role: RoleAssistant, Content: f.Content}
}

func (FinalText) isStep() {}

// Model is a language model that can request tool calls.
//
//go:generate mockery --name Model --output llmmock --outpkg llmmock --structname MockModel --filename model.go
type Model interface {
	Step(ctx context.Context, req Request) (Step, error)
}
