package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/slok/swemas/internal/llm"
	"github.com/slok/swemas/internal/log"
	"github.com/slok/swemas/internal/metrics"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// ClientConfig is the configuration for the OpenAI compatible model client.
type ClientConfig struct {
	APIKey string
	// BaseURL is optional, used for OpenAI compatible gateways (e.g. LiteLLM).
	BaseURL string
	Model   string
	// Role is used to tag logs and metrics (e.g. planner, coder).
	Role           string
	HTTPClient     *http.Client
	MetricRecorder metrics.Recorder
	Logger         log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Role == "" {
		c.Role = "default"
	}
	if c.MetricRecorder == nil {
		c.MetricRecorder = metrics.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "llm.OpenAI", "role": c.Role})
	return nil
}

// Client is a llm.Model backed by the OpenAI chat completions API.
type Client struct {
	client  *goopenai.Client
	model   string
	role    string
	metrics metrics.Recorder
	logger  log.Logger
}

// NewClient returns a new OpenAI compatible model client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	oaiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaiCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oaiCfg.HTTPClient = cfg.HTTPClient
	}

	return &Client{
		client:  goopenai.NewClientWithConfig(oaiCfg),
		model:   cfg.Model,
		role:    cfg.Role,
		metrics: cfg.MetricRecorder,
		logger:  cfg.Logger,
	}, nil
}

// Step sends the conversation to the model and returns its decision.
func (c *Client) Step(ctx context.Context, req llm.Request) (llm.Step, error) {
	oaiReq := goopenai.ChatCompletionRequest{
		Model:    c.model,
		Messages: mapMessagesToOpenAI(req.Messages),
		Tools:    mapToolsToOpenAI(req.Tools),
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, oaiReq)
	c.metrics.ObserveModelCall(ctx, c.role, c.model, time.Since(start), err == nil)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	c.metrics.AddModelTokens(ctx, c.role, c.model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	c.logger.Debugf("Model answered (finish reason: %s, prompt tokens: %d, completion tokens: %d)",
		choice.FinishReason, resp.Usage.PromptTokens, resp.Usage.CompletionTokens)

	msg := choice.Message
	if len(msg.ToolCalls) == 0 {
		return llm.FinalText{Content: msg.Content}, nil
	}

	calls := make([]llm.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		args, repaired, err := llm.ParseToolArguments(tc.Function.Arguments)
		if err != nil {
			// The tool will report the missing arguments to the model.
			c.logger.Warningf("Could not parse %q tool call arguments: %s", tc.Function.Name, err)
			args = map[string]any{}
		}
		if repaired {
			c.logger.Debugf("Repaired %q tool call arguments", tc.Function.Name)
		}

		calls = append(calls, llm.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}

	return llm.ToolRequest{Content: msg.Content, Calls: calls}, nil
}

func mapMessagesToOpenAI(msgs []llm.Message) []goopenai.ChatCompletionMessage {
	res := make([]goopenai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		msg := goopenai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}

		switch m.Role {
		case llm.RoleTool:
			msg.ToolCallID = m.ToolCallID
			msg.Name = m.Name
		case llm.RoleAssistant:
			for _, tc := range m.ToolCalls {
				args, err := json.Marshal(tc.Args)
				if err != nil || tc.Args == nil {
					args = []byte("{}")
				}
				msg.ToolCalls = append(msg.ToolCalls, goopenai.ToolCall{
					ID:   tc.ID,
					Type: goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
		}

		res = append(res, msg)
	}

	return res
}

func mapToolsToOpenAI(schemas []llm.ToolSchema) []goopenai.Tool {
	if len(schemas) == 0 {
		return nil
	}

	res := make([]goopenai.Tool, 0, len(schemas))
	for _, s := range schemas {
		params := s.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		res = append(res, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  params,
			},
		})
	}

	return res
}
