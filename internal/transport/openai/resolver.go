// Package openai resolves conversational intent into search tool calls
// using an OpenAI-compatible chat-completion API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/chat"
	"github.com/recruitu/lateral/internal/metrics"
)

const systemPrompt = `You are a recruiting assistant that helps users find lateral-recruiting candidates in consulting and finance.

When the user describes who they are looking for, call ` + chat.ToolSearch + ` with the criteria you can extract. Only fill fields the user actually specified. The sector field accepts only CONSULTING or FINANCE. School and city accept either a single value or a list; you may pass group names such as "Ivy League", "Big 10", "SEC", "Public Ivies", "NESCAC", "Little Ivies", or city shorthands such as "NYC", "SF", "LA", "DC", "Bay Area", "Chicagoland", "DMV" verbatim, they are expanded automatically. When the user asks for more of the same results, call ` + chat.ToolNextPage + `.

Summarize results concisely: name, current position, and why they match. If nothing matched, say so and suggest loosening the criteria.`

// searchToolParameters mirrors the raw parameter shape accepted by the
// search tool.
const searchToolParameters = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "description": "Candidate name to match"},
    "current_company": {"type": "string", "description": "Current employer"},
    "sector": {"type": "string", "enum": ["CONSULTING", "FINANCE"], "description": "Industry sector"},
    "previous_company": {"type": "string", "description": "Previous employer"},
    "title": {"type": "string", "description": "Job title, e.g. Associate"},
    "role": {"type": "string", "description": "Function, e.g. M&A"},
    "school": {
      "anyOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}],
      "description": "School name(s) or a school group such as Ivy League"
    },
    "undergraduate_year": {"type": "string", "description": "Undergraduate graduation year"},
    "city": {
      "anyOf": [{"type": "string"}, {"type": "array", "items": {"type": "string"}}],
      "description": "City name(s) or a region such as Bay Area"
    },
    "page": {"type": "integer", "minimum": 1},
    "count": {"type": "integer", "minimum": 1}
  },
  "additionalProperties": false
}`

const nextPageParameters = `{"type": "object", "properties": {}, "additionalProperties": false}`

// Config holds the resolver provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// Resolver is a chat-completion intent resolver using the
// OpenAI-compatible API.
type Resolver struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewResolver creates an OpenAI-compatible resolver.
func NewResolver(cfg *Config) *Resolver {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Resolver{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Complete runs one resolver round over the conversation history.
// All provider failures are wrapped with domain.ErrResolverUnavailable.
func (r *Resolver) Complete(ctx context.Context, history []chat.Message) (chat.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    r.model,
		Messages: toWireMessages(history),
		Tools:    tools(),
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		metrics.ResolverRequestsTotal.WithLabelValues("error").Inc()
		return chat.Completion{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ResolverRequestsTotal.WithLabelValues("error").Inc()
		return chat.Completion{}, fmt.Errorf("empty completion response: %w", domain.ErrResolverUnavailable)
	}

	msg := resp.Choices[0].Message
	completion := chat.Completion{Reply: msg.Content}

	for _, tc := range msg.ToolCalls {
		call, err := parseToolCall(tc)
		if err != nil {
			metrics.ResolverRequestsTotal.WithLabelValues("error").Inc()
			r.logger.Warn("tool call rejected",
				zap.String("tool", tc.Function.Name),
				zap.Error(err),
			)
			return chat.Completion{}, err
		}
		completion.ToolCalls = append(completion.ToolCalls, call)
	}

	metrics.ResolverRequestsTotal.WithLabelValues("success").Inc()
	return completion, nil
}

func tools() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        chat.ToolSearch,
				Description: "Search lateral-recruiting candidates by the given criteria.",
				Parameters:  json.RawMessage(searchToolParameters),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        chat.ToolNextPage,
				Description: "Fetch the next page of the previous search.",
				Parameters:  json.RawMessage(nextPageParameters),
			},
		},
	}
}

// toWireMessages maps conversation history to the provider shape. The
// system prompt is owned here, not stored in the conversation.
func toWireMessages(history []chat.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, m := range history {
		wire := openai.ChatCompletionMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			args, err := json.Marshal(tc.Params)
			if err != nil {
				args = []byte("{}")
			}
			wire.ToolCalls = append(wire.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(args),
				},
			})
		}
		out = append(out, wire)
	}

	return out
}

func parseToolCall(tc openai.ToolCall) (chat.ToolCall, error) {
	call := chat.ToolCall{ID: tc.ID, Name: tc.Function.Name}

	switch tc.Function.Name {
	case chat.ToolSearch:
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Params); err != nil {
			return chat.ToolCall{}, fmt.Errorf("tool arguments: %w: %s", domain.ErrResolverUnavailable, err)
		}
	case chat.ToolNextPage:
		// No arguments.
	default:
		return chat.ToolCall{}, fmt.Errorf("unknown tool %q: %w", tc.Function.Name, domain.ErrResolverUnavailable)
	}

	return call, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrResolverUnavailable for correct
// status mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrResolverUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("resolver API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("resolver API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("resolver request failed: %w", wrap)
}
