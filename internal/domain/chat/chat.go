// Package chat holds the conversation model shared between the
// conversational service and the language-model resolver.
package chat

import "github.com/recruitu/lateral/internal/domain/search/query"

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Tool names the resolver may call.
const (
	ToolSearch   = "search_lateral_recruits"
	ToolNextPage = "next_page"
)

// ToolCall is one search request the resolver extracted from the user's
// utterance. Params carries the raw, unnormalized parameters exactly as
// the resolver produced them.
type ToolCall struct {
	ID     string
	Name   string
	Params query.Params
}

// Message is a single conversation entry. Assistant messages may carry
// tool calls; tool messages carry the serialized result for the call
// they answer.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// Completion is one resolver round: either a final reply or a set of
// tool calls to execute.
type Completion struct {
	Reply     string
	ToolCalls []ToolCall
}
