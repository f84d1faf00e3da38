package chat

import (
	"context"

	"github.com/recruitu/lateral/internal/domain/chat"
	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/usecase/search"
)

// Resolver turns conversation history into the next completion.
type Resolver interface {
	Complete(ctx context.Context, history []chat.Message) (chat.Completion, error)
}

// Searcher executes the tool calls the resolver produces.
type Searcher interface {
	Search(ctx context.Context, conversationID string, p query.Params) ([]result.Record, search.Page, error)
	NextPage(ctx context.Context, conversationID string) ([]result.Record, search.Page, error)
}

// History is the conversation message store.
type History interface {
	History(conversationID string) []chat.Message
	Replace(conversationID string, history []chat.Message)
	Discard(conversationID string)
}

// Sessions is the part of the session store the conversational layer
// touches directly: teardown when a conversation ends.
type Sessions interface {
	Discard(conversationID string)
}
