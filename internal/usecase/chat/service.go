// Package chat drives the conversational layer: the resolver turns a
// user utterance into tool calls, the search service executes them, and
// the tool results feed back into the resolver until it produces a
// final reply.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/chat"
	"github.com/recruitu/lateral/internal/domain/search/aggregate"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/usecase/search"
)

const (
	defaultMaxToolRounds = 4

	// maxHistoryMessages bounds how much of a long conversation is
	// carried to the resolver and persisted.
	maxHistoryMessages = 40
)

// Turn is the outcome of one conversational exchange.
type Turn struct {
	ConversationID string
	Reply          string
	Records        []result.Record
	Page           search.Page
}

// Service runs conversational turns.
type Service struct {
	resolver Resolver
	searcher Searcher
	history  History
	sessions Sessions
	logger   *zap.Logger

	maxToolRounds int
}

// New creates a chat service. A nil resolver disables conversational
// turns; End still works for teardown.
func New(resolver Resolver, searcher Searcher, history History, sessions Sessions, logger *zap.Logger) *Service {
	return &Service{
		resolver:      resolver,
		searcher:      searcher,
		history:       history,
		sessions:      sessions,
		logger:        logger,
		maxToolRounds: defaultMaxToolRounds,
	}
}

// WithMaxToolRounds caps resolver rounds per turn.
func (s *Service) WithMaxToolRounds(n int) *Service {
	if n > 0 {
		s.maxToolRounds = n
	}
	return s
}

// Converse runs one turn. An empty conversationID starts a new
// conversation. History is persisted only when the whole turn
// succeeds; any resolver or execution failure leaves the conversation
// as it was before the turn.
func (s *Service) Converse(ctx context.Context, conversationID, utterance string) (Turn, error) {
	if s.resolver == nil {
		return Turn{}, domain.ErrChatDisabled
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	msgs := s.history.History(conversationID)
	msgs = append(msgs, chat.Message{Role: chat.RoleUser, Content: utterance})

	// Records from every tool call of this turn merge into one
	// deduplicated set, in call order.
	set := aggregate.New()
	var page search.Page

	for round := 0; round < s.maxToolRounds; round++ {
		completion, err := s.resolver.Complete(ctx, msgs)
		if err != nil {
			return Turn{}, err
		}

		if len(completion.ToolCalls) == 0 {
			msgs = append(msgs, chat.Message{Role: chat.RoleAssistant, Content: completion.Reply})
			s.history.Replace(conversationID, trimHistory(msgs))
			return Turn{
				ConversationID: conversationID,
				Reply:          completion.Reply,
				Records:        set.Records(),
				Page:           page,
			}, nil
		}

		msgs = append(msgs, chat.Message{
			Role:      chat.RoleAssistant,
			Content:   completion.Reply,
			ToolCalls: completion.ToolCalls,
		})

		for _, call := range completion.ToolCalls {
			records, p, err := s.dispatch(ctx, conversationID, call)
			if err != nil {
				return Turn{}, err
			}
			set.Add(records)
			page = p

			msgs = append(msgs, chat.Message{
				Role:       chat.RoleTool,
				ToolCallID: call.ID,
				Content:    encodeToolResult(records, p),
			})
		}
	}

	s.logger.Warn("tool rounds exhausted",
		zap.String("conversation_id", conversationID),
		zap.Int("max_rounds", s.maxToolRounds),
	)
	return Turn{}, fmt.Errorf("no final reply after %d tool rounds", s.maxToolRounds)
}

// End discards all state held for a conversation.
func (s *Service) End(conversationID string) {
	s.history.Discard(conversationID)
	s.sessions.Discard(conversationID)
}

func (s *Service) dispatch(ctx context.Context, conversationID string, call chat.ToolCall) ([]result.Record, search.Page, error) {
	switch call.Name {
	case chat.ToolSearch:
		return s.searcher.Search(ctx, conversationID, call.Params)
	case chat.ToolNextPage:
		return s.searcher.NextPage(ctx, conversationID)
	default:
		return nil, search.Page{}, fmt.Errorf("unknown tool %q", call.Name)
	}
}

// trimHistory keeps the newest messages within the history bound. Tool
// results left without their initiating assistant message are dropped
// so the resolver never sees an orphaned tool reply.
func trimHistory(msgs []chat.Message) []chat.Message {
	if len(msgs) <= maxHistoryMessages {
		return msgs
	}
	trimmed := msgs[len(msgs)-maxHistoryMessages:]
	for len(trimmed) > 0 && trimmed[0].Role == chat.RoleTool {
		trimmed = trimmed[1:]
	}
	return trimmed
}

type toolResult struct {
	Results  []result.Document `json:"results"`
	PageNum  int               `json:"page_num"`
	NumPages int               `json:"num_pages"`
	NumItems int               `json:"num_items"`
}

func encodeToolResult(records []result.Record, p search.Page) string {
	payload, err := json.Marshal(toolResult{
		Results:  result.Documents(records),
		PageNum:  p.PageNum,
		NumPages: p.NumPages,
		NumItems: p.NumItems,
	})
	if err != nil {
		return `{"results":[]}`
	}
	return string(payload)
}
