// Package conversation keeps per-conversation message history for the
// conversational layer. Process-local, like the session store.
package conversation

import (
	"sync"

	"github.com/recruitu/lateral/internal/domain/chat"
)

// Store is an in-memory history store keyed by conversation id.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]chat.Message
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{messages: make(map[string][]chat.Message)}
}

// History returns a copy of the conversation's messages in order.
func (s *Store) History(conversationID string) []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.messages[conversationID]
	out := make([]chat.Message, len(history))
	copy(out, history)
	return out
}

// Replace overwrites the conversation's history. Callers persist only
// after the whole turn has succeeded.
func (s *Store) Replace(conversationID string, history []chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]chat.Message, len(history))
	copy(stored, history)
	s.messages[conversationID] = stored
}

// Discard drops the conversation's history.
func (s *Store) Discard(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, conversationID)
}
