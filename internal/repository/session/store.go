// Package session keeps per-conversation search continuity state:
// the last canonical query issued and the last known pagination
// bookkeeping. Process-local by design; state is discarded when the
// conversation ends.
package session

import (
	"sync"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/search/query"
)

// Session is the continuity state for one conversation.
type Session struct {
	LastQuery query.Canonical
	PageNum   int
	NumPages  int
	NumItems  int
}

// Store is an in-memory session store keyed by conversation id.
// Each session is owned by a single conversation, but the map itself is
// shared across request handlers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Get returns the session for a conversation.
func (s *Store) Get(conversationID string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[conversationID]
	return sess, ok
}

// Put creates or replaces the session for a conversation. Callers update
// only after every call of a turn has succeeded.
func (s *Store) Put(conversationID string, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[conversationID] = sess
}

// Discard drops the session for a conversation.
func (s *Store) Discard(conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, conversationID)
}

// AdvancePage returns the last-used query moved to the next page, for
// re-execution. The stored session is not touched: it is updated only
// after the re-execution succeeds.
func (s *Store) AdvancePage(conversationID string) (query.Canonical, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		return query.Canonical{}, domain.ErrNoActiveSession
	}
	return sess.LastQuery.WithPage(sess.LastQuery.Page() + 1), nil
}
