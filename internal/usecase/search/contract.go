package search

import (
	"context"

	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/repository/session"
)

// Upstream executes one canonical query against the recruiting API.
type Upstream interface {
	Search(ctx context.Context, q query.Canonical) (result.Envelope, error)
}

// Sessions is the continuity-state contract for pagination follow-ups.
type Sessions interface {
	Get(conversationID string) (session.Session, bool)
	Put(conversationID string, s session.Session)
	AdvancePage(conversationID string) (query.Canonical, error)
}
