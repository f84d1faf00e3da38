// Package search runs one logical candidate search: normalize the raw
// parameters, fan out to the recruiting API, validate, and fold the
// batches into a single deduplicated result set.
package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/recruitu/lateral/internal/domain/groups"
	"github.com/recruitu/lateral/internal/domain/search/aggregate"
	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/repository/session"
)

// Page is the pagination bookkeeping reported back to the caller after a
// turn's calls complete.
type Page struct {
	PageNum  int
	NumPages int
	NumItems int
}

// Service orchestrates normalization, execution, and aggregation.
type Service struct {
	upstream Upstream
	sessions Sessions
	table    *groups.Table
	logger   *zap.Logger

	// maxSchoolsPerCall caps how many school values ride on a single
	// upstream request; a wider expansion is chunked across calls.
	// 0 means no chunking.
	maxSchoolsPerCall int
}

// New creates a search service.
func New(upstream Upstream, sessions Sessions, table *groups.Table, logger *zap.Logger) *Service {
	return &Service{
		upstream: upstream,
		sessions: sessions,
		table:    table,
		logger:   logger,
	}
}

// WithMaxSchoolsPerCall sets the per-request school cap.
func (s *Service) WithMaxSchoolsPerCall(n int) *Service {
	s.maxSchoolsPerCall = n
	return s
}

// Search normalizes raw parameters and executes the resulting canonical
// query. On success the conversation's session is updated; on any
// failure (including cancellation) it is left untouched.
func (s *Service) Search(
	ctx context.Context, conversationID string, p query.Params,
) ([]result.Record, Page, error) {
	q := query.Normalize(p, s.table)
	return s.run(ctx, conversationID, q)
}

// NextPage re-executes the conversation's last query on the next page.
// Fails with domain.ErrNoActiveSession when no prior query exists.
func (s *Service) NextPage(
	ctx context.Context, conversationID string,
) ([]result.Record, Page, error) {
	q, err := s.sessions.AdvancePage(conversationID)
	if err != nil {
		return nil, Page{}, err
	}
	return s.run(ctx, conversationID, q)
}

func (s *Service) run(
	ctx context.Context, conversationID string, q query.Canonical,
) ([]result.Record, Page, error) {
	calls := splitQuery(q, s.maxSchoolsPerCall)

	// Calls run concurrently; merge order is fixed by issue order, not
	// completion order, so first-seen-wins stays deterministic.
	envs := make([]result.Envelope, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, cq := range calls {
		i, cq := i, cq
		g.Go(func() error {
			env, err := s.upstream.Search(gctx, cq)
			if err != nil {
				return fmt.Errorf("execute query: %w", err)
			}
			envs[i] = env
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Page{}, err
	}

	set := aggregate.New()
	for _, env := range envs {
		set.Add(env.Results)
	}

	page := pageFrom(q, envs)

	s.logger.Debug("search completed",
		zap.Int("calls", len(calls)),
		zap.Int("distinct_results", set.Len()),
		zap.Int("page", page.PageNum),
		zap.Int("num_pages", page.NumPages),
	)

	if conversationID != "" {
		s.sessions.Put(conversationID, session.Session{
			LastQuery: q,
			PageNum:   page.PageNum,
			NumPages:  page.NumPages,
			NumItems:  page.NumItems,
		})
	}

	return set.Records(), page, nil
}

// splitQuery breaks a canonical query into per-call queries, chunking the
// school list at max values per call. Chunk order follows school order,
// which defines the merge order downstream.
func splitQuery(q query.Canonical, max int) []query.Canonical {
	schools := q.Schools()
	if max <= 0 || len(schools) <= max {
		return []query.Canonical{q}
	}

	var calls []query.Canonical
	for start := 0; start < len(schools); start += max {
		end := min(start+max, len(schools))
		calls = append(calls, q.WithSchools(schools[start:end]))
	}
	return calls
}

// pageFrom combines the envelopes of one turn into session bookkeeping.
// With a single call this mirrors the envelope; with chunked calls the
// item total is summed and the deepest page count wins.
func pageFrom(q query.Canonical, envs []result.Envelope) Page {
	page := Page{PageNum: q.Page()}
	for _, env := range envs {
		page.NumItems += env.NumItems
		if env.NumPages > page.NumPages {
			page.NumPages = env.NumPages
		}
	}
	return page
}
