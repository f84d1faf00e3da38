package search

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/groups"
	"github.com/recruitu/lateral/internal/domain/search/query"
	"github.com/recruitu/lateral/internal/domain/search/result"
	"github.com/recruitu/lateral/internal/repository/session"
)

// --- Mocks ---

type mockUpstream struct {
	mu      sync.Mutex
	calls   []query.Canonical
	respond func(q query.Canonical) (result.Envelope, error)
}

func (m *mockUpstream) Search(_ context.Context, q query.Canonical) (result.Envelope, error) {
	m.mu.Lock()
	m.calls = append(m.calls, q)
	m.mu.Unlock()
	return m.respond(q)
}

func envelopeWith(ids ...string) result.Envelope {
	records := make([]result.Record, len(ids))
	for i, id := range ids {
		records[i] = result.Record{ID: id, Document: result.Document{ID: id}}
	}
	return result.Envelope{
		PageNum:        1,
		NumPages:       1,
		NumItems:       len(ids),
		NumItemsOnPage: len(ids),
		Results:        records,
	}
}

func recordIDs(records []result.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func newService(up Upstream, store *session.Store) *Service {
	return New(up, store, groups.Default(), zap.NewNop())
}

// --- Tests ---

func TestSearch_MergesOverlappingCalls(t *testing.T) {
	up := &mockUpstream{respond: func(q query.Canonical) (result.Envelope, error) {
		switch q.Schools()[0] {
		case "Harvard":
			return envelopeWith("a", "b"), nil
		default:
			return envelopeWith("b", "c"), nil
		}
	}}
	store := session.NewStore()
	svc := newService(up, store).WithMaxSchoolsPerCall(1)

	records, _, err := svc.Search(context.Background(), "conv-1", query.Params{
		School: query.StringList{"Harvard", "Yale"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := recordIDs(records); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ids = %v, want [a b c]", got)
	}
	if len(up.calls) != 2 {
		t.Errorf("upstream calls = %d, want 2", len(up.calls))
	}
}

func TestSearch_NoChunkingBelowCap(t *testing.T) {
	up := &mockUpstream{respond: func(q query.Canonical) (result.Envelope, error) {
		return envelopeWith("a"), nil
	}}
	svc := newService(up, session.NewStore()).WithMaxSchoolsPerCall(10)

	if _, _, err := svc.Search(context.Background(), "c", query.Params{
		School: query.StringList{"Ivy League"},
	}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(up.calls) != 1 {
		t.Fatalf("upstream calls = %d, want 1", len(up.calls))
	}
	if got := len(up.calls[0].Schools()); got != 8 {
		t.Errorf("schools on call = %d, want 8", got)
	}
}

func TestSearch_ChunkingSplitsSchools(t *testing.T) {
	up := &mockUpstream{respond: func(q query.Canonical) (result.Envelope, error) {
		return envelopeWith(q.Schools()...), nil
	}}
	svc := newService(up, session.NewStore()).WithMaxSchoolsPerCall(3)

	records, _, err := svc.Search(context.Background(), "c", query.Params{
		School: query.StringList{"Ivy League"},
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(up.calls) != 3 {
		t.Errorf("upstream calls = %d, want 3 (8 schools / 3 per call)", len(up.calls))
	}
	// Merge order is issue order regardless of completion order, so the
	// result follows the expanded school order.
	want := []string{
		"Harvard", "Yale", "Princeton", "Columbia",
		"Brown", "Dartmouth", "Cornell", "University of Pennsylvania",
	}
	if got := recordIDs(records); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestSearch_SessionUpdatedOnSuccess(t *testing.T) {
	up := &mockUpstream{respond: func(query.Canonical) (result.Envelope, error) {
		env := envelopeWith("a", "b")
		env.NumPages = 7
		env.NumItems = 130
		return env, nil
	}}
	store := session.NewStore()
	svc := newService(up, store)

	if _, _, err := svc.Search(context.Background(), "conv-1", query.Params{}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	sess, ok := store.Get("conv-1")
	if !ok {
		t.Fatal("session must exist after a successful search")
	}
	if sess.PageNum != 1 || sess.NumPages != 7 || sess.NumItems != 130 {
		t.Errorf("session = %+v", sess)
	}
}

func TestSearch_SessionUntouchedOnFailure(t *testing.T) {
	up := &mockUpstream{respond: func(query.Canonical) (result.Envelope, error) {
		return result.Envelope{}, domain.NewUpstreamStatus(500)
	}}
	store := session.NewStore()
	svc := newService(up, store)

	if _, _, err := svc.Search(context.Background(), "conv-1", query.Params{}); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := store.Get("conv-1"); ok {
		t.Error("session must not be created on failure")
	}
}

func TestSearch_CancellationLeavesSessionUnmodified(t *testing.T) {
	store := session.NewStore()
	prior := session.Session{
		LastQuery: query.Normalize(query.Params{Page: 2}, groups.Default()),
		PageNum:   2, NumPages: 5, NumItems: 90,
	}
	store.Put("conv-1", prior)

	up := &mockUpstream{respond: func(query.Canonical) (result.Envelope, error) {
		return result.Envelope{}, context.Canceled
	}}
	svc := newService(up, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := svc.Search(ctx, "conv-1", query.Params{}); err == nil {
		t.Fatal("expected error on canceled context")
	}

	sess, _ := store.Get("conv-1")
	if !reflect.DeepEqual(sess, prior) {
		t.Errorf("session modified on cancellation: %+v", sess)
	}
}

func TestNextPage(t *testing.T) {
	up := &mockUpstream{respond: func(q query.Canonical) (result.Envelope, error) {
		env := envelopeWith("d", "e")
		env.PageNum = q.Page()
		env.NumPages = 5
		env.NumItems = 90
		return env, nil
	}}
	store := session.NewStore()
	store.Put("conv-1", session.Session{
		LastQuery: query.Normalize(query.Params{Page: 3}, groups.Default()),
		PageNum:   3, NumPages: 5, NumItems: 90,
	})
	svc := newService(up, store)

	records, page, err := svc.NextPage(context.Background(), "conv-1")
	if err != nil {
		t.Fatalf("NextPage: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d", len(records))
	}
	if page.PageNum != 4 {
		t.Errorf("page = %d, want 4", page.PageNum)
	}
	if up.calls[0].Page() != 4 {
		t.Errorf("executed page = %d, want 4", up.calls[0].Page())
	}

	sess, _ := store.Get("conv-1")
	if sess.PageNum != 4 {
		t.Errorf("session page = %d, want 4", sess.PageNum)
	}
}

func TestNextPage_NoSession(t *testing.T) {
	svc := newService(&mockUpstream{respond: func(query.Canonical) (result.Envelope, error) {
		t.Error("upstream must not be called")
		return result.Envelope{}, nil
	}}, session.NewStore())

	if _, _, err := svc.NextPage(context.Background(), "conv-1"); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSearch_AnonymousCallerSkipsSession(t *testing.T) {
	up := &mockUpstream{respond: func(query.Canonical) (result.Envelope, error) {
		return envelopeWith("a"), nil
	}}
	store := session.NewStore()
	svc := newService(up, store)

	if _, _, err := svc.Search(context.Background(), "", query.Params{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if _, err := store.AdvancePage(""); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Error("no session must be recorded without a conversation id")
	}
}
