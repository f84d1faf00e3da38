package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/recruitu/lateral/internal/cache"
	"github.com/recruitu/lateral/internal/domain"
	"github.com/recruitu/lateral/internal/domain/profile"
)

type mockFetcher struct {
	calls int
	env   profile.Envelope
	err   error
}

func (m *mockFetcher) ProfilesByID(_ context.Context, _ []string) (profile.Envelope, error) {
	m.calls++
	return m.env, m.err
}

type mockKV struct {
	data map[string][]byte
}

func newMockKV() *mockKV { return &mockKV{data: make(map[string][]byte)} }

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, cache.ErrKeyNotFound
}

func (m *mockKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func envelopeFor(id string, rec profile.Record) profile.Envelope {
	return profile.Envelope{NumItems: 1, Results: []map[string]profile.Record{{id: rec}}}
}

func TestByID_FetchesAndCaches(t *testing.T) {
	rec := profile.Record{FullName: "Jamie Park", Occupation: "Consultant"}
	fetcher := &mockFetcher{env: envelopeFor("p1", rec)}
	kv := newMockKV()
	repo := New(fetcher, kv, zap.NewNop())

	got, err := repo.ByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.FullName != "Jamie Park" {
		t.Errorf("full_name = %q", got.FullName)
	}

	if _, ok := kv.data["lateral:profile:p1"]; !ok {
		t.Fatal("record must be cached under lateral:profile:p1")
	}

	// Second lookup is served from cache.
	if _, err := repo.ByID(context.Background(), "p1"); err != nil {
		t.Fatalf("ByID (cached): %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
}

func TestByID_CorruptCacheEntryRefetches(t *testing.T) {
	rec := profile.Record{FullName: "Jamie Park"}
	fetcher := &mockFetcher{env: envelopeFor("p1", rec)}
	kv := newMockKV()
	kv.data["lateral:profile:p1"] = []byte("{not json")
	repo := New(fetcher, kv, zap.NewNop())

	got, err := repo.ByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.FullName != "Jamie Park" {
		t.Errorf("full_name = %q", got.FullName)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}

	var cached profile.Record
	if err := json.Unmarshal(kv.data["lateral:profile:p1"], &cached); err != nil {
		t.Errorf("cache entry must be rewritten with valid JSON: %v", err)
	}
}

func TestByIDs_MixedCacheAndFetch(t *testing.T) {
	fetched := profile.Record{FullName: "Dana Cole"}
	fetcher := &mockFetcher{env: envelopeFor("p2", fetched)}
	kv := newMockKV()

	cached, _ := json.Marshal(profile.Record{FullName: "Jamie Park"})
	kv.data["lateral:profile:p1"] = cached

	repo := New(fetcher, kv, zap.NewNop())

	got, err := repo.ByIDs(context.Background(), []string{"p1", "p2", "ghost"})
	if err != nil {
		t.Fatalf("ByIDs: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 (ghost skipped)", len(got))
	}
	if got[0].FullName != "Jamie Park" || got[1].FullName != "Dana Cole" {
		t.Errorf("order = [%q, %q], must follow request order", got[0].FullName, got[1].FullName)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 for the uncached remainder", fetcher.calls)
	}
	if _, ok := kv.data["lateral:profile:p2"]; !ok {
		t.Error("fetched record must be cached")
	}
}

func TestByIDs_AllCached(t *testing.T) {
	fetcher := &mockFetcher{}
	kv := newMockKV()
	cached, _ := json.Marshal(profile.Record{FullName: "Jamie Park"})
	kv.data["lateral:profile:p1"] = cached

	repo := New(fetcher, kv, zap.NewNop())
	got, err := repo.ByIDs(context.Background(), []string{"p1"})
	if err != nil {
		t.Fatalf("ByIDs: %v", err)
	}
	if len(got) != 1 || fetcher.calls != 0 {
		t.Errorf("records = %d, fetcher calls = %d; want 1 and 0", len(got), fetcher.calls)
	}
}

func TestByID_NotFound(t *testing.T) {
	fetcher := &mockFetcher{env: profile.Envelope{NumItems: 0}}
	repo := New(fetcher, nil, zap.NewNop())

	if _, err := repo.ByID(context.Background(), "ghost"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestByID_UpstreamErrorPropagates(t *testing.T) {
	fetcher := &mockFetcher{err: domain.NewUpstreamStatus(503)}
	kv := newMockKV()
	repo := New(fetcher, kv, zap.NewNop())

	_, err := repo.ByID(context.Background(), "p1")
	var statusErr *domain.UpstreamStatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 503 {
		t.Fatalf("expected UpstreamStatusError 503, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Error("nothing must be cached on failure")
	}
}

func TestByID_NilKVSkipsCache(t *testing.T) {
	rec := profile.Record{FullName: "Jamie Park"}
	fetcher := &mockFetcher{env: envelopeFor("p1", rec)}
	repo := New(fetcher, nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := repo.ByID(context.Background(), "p1"); err != nil {
			t.Fatalf("ByID: %v", err)
		}
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 without a cache", fetcher.calls)
	}
}
