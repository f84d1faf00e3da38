// Package aggregate folds search hits from one or more executor calls
// into a single ordered, deduplicated result set.
package aggregate

import "github.com/recruitu/lateral/internal/domain/search/result"

// Set is an ordered-by-first-seen, deduplicated-by-id accumulation of
// search hits. Deduplication policy is fixed: the first-encountered
// record for an id wins and later duplicates are dropped whole, never
// merged field by field. A Set lives for one conversational turn.
type Set struct {
	order []string
	byID  map[string]result.Record
}

// New creates an empty set.
func New() *Set {
	return &Set{byID: make(map[string]result.Record)}
}

// Add folds a batch into the set in order. Callers issuing several
// upstream calls must add batches in issue order, not completion order,
// to keep first-seen-wins deterministic.
func (s *Set) Add(batch []result.Record) {
	for _, r := range batch {
		if _, seen := s.byID[r.ID]; seen {
			continue
		}
		s.byID[r.ID] = r
		s.order = append(s.order, r.ID)
	}
}

// Records returns the accumulated records in first-seen order.
func (s *Set) Records() []result.Record {
	out := make([]result.Record, len(s.order))
	for i, id := range s.order {
		out[i] = s.byID[id]
	}
	return out
}

// Len returns the number of distinct records.
func (s *Set) Len() int { return len(s.order) }

// IDs returns the distinct ids in first-seen order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether an id has been seen.
func (s *Set) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}
