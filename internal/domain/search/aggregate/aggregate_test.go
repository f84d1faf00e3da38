package aggregate

import (
	"reflect"
	"testing"

	"github.com/recruitu/lateral/internal/domain/search/result"
)

func rec(id, name string) result.Record {
	return result.Record{ID: id, Document: result.Document{ID: id, FullName: name}}
}

func ids(records []result.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestAdd_OverlappingBatches(t *testing.T) {
	s := New()
	s.Add([]result.Record{rec("a", "A"), rec("b", "B")})
	s.Add([]result.Record{rec("b", "B"), rec("c", "C")})

	if got := ids(s.Records()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ids = %v, want [a b c]", got)
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
	if got := s.IDs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("IDs = %v, want [a b c]", got)
	}
}

func TestAdd_FirstSeenWins(t *testing.T) {
	s := New()
	s.Add([]result.Record{rec("a", "first")})
	s.Add([]result.Record{rec("a", "second")})

	records := s.Records()
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}
	if records[0].Document.FullName != "first" {
		t.Errorf("duplicate must be dropped whole, kept %q", records[0].Document.FullName)
	}
}

func TestAdd_AssociativeOverBatchOrder(t *testing.T) {
	b1 := []result.Record{rec("a", "A"), rec("b", "B")}
	b2 := []result.Record{rec("b", "B2"), rec("c", "C")}
	b3 := []result.Record{rec("a", "A3"), rec("d", "D")}

	folded := New()
	folded.Add(b1)
	folded.Add(b2)
	folded.Add(b3)

	concat := New()
	var all []result.Record
	all = append(all, b1...)
	all = append(all, b2...)
	all = append(all, b3...)
	concat.Add(all)

	if !reflect.DeepEqual(folded.Records(), concat.Records()) {
		t.Errorf("batch fold %v != concat fold %v", ids(folded.Records()), ids(concat.Records()))
	}
}

func TestEmptySet(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Errorf("len = %d", s.Len())
	}
	if got := s.Records(); len(got) != 0 {
		t.Errorf("records = %v", got)
	}
	if s.Has("a") {
		t.Error("empty set must not contain a")
	}

	s.Add(nil)
	if s.Len() != 0 {
		t.Error("adding an empty batch must be a no-op")
	}
}
