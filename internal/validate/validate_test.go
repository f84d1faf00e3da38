package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/recruitu/lateral/internal/domain"
)

func validDocument(id string) map[string]any {
	return map[string]any{
		"id":                 id,
		"first_name":         "Ada",
		"last_name":          "Park",
		"full_name":          "Ada Park",
		"email":              "ada@example.com",
		"phone":              "555-0100",
		"linkedin":           "https://linkedin.com/in/ada",
		"title":              "Associate",
		"company_name":       "McKinsey",
		"school":             "Harvard",
		"grade":              "",
		"club_id":            "club-1",
		"source":             "import",
		"created_at":         "2024-01-02T00:00:00Z",
		"alumni":             false,
		"country":            "US",
		"city":               "New York",
		"previous_companies": "Bain",
		"previous_titles":    "Analyst",
		"profile_pic_url":    "https://img.example.com/ada.jpg",
		"current_company": map[string]any{
			"company":  "McKinsey",
			"title":    "Associate",
			"logo_url": "https://img.example.com/mck.png",
		},
	}
}

func searchEnvelope(docs ...map[string]any) []byte {
	results := make([]map[string]any, len(docs))
	for i, d := range docs {
		results[i] = map[string]any{"id": d["id"], "document": d}
	}
	raw, err := json.Marshal(map[string]any{
		"page_num":          1,
		"num_pages":         1,
		"num_items":         len(docs),
		"num_items_on_page": len(docs),
		"results":           results,
	})
	if err != nil {
		panic(err)
	}
	return raw
}

func TestSearchEnvelope_Valid(t *testing.T) {
	env, err := SearchEnvelope(searchEnvelope(validDocument("p1"), validDocument("p2")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(env.Results))
	}
	if env.Results[0].Document.FullName != "Ada Park" {
		t.Errorf("full_name = %q", env.Results[0].Document.FullName)
	}
	if env.Results[0].Document.CurrentCompany == nil {
		t.Error("current_company should be decoded")
	}
	if env.Results[0].Document.Undergrad != nil {
		t.Error("absent undergrad should decode to nil")
	}
}

func TestSearchEnvelope_NullNormalizesToAbsent(t *testing.T) {
	doc := validDocument("p1")
	doc["current_company"] = nil
	doc["undergrad"] = nil
	doc["phone"] = nil

	env, err := SearchEnvelope(searchEnvelope(doc))
	if err != nil {
		t.Fatalf("explicit nulls must be accepted: %v", err)
	}
	d := env.Results[0].Document
	if d.CurrentCompany != nil {
		t.Error("null current_company should be nil")
	}
	if d.Undergrad != nil {
		t.Error("null undergrad should be nil")
	}
	if d.Phone != "" {
		t.Errorf("null phone should be empty, got %q", d.Phone)
	}
}

func TestSearchEnvelope_MissingFieldRejected(t *testing.T) {
	doc := validDocument("p1")
	delete(doc, "email")

	_, err := SearchEnvelope(searchEnvelope(doc))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	var pe *domain.PayloadError
	if !errors.As(err, &pe) || pe.Detail == "" {
		t.Errorf("payload error must carry the violation, got %v", err)
	}
}

func TestSearchEnvelope_WrongTypeRejected(t *testing.T) {
	doc := validDocument("p1")
	doc["alumni"] = "yes"

	if _, err := SearchEnvelope(searchEnvelope(doc)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestSearchEnvelope_OneBadRecordFailsWhole(t *testing.T) {
	good := validDocument("p1")
	bad := validDocument("p2")
	delete(bad, "school")

	if _, err := SearchEnvelope(searchEnvelope(good, bad)); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected whole-envelope rejection, got %v", err)
	}
}

func TestSearchEnvelope_UnknownFieldsIgnored(t *testing.T) {
	doc := validDocument("p1")
	doc["experimental_score"] = 0.93

	if _, err := SearchEnvelope(searchEnvelope(doc)); err != nil {
		t.Fatalf("unknown fields must be ignored: %v", err)
	}
}

func TestSearchEnvelope_CountMismatchRejected(t *testing.T) {
	raw := searchEnvelope(validDocument("p1"))
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	m["num_items_on_page"] = 2
	raw, _ = json.Marshal(m)

	_, err := SearchEnvelope(raw)
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("count mismatch must be rejected, got %v", err)
	}
}

func TestSearchEnvelope_PageOutOfRange(t *testing.T) {
	raw := searchEnvelope(validDocument("p1"))
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	m["page_num"] = 5
	m["num_pages"] = 2
	raw, _ = json.Marshal(m)

	if _, err := SearchEnvelope(raw); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("page out of range must be rejected, got %v", err)
	}
}

func TestSearchEnvelope_EmptyPage(t *testing.T) {
	env, err := SearchEnvelope([]byte(
		`{"page_num":1,"num_pages":0,"num_items":0,"num_items_on_page":0,"results":[]}`,
	))
	if err != nil {
		t.Fatalf("empty result page is valid: %v", err)
	}
	if len(env.Results) != 0 {
		t.Errorf("results = %v", env.Results)
	}
}

func TestSearchEnvelope_NotJSON(t *testing.T) {
	if _, err := SearchEnvelope([]byte("<html>oops</html>")); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestProfileEnvelope_Valid(t *testing.T) {
	raw := []byte(fmt.Sprintf(`{
		"num_items": 1,
		"results": [{"u1": {
			"first_name": "Ada", "last_name": "Park", "full_name": "Ada Park",
			"occupation": "Associate at McKinsey", "headline": "Consultant",
			"summary": "", "city": "New York", "state": "NY",
			"country": "US", "country_full_name": "United States",
			"linkedin": "https://linkedin.com/in/ada",
			"public_identifier": "ada-park", "profile_pic_url": "%s",
			"follower_count": 120, "connections": 500,
			"education": [{
				"school": "Harvard", "degree_name": "BA",
				"field_of_study": "Economics", "activities_and_societies": "",
				"description": null, "logo_url": "",
				"school_linkedin_profile_url": "",
				"starts_at": {"year": 2018, "month": 9, "day": 1},
				"ends_at": {"year": 2022, "month": 5, "day": 20}
			}],
			"experiences": [], "volunteer_work": [], "groups": [],
			"people_also_viewed": []
		}}]
	}`, "https://img.example.com/ada.jpg"))

	env, err := ProfileEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, ok := env.Lookup("u1")
	if !ok {
		t.Fatal("expected record for u1")
	}
	if rec.FullName != "Ada Park" || len(rec.Education) != 1 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Education[0].StartsAt.Year != 2018 {
		t.Errorf("starts_at = %+v", rec.Education[0].StartsAt)
	}

	if _, ok := env.Lookup("missing"); ok {
		t.Error("Lookup must miss for unknown ids")
	}
}

func TestProfileEnvelope_MissingFieldRejected(t *testing.T) {
	raw := []byte(`{"num_items": 1, "results": [{"u1": {"first_name": "Ada"}}]}`)
	if _, err := ProfileEnvelope(raw); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}
