// Package result defines the search-hit records returned by the
// recruiting API: the envelope, the per-hit record, and the embedded
// profile summary projection.
package result

import "github.com/recruitu/lateral/internal/domain"

// CurrentCompany is the nested current-employment sub-record.
// Pointer fields were explicit nulls or absent in the payload.
type CurrentCompany struct {
	Company     string       `json:"company"`
	Title       string       `json:"title"`
	Location    *string      `json:"location,omitempty"`
	Description *string      `json:"description,omitempty"`
	LogoURL     string       `json:"logo_url"`
	LinkedInURL *string      `json:"company_linkedin_profile_url,omitempty"`
	StartsAt    *domain.Date `json:"starts_at,omitempty"`
	EndsAt      *domain.Date `json:"ends_at,omitempty"`
}

// Undergrad is the nested undergraduate-education sub-record.
type Undergrad struct {
	School       string       `json:"school"`
	DegreeName   *string      `json:"degree_name,omitempty"`
	FieldOfStudy *string      `json:"field_of_study,omitempty"`
	LogoURL      string       `json:"logo_url"`
	LinkedInURL  *string      `json:"school_linkedin_profile_url,omitempty"`
	StartsAt     *domain.Date `json:"starts_at,omitempty"`
	EndsAt       *domain.Date `json:"ends_at,omitempty"`
}

// Document is the profile summary embedded in each search hit. This is
// the projection exposed to the conversational layer and API clients.
type Document struct {
	ID                string          `json:"id"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	FullName          string          `json:"full_name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	LinkedIn          string          `json:"linkedin"`
	Title             string          `json:"title"`
	CompanyName       string          `json:"company_name"`
	School            string          `json:"school"`
	Grade             string          `json:"grade"`
	ClubID            string          `json:"club_id"`
	Source            string          `json:"source"`
	CreatedAt         string          `json:"created_at"`
	Alumni            bool            `json:"alumni"`
	Country           string          `json:"country"`
	City              string          `json:"city"`
	PreviousCompanies string          `json:"previous_companies"`
	PreviousTitles    string          `json:"previous_titles"`
	ProfilePicURL     string          `json:"profile_pic_url"`
	Undergrad         *Undergrad      `json:"undergrad,omitempty"`
	CurrentCompany    *CurrentCompany `json:"current_company,omitempty"`
}

// Record is one search hit: an identifier unique within the upstream
// dataset plus the document projection. Immutable once merged into an
// aggregated set.
type Record struct {
	ID       string   `json:"id"`
	Document Document `json:"document"`
}

// Envelope is one page of search results as returned upstream.
type Envelope struct {
	PageNum        int      `json:"page_num"`
	NumPages       int      `json:"num_pages"`
	NumItems       int      `json:"num_items"`
	NumItemsOnPage int      `json:"num_items_on_page"`
	Results        []Record `json:"results"`
}

// Documents returns the flattened document projection of each record,
// order preserved.
func Documents(records []Record) []Document {
	docs := make([]Document, len(records))
	for i, r := range records {
		docs[i] = r.Document
	}
	return docs
}
