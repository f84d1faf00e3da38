// Package profile defines the full profile record fetched by identifier.
// Its schema is distinct from the search-hit projection: full history of
// education, experience, and volunteer work plus social metadata.
package profile

import "github.com/recruitu/lateral/internal/domain"

// Education is one entry of the education history.
type Education struct {
	School                   string       `json:"school"`
	DegreeName               string       `json:"degree_name"`
	FieldOfStudy             *string      `json:"field_of_study,omitempty"`
	ActivitiesAndSocieties   string       `json:"activities_and_societies"`
	Description              *string      `json:"description,omitempty"`
	LogoURL                  string       `json:"logo_url"`
	SchoolLinkedInProfileURL string       `json:"school_linkedin_profile_url"`
	StartsAt                 domain.Date  `json:"starts_at"`
	EndsAt                   *domain.Date `json:"ends_at,omitempty"`
}

// Experience is one entry of the employment history.
type Experience struct {
	Company     string       `json:"company"`
	Title       string       `json:"title"`
	Location    string       `json:"location"`
	Description *string      `json:"description,omitempty"`
	LogoURL     string       `json:"logo_url"`
	LinkedInURL *string      `json:"company_linkedin_profile_url,omitempty"`
	StartsAt    domain.Date  `json:"starts_at"`
	EndsAt      *domain.Date `json:"ends_at,omitempty"`
}

// VolunteerWork is one entry of the volunteer history.
type VolunteerWork struct {
	Company     string      `json:"company"`
	Title       string      `json:"title"`
	Cause       string      `json:"cause"`
	Description string      `json:"description"`
	LogoURL     string      `json:"logo_url"`
	LinkedInURL string      `json:"company_linkedin_profile_url"`
	StartsAt    domain.Date `json:"starts_at"`
	EndsAt      domain.Date `json:"ends_at"`
}

// Group is a social group membership.
type Group struct {
	Name          string `json:"name"`
	ProfilePicURL string `json:"profile_pic_url"`
	URL           string `json:"url"`
}

// AlsoViewed is a related-profile suggestion.
type AlsoViewed struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// Record is the full profile of one person.
type Record struct {
	FirstName        string          `json:"first_name"`
	LastName         string          `json:"last_name"`
	FullName         string          `json:"full_name"`
	Occupation       string          `json:"occupation"`
	Headline         string          `json:"headline"`
	Summary          string          `json:"summary"`
	City             string          `json:"city"`
	State            string          `json:"state"`
	Country          string          `json:"country"`
	CountryFullName  string          `json:"country_full_name"`
	LinkedIn         string          `json:"linkedin"`
	PublicIdentifier string          `json:"public_identifier"`
	ProfilePicURL    string          `json:"profile_pic_url"`
	FollowerCount    int             `json:"follower_count"`
	Connections      int             `json:"connections"`
	Education        []Education     `json:"education"`
	Experiences      []Experience    `json:"experiences"`
	VolunteerWork    []VolunteerWork `json:"volunteer_work"`
	Groups           []Group         `json:"groups"`
	AlsoViewed       []AlsoViewed    `json:"people_also_viewed"`
}

// Envelope is the profile-by-id response: each results entry maps the
// requested identifier to its record.
type Envelope struct {
	NumItems int                 `json:"num_items"`
	Results  []map[string]Record `json:"results"`
}

// Lookup finds the record for an id across the envelope's result maps.
func (e *Envelope) Lookup(id string) (Record, bool) {
	for _, m := range e.Results {
		if r, ok := m[id]; ok {
			return r, true
		}
	}
	return Record{}, false
}
