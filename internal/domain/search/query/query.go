// Package query defines the raw search parameter set produced from
// conversational intent and its normalized, execution-ready form.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/recruitu/lateral/internal/domain/groups"
)

// Pagination defaults applied during normalization.
const (
	DefaultPage  = 1
	DefaultCount = 20
)

// Sector is the closed industry enum the recruiting API understands.
type Sector string

const (
	SectorConsulting Sector = "CONSULTING"
	SectorFinance    Sector = "FINANCE"
)

// IsValid reports whether the sector is one of the recognized values.
func (s Sector) IsValid() bool {
	return s == SectorConsulting || s == SectorFinance
}

// StringList decodes from either a JSON string or an array of strings.
// The tool-calling model emits both shapes for one-or-many fields.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("string or string array expected: %w", err)
	}
	*l = many
	return nil
}

// Params is the raw, independently-optional criteria set as produced by
// the resolver. Zero values mean "not specified".
type Params struct {
	Name              string     `json:"name,omitempty"`
	CurrentCompany    string     `json:"current_company,omitempty"`
	Sector            string     `json:"sector,omitempty"`
	PreviousCompany   string     `json:"previous_company,omitempty"`
	Title             string     `json:"title,omitempty"`
	Role              string     `json:"role,omitempty"`
	School            StringList `json:"school,omitempty"`
	UndergraduateYear string     `json:"undergraduate_year,omitempty"`
	City              StringList `json:"city,omitempty"`
	Page              int        `json:"page,omitempty"`
	Count             int        `json:"count,omitempty"`
}

// Canonical is Params after normalization: mnemonics expanded, the sector
// enum enforced, pagination defaulted, multi-value fields deduplicated in
// first-seen order. Always safe to hand to the query executor.
type Canonical struct {
	name            string
	currentCompany  string
	sector          Sector
	previousCompany string
	title           string
	role            string
	schools         []string
	year            string
	cities          []string
	page            int
	count           int
}

// Normalize produces a canonical query from raw parameters. It is total:
// invalid optional fields are dropped, never errored. Applying Normalize
// to the Params of its own output yields an identical query.
func Normalize(p Params, table *groups.Table) Canonical {
	c := Canonical{
		name:            p.Name,
		currentCompany:  p.CurrentCompany,
		previousCompany: p.PreviousCompany,
		title:           p.Title,
		role:            p.Role,
		year:            p.UndergraduateYear,
		page:            p.Page,
		count:           p.Count,
	}

	if s := Sector(p.Sector); s.IsValid() {
		c.sector = s
	}

	c.schools = expand(p.School, table.Schools)
	c.cities = expand(p.City, table.Cities)

	if c.page < 1 {
		c.page = DefaultPage
	}
	if c.count < 1 {
		c.count = DefaultCount
	}

	return c
}

// expand flattens a one-or-many field, splices mnemonic expansions in
// place of their tokens, drops empties, and deduplicates preserving
// first-seen order.
func expand(values StringList, lookup func(string) ([]string, bool)) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, v := range values {
		if members, ok := lookup(v); ok {
			for _, m := range members {
				add(m)
			}
			continue
		}
		add(v)
	}

	return out
}

// Name returns the candidate name criterion.
func (c *Canonical) Name() string { return c.name }

// CurrentCompany returns the current employer criterion.
func (c *Canonical) CurrentCompany() string { return c.currentCompany }

// Sector returns the sector, or "" when unspecified.
func (c *Canonical) Sector() Sector { return c.sector }

// PreviousCompany returns the prior employer criterion.
func (c *Canonical) PreviousCompany() string { return c.previousCompany }

// Title returns the title criterion.
func (c *Canonical) Title() string { return c.title }

// Role returns the function/role criterion.
func (c *Canonical) Role() string { return c.role }

// Schools returns the expanded school list.
func (c *Canonical) Schools() []string { return c.schools }

// UndergraduateYear returns the graduation-year criterion.
func (c *Canonical) UndergraduateYear() string { return c.year }

// Cities returns the expanded city list.
func (c *Canonical) Cities() []string { return c.cities }

// Page returns the page number, always >= 1.
func (c *Canonical) Page() int { return c.page }

// Count returns the page size, always >= 1.
func (c *Canonical) Count() int { return c.count }

// WithPage returns a copy of the query on the given page.
func (c Canonical) WithPage(page int) Canonical {
	if page < 1 {
		page = 1
	}
	c.page = page
	return c
}

// WithSchools returns a copy of the query restricted to the given schools.
// Used when a wide expansion is chunked across several upstream calls.
func (c Canonical) WithSchools(schools []string) Canonical {
	c.schools = schools
	return c
}

// Values serializes every present field as query-string parameters.
// Multi-value fields repeat under the same key, order preserved.
func (c *Canonical) Values() url.Values {
	v := url.Values{}
	setIf(v, "name", c.name)
	setIf(v, "current_company", c.currentCompany)
	setIf(v, "sector", string(c.sector))
	setIf(v, "previous_company", c.previousCompany)
	setIf(v, "title", c.title)
	setIf(v, "role", c.role)
	for _, s := range c.schools {
		v.Add("school", s)
	}
	setIf(v, "undergraduate_year", c.year)
	for _, city := range c.cities {
		v.Add("city", city)
	}
	v.Set("page", strconv.Itoa(c.page))
	v.Set("count", strconv.Itoa(c.count))
	return v
}

// Params converts the canonical query back to the raw parameter shape,
// e.g. for echoing the active query to clients.
func (c *Canonical) Params() Params {
	return Params{
		Name:              c.name,
		CurrentCompany:    c.currentCompany,
		Sector:            string(c.sector),
		PreviousCompany:   c.previousCompany,
		Title:             c.title,
		Role:              c.role,
		School:            StringList(c.schools),
		UndergraduateYear: c.year,
		City:              StringList(c.cities),
		Page:              c.page,
		Count:             c.count,
	}
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
