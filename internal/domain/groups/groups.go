// Package groups holds the static mnemonic expansion tables: school
// consortia and city abbreviations that stand for sets of literal values.
package groups

// Table maps group mnemonics to their member values. Lookup is
// case-sensitive and exact: an unrecognized token is the caller's signal
// to treat it as a literal. The table is immutable after construction.
type Table struct {
	schools map[string][]string
	cities  map[string][]string
}

// Default returns the built-in expansion table.
func Default() *Table {
	return &Table{
		schools: map[string][]string{
			"Ivy League": {
				"Harvard", "Yale", "Princeton", "Columbia",
				"Brown", "Dartmouth", "Cornell", "University of Pennsylvania",
			},
			"Big 10": {
				"Ohio State", "Michigan", "Penn State", "Michigan State",
				"Wisconsin", "Iowa", "Minnesota", "Indiana", "Purdue",
				"Illinois", "Northwestern", "Nebraska", "Rutgers",
				"Maryland", "UCLA", "USC",
			},
			"SEC": {
				"Alabama", "Arkansas", "Auburn", "Florida", "Georgia",
				"Kentucky", "LSU", "Mississippi", "Mississippi State",
				"Missouri", "South Carolina", "Tennessee", "Texas",
				"Texas A&M", "Vanderbilt",
			},
			"Public Ivies": {
				"UC Berkeley", "UCLA", "University of Michigan",
				"University of Virginia", "University of North Carolina",
				"College of William & Mary", "University of Texas",
				"University of Wisconsin", "University of Washington",
			},
			"NESCAC": {
				"Amherst", "Bates", "Bowdoin", "Colby", "Connecticut College",
				"Hamilton", "Middlebury", "Trinity", "Tufts", "Wesleyan",
				"Williams",
			},
			"Little Ivies": {
				"Amherst", "Bowdoin", "Colby", "Hamilton", "Haverford",
				"Swarthmore", "Trinity", "Tufts", "Wesleyan", "Williams",
			},
		},
		cities: map[string][]string{
			"NYC":         {"New York"},
			"SF":          {"San Francisco"},
			"LA":          {"Los Angeles"},
			"DC":          {"Washington"},
			"Bay Area":    {"San Francisco", "Oakland", "San Jose", "Palo Alto"},
			"Chicagoland": {"Chicago"},
			"DMV":         {"Washington", "Arlington", "Bethesda"},
		},
	}
}

// Schools expands a school consortium mnemonic. The second return value
// is false for unrecognized tokens.
func (t *Table) Schools(token string) ([]string, bool) {
	return lookup(t.schools, token)
}

// Cities expands a city abbreviation or region mnemonic.
func (t *Table) Cities(token string) ([]string, bool) {
	return lookup(t.cities, token)
}

func lookup(m map[string][]string, token string) ([]string, bool) {
	values, ok := m[token]
	if !ok {
		return nil, false
	}
	out := make([]string, len(values))
	copy(out, values)
	return out, true
}
