// ABOUTME: Common types shared across the CatalogScout system.
// ABOUTME: Defines data structures for catalog items, matches, compliance, and support lifecycle.

package types

// Item represents a single raw entry of the DHI catalog as delivered by the
// catalog source. Name may be empty; such items carry no information and are
// skipped during extraction.
type Item struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	TagNames []string `json:"tagNames"`
}

// TagDefinition groups tags that share a support lifecycle, as returned by
// the dhiRepository query.
type TagDefinition struct {
	DisplayName  string   `json:"displayName"`
	TagNames     []string `json:"tagNames"`
	EndOfLife    string   `json:"endOfLife"`
	EndOfSupport string   `json:"endOfSupport"`
}

// CatalogIndex maps a canonical image name to its ordered tag list.
// Built fresh per top-level operation and treated as read-only afterwards.
type CatalogIndex map[string][]string

// Names returns the catalog keys in unspecified order.
func (c CatalogIndex) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	return names
}

// TypeStats maps an item-type label to its occurrence count.
type TypeStats map[string]int

// Total returns the sum of all type counts, which equals the number of
// catalog items that carried a non-empty name.
func (s TypeStats) Total() int {
	total := 0
	for _, count := range s {
		total += count
	}
	return total
}

// MatchCandidate pairs a catalog name with its similarity score in [0,100].
type MatchCandidate struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ComplianceResult reports whether a repository carries FIPS or STIG
// hardened tag variants. Absence of markers is false, never unknown.
type ComplianceResult struct {
	FIPS bool `json:"fips"`
	STIG bool `json:"stig"`
}

// SupportInfo carries lifecycle information for a (repository, tag) pair.
// Info is set instead of the lifecycle fields when no definition matched.
type SupportInfo struct {
	Repository   string `json:"repository"`
	Tag          string `json:"tag"`
	DisplayName  string `json:"display_name,omitempty"`
	EndOfLife    string `json:"end_of_life,omitempty"`
	EndOfSupport string `json:"end_of_support,omitempty"`
	Info         string `json:"info,omitempty"`
}
