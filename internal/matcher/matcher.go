// ABOUTME: Catalog matching engine: query normalization plus layered candidate filtering.
// ABOUTME: Suppresses substring collisions, generic-word noise, and role-qualifier mismatches.

package matcher

import (
	"sort"
	"strings"

	"github.com/jfeddern/CatalogScout/internal/similarity"
	"github.com/jfeddern/CatalogScout/internal/types"
)

// aliases maps literal substrings to canonical forms. Substitution is not
// word-boundary-aware; a substring hit is sufficient.
var aliases = map[string]string{
	".net": "dotnet",
}

// stopWords are generic role qualifiers that cause false positives when they
// are the only overlap between query and catalog name.
var stopWords = map[string]struct{}{
	"runtime":    {},
	"sdk":        {},
	"cli":        {},
	"agent":      {},
	"operator":   {},
	"server":     {},
	"client":     {},
	"driver":     {},
	"plugin":     {},
	"controller": {},
}

// enforcedKeywords must appear in the candidate name or its tag text when
// the query explicitly asks for that flavor.
var enforcedKeywords = []string{"cli", "sdk"}

const (
	// candidateLimit bounds the scoring pre-filter to a top-N selection.
	candidateLimit = 5
	// scoreFloor is the hard minimum score for any reported match.
	scoreFloor = 85
	// coreScoreFloor is the minimum partial score for the core-name
	// containment check.
	coreScoreFloor = 80
)

// NormalizedQuery is the output of query normalization.
type NormalizedQuery struct {
	// Query is the lowercased, alias-substituted query string.
	Query string
	// Parts are the whitespace tokens of Query, in order.
	Parts []string
	// CoreName is Query with stop-word tokens removed, falling back to the
	// full query when removal would leave nothing.
	CoreName string
}

// Normalize lowercases the raw query, applies alias substitution, tokenizes
// on whitespace, and derives the stop-word-stripped core name. Empty input
// yields empty outputs; there are no error conditions.
func Normalize(raw string) NormalizedQuery {
	query := strings.ToLower(raw)
	for alias, canonical := range aliases {
		if strings.Contains(query, alias) {
			query = strings.ReplaceAll(query, alias, canonical)
		}
	}

	parts := strings.Fields(query)

	var coreParts []string
	for _, part := range parts {
		if _, stop := stopWords[part]; !stop {
			coreParts = append(coreParts, part)
		}
	}

	coreName := query
	if len(coreParts) > 0 {
		coreName = strings.Join(coreParts, " ")
	}
	if len(parts) == 0 {
		coreName = ""
	}

	return NormalizedQuery{
		Query:    query,
		Parts:    parts,
		CoreName: coreName,
	}
}

// Matcher filters and ranks catalog names against free-text queries.
// It is stateless and safe for concurrent use over read-only catalogs.
type Matcher struct {
	scorer similarity.Scorer
}

// New creates a Matcher driven by the given scorer.
func New(scorer similarity.Scorer) *Matcher {
	return &Matcher{scorer: scorer}
}

// FindMatches returns catalog names matching the query, best match first.
// The full ranked survivor list is returned; callers truncate as needed.
func (m *Matcher) FindMatches(query string, catalog types.CatalogIndex) []string {
	normalized := Normalize(query)

	candidates := m.topCandidates(normalized.Query, catalog.Names())

	var survivors []types.MatchCandidate
	for _, candidate := range candidates {
		if candidate.Score < scoreFloor {
			continue
		}

		nameClean := cleanName(candidate.Name)

		// Core-name containment: a generic-word overlap alone must not
		// carry a match when the product-specific term is absent.
		if len(normalized.CoreName) > 2 && !strings.Contains(nameClean, normalized.CoreName) {
			if m.scorer.PartialScore(normalized.CoreName, nameClean) < coreScoreFloor {
				continue
			}
		}

		if !keywordsSatisfied(normalized.Parts, nameClean, catalog[candidate.Name]) {
			continue
		}

		survivors = append(survivors, candidate)
	}

	// Candidates arrive score-sorted already; re-sorting keeps the
	// contract explicit and stable on ties.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Score > survivors[j].Score
	})

	names := make([]string, 0, len(survivors))
	for _, s := range survivors {
		names = append(names, s.Name)
	}
	return names
}

// topCandidates scores every catalog name and retains the best candidates,
// preserving scorer input order as the tie-break.
func (m *Matcher) topCandidates(query string, names []string) []types.MatchCandidate {
	sort.Strings(names)

	scored := make([]types.MatchCandidate, 0, len(names))
	for _, name := range names {
		scored = append(scored, types.MatchCandidate{
			Name:  name,
			Score: m.scorer.Score(query, name),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > candidateLimit {
		scored = scored[:candidateLimit]
	}
	return scored
}

// keywordsSatisfied enforces that flavor keywords present in the query also
// appear in the candidate name, or failing that, anywhere in its tag text.
func keywordsSatisfied(queryParts []string, nameClean string, tags []string) bool {
	var tagText string
	tagTextBuilt := false

	for _, keyword := range enforcedKeywords {
		if !containsToken(queryParts, keyword) {
			continue
		}
		if strings.Contains(nameClean, keyword) {
			continue
		}
		if !tagTextBuilt {
			tagText = strings.ToLower(strings.Join(tags, " "))
			tagTextBuilt = true
		}
		if !strings.Contains(tagText, keyword) {
			return false
		}
	}
	return true
}

func containsToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}

// cleanName prepares a catalog name for comparison: separator runes become
// spaces and the result is lowercased.
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(name)
}
