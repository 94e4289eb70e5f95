// ABOUTME: Approximate string scoring primitives for catalog name matching.
// ABOUTME: Implements the weighted-ratio blend of edit-distance, token-sort, and token-set comparisons.

package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// Scorer computes similarity scores in [0,100] between two strings.
// Implementations must be pure so filter logic can swap algorithms freely.
type Scorer interface {
	// Score returns the primary similarity score used for ranking.
	Score(a, b string) int
	// PartialScore returns the best score of the shorter string aligned
	// against any equal-length window of the longer one.
	PartialScore(a, b string) int
}

// WeightedScorer blends a direct edit-distance ratio with token-sort and
// token-set ratios. Token-based comparisons carry more weight when the two
// strings differ substantially in length, since the raw ratio unfairly
// penalizes length mismatches.
type WeightedScorer struct{}

// NewWeightedScorer returns the default catalog scorer.
func NewWeightedScorer() *WeightedScorer {
	return &WeightedScorer{}
}

// partialLengthRatio is the min/max length ratio below which window and
// token comparisons are admitted into the blend.
const partialLengthRatio = 0.8

// Score implements Scorer.
func (s *WeightedScorer) Score(a, b string) int {
	a, b = clean(a), clean(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	base := ratio(a, b)
	tsort := scale(ratio(sortTokens(a), sortTokens(b)), 0.95)
	tset := scale(tokenSetRatio(a, b), 0.95)

	best := maxInt(base, tsort, tset)

	la, lb := len([]rune(a)), len([]rune(b))
	shorter, longer := la, lb
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) <= partialLengthRatio {
		best = maxInt(best, scale(windowRatio(a, b), 0.9))
	}

	return best
}

// PartialScore implements Scorer. Inputs receive the same preprocessing as
// Score, so hyphenated and underscored variants align cleanly.
func (s *WeightedScorer) PartialScore(a, b string) int {
	a, b = clean(a), clean(b)
	if a == "" || b == "" {
		return 0
	}
	return windowRatio(a, b)
}

// ratio is the edit-distance-based similarity over the full strings:
// 100 * (1 - distance/maxLen), rounded. Identical strings score 100,
// disjoint strings score near 0.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist >= maxLen {
		return 0
	}
	return int(math.Round(100 * float64(maxLen-dist) / float64(maxLen)))
}

// windowRatio slides the shorter string across the longer and returns the
// best full ratio over any equal-length window.
func windowRatio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0
	}
	if len(ra) == len(rb) {
		return ratio(string(ra), string(rb))
	}

	short := string(ra)
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		window := string(rb[i : i+len(ra)])
		if r := ratio(short, window); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

// tokenSetRatio compares the common token core against each side's full
// token set, tolerating extra qualifier words on either side.
func tokenSetRatio(a, b string) int {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var common, onlyA, onlyB []string
	for tok := range setA {
		if setB[tok] {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if !setA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(common, " ")
	combinedA := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	return maxInt(ratio(core, combinedA), ratio(core, combinedB), ratio(combinedA, combinedB))
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// clean lowercases, maps non-alphanumeric runes to spaces, and collapses
// runs of whitespace so that "foo-cli" and "foo_cli" compare as "foo cli".
func clean(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func scale(score int, factor float64) int {
	return int(math.Round(float64(score) * factor))
}

func maxInt(values ...int) int {
	best := 0
	for _, v := range values {
		if v > best {
			best = v
		}
	}
	return best
}
