// ABOUTME: Jaro-Winkler based alternative scorer backed by go-edlib.
// ABOUTME: Substitutable for the weighted scorer without touching filter logic.

package similarity

import (
	"math"

	"github.com/hbollon/go-edlib"
)

// JaroWinklerScorer scores with the Jaro-Winkler algorithm. It favors shared
// prefixes, which suits product names, but tolerates token reordering less
// than the weighted scorer.
type JaroWinklerScorer struct{}

// NewJaroWinklerScorer returns a Jaro-Winkler backed Scorer.
func NewJaroWinklerScorer() *JaroWinklerScorer {
	return &JaroWinklerScorer{}
}

// Score implements Scorer.
func (s *JaroWinklerScorer) Score(a, b string) int {
	a, b = clean(a), clean(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	return jaroWinkler(a, b)
}

// PartialScore implements Scorer using the same window alignment as the
// weighted scorer, but with Jaro-Winkler as the window comparison.
func (s *JaroWinklerScorer) PartialScore(a, b string) int {
	a, b = clean(a), clean(b)
	if a == "" || b == "" {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == len(rb) {
		return jaroWinkler(string(ra), string(rb))
	}

	short := string(ra)
	best := 0
	for i := 0; i+len(ra) <= len(rb); i++ {
		if score := jaroWinkler(short, string(rb[i:i+len(ra)])); score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

func jaroWinkler(a, b string) int {
	sim, err := edlib.StringsSimilarity(a, b, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return int(math.Round(100 * float64(sim)))
}
