// ABOUTME: FIPS and STIG compliance classification over image tag lists.
// ABOUTME: Pure substring scan; absence of markers means non-compliant, never unknown.

package compliance

import (
	"strings"

	"github.com/jfeddern/CatalogScout/internal/types"
)

const (
	fipsMarker = "-fips"
	stigMarker = "stig"
)

// Classify scans a tag list for compliance markers. It is total and
// order-invariant; an empty tag list yields {false, false}.
func Classify(tags []string) types.ComplianceResult {
	var result types.ComplianceResult
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, fipsMarker) {
			result.FIPS = true
		}
		if strings.Contains(lower, stigMarker) {
			result.STIG = true
		}
		if result.FIPS && result.STIG {
			break
		}
	}
	return result
}

// FipsTags returns the tags carrying the FIPS marker, preserving input order.
func FipsTags(tags []string) []string {
	return filterTags(tags, fipsMarker)
}

// StigTags returns the tags carrying the STIG marker, preserving input order.
func StigTags(tags []string) []string {
	return filterTags(tags, stigMarker)
}

func filterTags(tags []string, marker string) []string {
	matched := []string{}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), marker) {
			matched = append(matched, tag)
		}
	}
	return matched
}
