// ABOUTME: Mock catalog source with a canned DHI-like repository list.
// ABOUTME: Enables offline runs and deterministic tests without API access.

package mock

import (
	"context"

	"github.com/jfeddern/CatalogScout/internal/types"
	"github.com/sirupsen/logrus"
)

// Source implements engine.CatalogSource with fixed catalog data resembling
// the real DHI listing.
type Source struct {
	logger *logrus.Logger
}

// NewSource creates a mock catalog source.
func NewSource(logger *logrus.Logger) *Source {
	return &Source{logger: logger}
}

// Name returns the catalog source name.
func (s *Source) Name() string {
	return "mock"
}

// ListRepositories returns the canned catalog.
func (s *Source) ListRepositories(ctx context.Context, token string) ([]types.Item, error) {
	s.logger.WithField("component", "mock_source").Debug("Serving mock catalog")

	return []types.Item{
		{Name: "nginx", Type: "IMAGE", TagNames: []string{"1.27", "1.27-fips", "1.28", "latest"}},
		{Name: "postgres", Type: "IMAGE", TagNames: []string{"16", "16-fips", "17", "17-fips"}},
		{Name: "redis", Type: "IMAGE", TagNames: []string{"7", "7-fips", "7.4"}},
		{Name: "python", Type: "IMAGE", TagNames: []string{"3.12", "3.13", "3.13-stig"}},
		{Name: "node", Type: "IMAGE", TagNames: []string{"20", "22", "22-slim"}},
		{Name: "golang", Type: "IMAGE", TagNames: []string{"1.23", "1.24"}},
		{Name: "dotnet-runtime", Type: "IMAGE", TagNames: []string{"8.0", "9.0", "9.0-fips"}},
		{Name: "dotnet-sdk", Type: "IMAGE", TagNames: []string{"8.0", "9.0"}},
		{Name: "openjdk", Type: "IMAGE", TagNames: []string{"17", "21"}},
		{Name: "busybox", Type: "IMAGE", TagNames: []string{"1.36"}},
		{Name: "aws", Type: "IMAGE", TagNames: []string{"2", "2-cli"}},
		{Name: "cert-manager", Type: "HELM_CHART", TagNames: []string{"1.15"}},
		{Name: "ingress-nginx", Type: "HELM_CHART", TagNames: []string{"4.11"}},
	}, nil
}

// TagDefinitions returns lifecycle data for the mock repositories that
// carry it.
func (s *Source) TagDefinitions(ctx context.Context, token, repository string) ([]types.TagDefinition, error) {
	defs := map[string][]types.TagDefinition{
		"postgres": {
			{DisplayName: "PostgreSQL 16", TagNames: []string{"16", "16-fips"}, EndOfLife: "2028-11-09", EndOfSupport: "2027-11-09"},
			{DisplayName: "PostgreSQL 17", TagNames: []string{"17", "17-fips"}, EndOfLife: "2029-11-08", EndOfSupport: "2028-11-08"},
		},
		"nginx": {
			{DisplayName: "nginx 1.27", TagNames: []string{"1.27", "1.27-fips"}, EndOfLife: "2026-05-01", EndOfSupport: "2025-11-01"},
		},
		"python": {
			{DisplayName: "Python 3.13", TagNames: []string{"3.13", "3.13-stig"}, EndOfLife: "2029-10-01", EndOfSupport: "2028-10-01"},
		},
	}

	return defs[repository], nil
}
