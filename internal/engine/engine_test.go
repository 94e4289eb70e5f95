// ABOUTME: Tests for the orchestration engine over fake token and catalog sources.
// ABOUTME: Covers batch search, statistics, tag listing, compliance, and support lookups.

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/jfeddern/CatalogScout/internal/catalog"
	"github.com/jfeddern/CatalogScout/internal/matcher"
	"github.com/jfeddern/CatalogScout/internal/similarity"
	"github.com/jfeddern/CatalogScout/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	return f.token, f.err
}

type fakeSource struct {
	items    []types.Item
	defs     map[string][]types.TagDefinition
	listErr  error
	lastAuth string
}

func (f *fakeSource) Name() string {
	return "fake"
}

func (f *fakeSource) ListRepositories(ctx context.Context, token string) ([]types.Item, error) {
	f.lastAuth = token
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeSource) TagDefinitions(ctx context.Context, token, repository string) ([]types.TagDefinition, error) {
	return f.defs[repository], nil
}

func testItems() []types.Item {
	return []types.Item{
		{Name: "nginx", Type: "IMAGE", TagNames: []string{"1.27", "1.27-fips"}},
		{Name: "postgres", Type: "IMAGE", TagNames: []string{"16", "16-fips", "17"}},
		{Name: "dotnet-runtime", Type: "IMAGE", TagNames: []string{"9.0"}},
		{Name: "cert-manager", Type: "HELM_CHART", TagNames: []string{"1.15"}},
	}
}

func newTestEngine(source *fakeSource) *Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return New(
		&fakeTokens{token: "test-token"},
		source,
		matcher.New(similarity.NewWeightedScorer()),
		nil,
		logger,
	)
}

func TestSearchImages(t *testing.T) {
	source := &fakeSource{items: testItems()}
	eng := newTestEngine(source)

	result, err := eng.SearchImages(context.Background(), []string{"PostgreSQL", ".NET Runtime", "nginx", "definitely-not-real"})
	require.NoError(t, err)

	assert.Equal(t, []string{"postgres"}, result.Matched["PostgreSQL"])
	assert.Equal(t, []string{"dotnet-runtime"}, result.Matched[".NET Runtime"])
	assert.Equal(t, []string{"nginx"}, result.Matched["nginx"])
	assert.Equal(t, []string{"definitely-not-real"}, result.Unmatched)

	assert.Equal(t, 4, result.Summary.TotalSearched)
	assert.Equal(t, 3, result.Summary.MatchedCount)
	assert.Equal(t, 1, result.Summary.UnmatchedCount)

	assert.Equal(t, "test-token", source.lastAuth, "source must receive the provider token")
}

func TestSearchImagesTruncatesToTopMatches(t *testing.T) {
	source := &fakeSource{items: []types.Item{
		{Name: "service-a", Type: "IMAGE"},
		{Name: "service-b", Type: "IMAGE"},
		{Name: "service-c", Type: "IMAGE"},
		{Name: "service-d", Type: "IMAGE"},
		{Name: "service-e", Type: "IMAGE"},
	}}
	eng := newTestEngine(source)

	result, err := eng.SearchImages(context.Background(), []string{"service"})
	require.NoError(t, err)
	assert.Len(t, result.Matched["service"], 3)
}

func TestSearchImagesEmptyNames(t *testing.T) {
	eng := newTestEngine(&fakeSource{items: testItems()})

	result, err := eng.SearchImages(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Unmatched)
	assert.Equal(t, 0, result.Summary.TotalSearched)
}

func TestSearchImagesTokenFailure(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	eng := New(
		&fakeTokens{err: errors.New("credentials rejected")},
		&fakeSource{},
		matcher.New(similarity.NewWeightedScorer()),
		nil,
		logger,
	)

	_, err := eng.SearchImages(context.Background(), []string{"nginx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials rejected")
}

func TestSearchImagesSourceFailure(t *testing.T) {
	source := &fakeSource{listErr: errors.New("upstream unavailable")}
	eng := newTestEngine(source)

	_, err := eng.SearchImages(context.Background(), []string{"nginx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestStatistics(t *testing.T) {
	eng := newTestEngine(&fakeSource{items: testItems()})

	stats, err := eng.Statistics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats["IMAGE"])
	assert.Equal(t, 1, stats["HELM_CHART"])
	assert.Equal(t, 4, stats.Total())
}

func TestListImages(t *testing.T) {
	eng := newTestEngine(&fakeSource{items: testItems()})

	t.Run("all images sorted", func(t *testing.T) {
		images, err := eng.ListImages(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"cert-manager", "dotnet-runtime", "nginx", "postgres"}, images)
	})

	t.Run("filtered by type", func(t *testing.T) {
		images, err := eng.ListImages(context.Background(), "HELM_CHART")
		require.NoError(t, err)
		assert.Equal(t, []string{"cert-manager"}, images)
	})

	t.Run("unknown type yields empty list", func(t *testing.T) {
		images, err := eng.ListImages(context.Background(), "NOPE")
		require.NoError(t, err)
		assert.Empty(t, images)
	})
}

func TestListTags(t *testing.T) {
	eng := newTestEngine(&fakeSource{items: testItems()})

	t.Run("known repository", func(t *testing.T) {
		tags, err := eng.ListTags(context.Background(), "postgres")
		require.NoError(t, err)
		assert.Equal(t, []string{"16", "16-fips", "17"}, tags)
	})

	t.Run("unknown repository", func(t *testing.T) {
		_, err := eng.ListTags(context.Background(), "ghost")
		var notFound *catalog.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ghost", notFound.Repository)
	})
}

func TestCompliance(t *testing.T) {
	eng := newTestEngine(&fakeSource{items: testItems()})

	report, err := eng.Compliance(context.Background(), "postgres")
	require.NoError(t, err)

	assert.True(t, report.Compliance.FIPS)
	assert.False(t, report.Compliance.STIG)
	assert.Equal(t, []string{"16-fips"}, report.FipsTags)
	assert.Empty(t, report.StigTags)
	assert.Equal(t, "FIPS: Supported, STIG: Not found", report.Summary)
}

func TestSupportInfo(t *testing.T) {
	source := &fakeSource{
		items: testItems(),
		defs: map[string][]types.TagDefinition{
			"postgres": {
				{DisplayName: "PostgreSQL 16", TagNames: []string{"16", "16-fips"}, EndOfLife: "2028-11-09", EndOfSupport: "2027-11-09"},
			},
		},
	}
	eng := newTestEngine(source)

	t.Run("tag with definition", func(t *testing.T) {
		info, err := eng.SupportInfo(context.Background(), "postgres", "16")
		require.NoError(t, err)
		assert.Equal(t, "PostgreSQL 16", info.DisplayName)
		assert.Equal(t, "2028-11-09", info.EndOfLife)
		assert.Equal(t, "2027-11-09", info.EndOfSupport)
		assert.Empty(t, info.Info)
	})

	t.Run("tag without definition", func(t *testing.T) {
		info, err := eng.SupportInfo(context.Background(), "postgres", "99")
		require.NoError(t, err)
		assert.Empty(t, info.DisplayName)
		assert.Contains(t, info.Info, `"99"`)
	})

	t.Run("repository without definitions", func(t *testing.T) {
		info, err := eng.SupportInfo(context.Background(), "nginx", "1.27")
		require.NoError(t, err)
		assert.Contains(t, info.Info, "No support information")
	})
}
