// ABOUTME: Orchestration engine wiring token provider, catalog source, and matcher.
// ABOUTME: Every operation works on a fresh catalog snapshot; nothing is cached.

package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jfeddern/CatalogScout/internal/catalog"
	"github.com/jfeddern/CatalogScout/internal/compliance"
	"github.com/jfeddern/CatalogScout/internal/matcher"
	"github.com/jfeddern/CatalogScout/internal/metrics"
	"github.com/jfeddern/CatalogScout/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// TokenProvider supplies an opaque bearer token for catalog access.
// The engine never inspects or caches the token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// CatalogSource abstracts where the raw catalog item list comes from
// (Docker Scout API, local file, or mock data).
type CatalogSource interface {
	Name() string
	ListRepositories(ctx context.Context, token string) ([]types.Item, error)
	TagDefinitions(ctx context.Context, token, repository string) ([]types.TagDefinition, error)
}

// searchConcurrency bounds parallel matching during batch searches.
const searchConcurrency = 4

// topMatches is how many ranked matches a batch search reports per name.
const topMatches = 3

// Engine exposes the top-level catalog operations.
type Engine struct {
	tokens    TokenProvider
	source    CatalogSource
	matcher   *matcher.Matcher
	collector *metrics.Collector
	logger    *logrus.Logger
}

// New creates an engine. The collector may be nil when metrics are disabled.
func New(tokens TokenProvider, source CatalogSource, m *matcher.Matcher, collector *metrics.Collector, logger *logrus.Logger) *Engine {
	return &Engine{
		tokens:    tokens,
		source:    source,
		matcher:   m,
		collector: collector,
		logger:    logger,
	}
}

// snapshot holds one catalog fetch, valid for a single operation.
type snapshot struct {
	index types.CatalogIndex
	stats types.TypeStats
	items []types.Item
}

func (e *Engine) fetchSnapshot(ctx context.Context) (*snapshot, error) {
	logger := e.logger.WithField("component", "catalog_engine")
	start := time.Now()

	token, err := e.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain catalog token: %w", err)
	}

	items, err := e.source.ListRepositories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", e.source.Name(), err)
	}

	index, stats := catalog.Extract(items)

	e.collector.ObserveFetch(time.Since(start))
	e.collector.SetCatalogStats(stats)

	logger.WithFields(logrus.Fields{
		"source":     e.source.Name(),
		"item_count": len(items),
		"duration":   time.Since(start),
	}).Debug("Catalog snapshot ready")

	return &snapshot{index: index, stats: stats, items: items}, nil
}

// SearchSummary aggregates a batch search.
type SearchSummary struct {
	TotalSearched  int `json:"total_searched"`
	MatchedCount   int `json:"matched_count"`
	UnmatchedCount int `json:"unmatched_count"`
}

// SearchResult maps each requested name to its ranked matches.
type SearchResult struct {
	Matched   map[string][]string `json:"matched"`
	Unmatched []string            `json:"unmatched"`
	Summary   SearchSummary       `json:"summary"`
}

// SearchImages resolves each free-text name against a fresh catalog
// snapshot. Matching is pure, so names are processed concurrently over the
// shared read-only index. Per-name results are truncated to the top matches.
func (e *Engine) SearchImages(ctx context.Context, names []string) (*SearchResult, error) {
	snap, err := e.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([][]string, len(names))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(searchConcurrency)
	for i, name := range names {
		g.Go(func() error {
			ranked[i] = e.matcher.FindMatches(name, snap.index)
			return nil
		})
	}
	// Matching has no error path; Wait only joins the goroutines.
	_ = g.Wait()

	result := &SearchResult{
		Matched:   make(map[string][]string),
		Unmatched: []string{},
	}
	for i, name := range names {
		matches := ranked[i]
		if len(matches) == 0 {
			result.Unmatched = append(result.Unmatched, name)
			continue
		}
		if len(matches) > topMatches {
			matches = matches[:topMatches]
		}
		result.Matched[name] = matches
	}

	result.Summary = SearchSummary{
		TotalSearched:  len(names),
		MatchedCount:   len(result.Matched),
		UnmatchedCount: len(result.Unmatched),
	}

	e.collector.AddSearchOutcome(result.Summary.MatchedCount, result.Summary.UnmatchedCount)

	e.logger.WithFields(logrus.Fields{
		"component": "catalog_engine",
		"searched":  result.Summary.TotalSearched,
		"matched":   result.Summary.MatchedCount,
		"unmatched": result.Summary.UnmatchedCount,
	}).Info("Catalog search completed")

	return result, nil
}

// Statistics returns per-type item counts for the current catalog.
func (e *Engine) Statistics(ctx context.Context) (types.TypeStats, error) {
	snap, err := e.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.stats, nil
}

// ListImages returns sorted catalog names, optionally filtered by item type.
func (e *Engine) ListImages(ctx context.Context, typeFilter string) ([]string, error) {
	snap, err := e.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	if typeFilter == "" {
		names = snap.index.Names()
	} else {
		names = []string{}
		for _, item := range snap.items {
			if item.Name != "" && item.Type == typeFilter {
				names = append(names, item.Name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListTags returns the tag list for a repository, or a NotFoundError.
func (e *Engine) ListTags(ctx context.Context, repository string) ([]string, error) {
	snap, err := e.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	tags, ok := snap.index[repository]
	if !ok {
		return nil, &catalog.NotFoundError{Repository: repository}
	}
	return tags, nil
}

// ComplianceReport augments the classification with the tags that triggered
// it and a human-readable summary line.
type ComplianceReport struct {
	Repository string                 `json:"repository"`
	Compliance types.ComplianceResult `json:"compliance"`
	FipsTags   []string               `json:"fips_tags"`
	StigTags   []string               `json:"stig_tags"`
	Summary    string                 `json:"summary"`
}

// Compliance classifies a repository's tags for FIPS and STIG variants.
func (e *Engine) Compliance(ctx context.Context, repository string) (*ComplianceReport, error) {
	tags, err := e.ListTags(ctx, repository)
	if err != nil {
		return nil, err
	}

	result := compliance.Classify(tags)

	return &ComplianceReport{
		Repository: repository,
		Compliance: result,
		FipsTags:   compliance.FipsTags(tags),
		StigTags:   compliance.StigTags(tags),
		Summary:    fmt.Sprintf("FIPS: %s, STIG: %s", supportLabel(result.FIPS), supportLabel(result.STIG)),
	}, nil
}

func supportLabel(supported bool) string {
	if supported {
		return "Supported"
	}
	return "Not found"
}

// SupportInfo looks up lifecycle data for a (repository, tag) pair. A tag
// missing from the support definitions yields an informational result, not
// an error.
func (e *Engine) SupportInfo(ctx context.Context, repository, tag string) (*types.SupportInfo, error) {
	token, err := e.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain catalog token: %w", err)
	}

	defs, err := e.source.TagDefinitions(ctx, token, repository)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tag definitions for %q: %w", repository, err)
	}

	info := &types.SupportInfo{Repository: repository, Tag: tag}

	if len(defs) == 0 {
		info.Info = "No support information found for this repository."
		return info, nil
	}

	for _, def := range defs {
		for _, defTag := range def.TagNames {
			if defTag == tag {
				info.DisplayName = def.DisplayName
				info.EndOfLife = def.EndOfLife
				info.EndOfSupport = def.EndOfSupport
				return info, nil
			}
		}
	}

	info.Info = fmt.Sprintf("Tag %q not found in support definitions.", tag)
	return info, nil
}
