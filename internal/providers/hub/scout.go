// ABOUTME: Docker Scout GraphQL catalog source for the DHI repository list.
// ABOUTME: Issues fixed queries and defers envelope validation to the catalog package.

package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jfeddern/CatalogScout/internal/catalog"
	"github.com/jfeddern/CatalogScout/internal/types"
	"github.com/sirupsen/logrus"
)

const userAgent = "catalogscout/1.0"

const repositoryListQuery = `
query dhiListRepositories {
  dhiListRepositories {
    items {
      name
      type
      tagNames
    }
  }
}
`

const tagDefinitionsQueryFmt = `
query {
  dhiRepository(repoName: %s) {
    ... on DhiImageRepositoryDetails {
      tagDefinitions {
        displayName
        tagNames
        endOfLife
        endOfSupport
      }
    }
  }
}
`

// ScoutSource fetches the DHI catalog from the Docker Scout GraphQL API.
type ScoutSource struct {
	url    string
	client *http.Client
	logger *logrus.Logger
}

// NewScoutSource creates a catalog source against the given GraphQL endpoint.
func NewScoutSource(url string, logger *logrus.Logger) *ScoutSource {
	return &ScoutSource{
		url:    url,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Name returns the catalog source name.
func (s *ScoutSource) Name() string {
	return "docker-scout"
}

// ListRepositories implements engine.CatalogSource.
func (s *ScoutSource) ListRepositories(ctx context.Context, token string) ([]types.Item, error) {
	payload, err := s.query(ctx, token, repositoryListQuery)
	if err != nil {
		return nil, err
	}

	items, err := catalog.ParseRepositoryList(payload)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"component":  "scout_source",
		"item_count": len(items),
	}).Debug("Fetched DHI repository list")

	return items, nil
}

// TagDefinitions implements engine.CatalogSource.
func (s *ScoutSource) TagDefinitions(ctx context.Context, token, repository string) ([]types.TagDefinition, error) {
	query := fmt.Sprintf(tagDefinitionsQueryFmt, strconv.Quote(repository))

	payload, err := s.query(ctx, token, query)
	if err != nil {
		return nil, err
	}

	return catalog.ParseTagDefinitions(payload)
}

type graphqlRequest struct {
	Query string `json:"query"`
}

func (s *ScoutSource) query(ctx context.Context, token, query string) ([]byte, error) {
	body, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build GraphQL request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching from API: %w", err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("error fetching from API: unexpected status %d: %s", resp.StatusCode, string(payload))
	}

	return payload, nil
}
