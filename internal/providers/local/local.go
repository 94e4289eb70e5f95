// ABOUTME: Local file-based catalog source for development and testing purposes.
// ABOUTME: Reads catalog items from a JSON file without network dependencies.

package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jfeddern/CatalogScout/internal/types"
	"github.com/sirupsen/logrus"
)

// Source implements engine.CatalogSource over a JSON file holding an array
// of catalog items.
type Source struct {
	catalogFile string
	logger      *logrus.Logger
}

// NewSource creates a file-backed catalog source.
func NewSource(catalogFile string, logger *logrus.Logger) *Source {
	return &Source{
		catalogFile: catalogFile,
		logger:      logger,
	}
}

// Name returns the catalog source name.
func (s *Source) Name() string {
	return "local"
}

// ListRepositories reads catalog items from the configured JSON file.
func (s *Source) ListRepositories(ctx context.Context, token string) ([]types.Item, error) {
	logger := s.logger.WithField("operation", "list_repositories_local")

	data, err := os.ReadFile(s.catalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file '%s': %w", s.catalogFile, err)
	}

	var items []types.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	logger.WithField("item_count", len(items)).Info("Read catalog from file")
	return items, nil
}

// TagDefinitions returns no definitions; local catalog files carry no
// support lifecycle data.
func (s *Source) TagDefinitions(ctx context.Context, token, repository string) ([]types.TagDefinition, error) {
	return nil, nil
}
