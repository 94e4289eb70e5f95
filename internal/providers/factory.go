// ABOUTME: Factory for token providers and catalog sources.
// ABOUTME: Centralizes provider instantiation based on the configured mode.

package providers

import (
	"context"
	"fmt"

	"github.com/jfeddern/CatalogScout/internal/config"
	"github.com/jfeddern/CatalogScout/internal/engine"
	"github.com/jfeddern/CatalogScout/internal/providers/hub"
	"github.com/jfeddern/CatalogScout/internal/providers/local"
	"github.com/jfeddern/CatalogScout/internal/providers/mock"
	"github.com/sirupsen/logrus"
)

// StaticToken is a TokenProvider returning a fixed string, used by sources
// that do not authenticate (local files, mock data).
type StaticToken string

// Token implements engine.TokenProvider.
func (t StaticToken) Token(ctx context.Context) (string, error) {
	return string(t), nil
}

// CreateTokenProvider creates a token provider for the configured mode.
func CreateTokenProvider(cfg *config.Config, logger *logrus.Logger) (engine.TokenProvider, error) {
	switch cfg.Mode {
	case config.ModeHub:
		return hub.NewTokenClient(cfg.AuthURL, cfg.Username, cfg.PAT, logger), nil
	case config.ModeLocal, config.ModeMock:
		return StaticToken("unauthenticated"), nil
	default:
		return nil, fmt.Errorf("unsupported mode: %s", cfg.Mode)
	}
}

// CreateCatalogSource creates a catalog source for the configured mode.
func CreateCatalogSource(cfg *config.Config, logger *logrus.Logger) (engine.CatalogSource, error) {
	switch cfg.Mode {
	case config.ModeHub:
		return hub.NewScoutSource(cfg.ScoutURL, logger), nil
	case config.ModeLocal:
		return local.NewSource(cfg.CatalogFile, logger), nil
	case config.ModeMock:
		logger.Info("Using mock catalog source")
		return mock.NewSource(logger), nil
	default:
		return nil, fmt.Errorf("unsupported mode: %s", cfg.Mode)
	}
}
