// ABOUTME: Runtime configuration for CatalogScout.
// ABOUTME: Merges defaults, .env file values, and environment variable overrides.

package config

import (
	"fmt"
	"os"
)

// Operation modes for catalog access.
const (
	ModeHub   = "hub"
	ModeLocal = "local"
	ModeMock  = "mock"
)

// Scorer algorithm selectors.
const (
	ScorerWeighted    = "weighted"
	ScorerJaroWinkler = "jaro-winkler"
)

// Config holds all runtime settings. Flag values are bound by the CLI layer;
// environment variables override flags to match container deployments.
type Config struct {
	Mode        string
	Username    string
	PAT         string
	CatalogFile string
	AuthURL     string
	ScoutURL    string
	Scorer      string
	MetricsPort int
	LogLevel    string
}

// Default returns a Config with built-in defaults applied.
func Default() *Config {
	return &Config{
		Mode:     ModeHub,
		AuthURL:  "https://hub.docker.com/v2/auth/token",
		ScoutURL: "https://api.scout.docker.com/v1/graphql",
		Scorer:   ScorerWeighted,
		LogLevel: "info",
	}
}

// ApplyEnv overlays environment variables (including any loaded from a
// .env file beforehand) onto the config.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DOCKER_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("DOCKER_PAT"); v != "" {
		c.PAT = v
	}
	if v := os.Getenv("CATALOG_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("CATALOG_FILE"); v != "" {
		c.CatalogFile = v
	}
	if v := os.Getenv("DOCKER_AUTH_URL"); v != "" {
		c.AuthURL = v
	}
	if v := os.Getenv("SCOUT_GRAPHQL_URL"); v != "" {
		c.ScoutURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the selected mode has the settings it needs.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHub:
		if c.Username == "" || c.PAT == "" {
			return fmt.Errorf("DOCKER_USERNAME and DOCKER_PAT must be set for hub mode")
		}
	case ModeLocal:
		if c.CatalogFile == "" {
			return fmt.Errorf("catalog file is required for local mode")
		}
	case ModeMock:
		// No external settings needed.
	default:
		return fmt.Errorf("unsupported mode: %s", c.Mode)
	}

	switch c.Scorer {
	case ScorerWeighted, ScorerJaroWinkler:
	default:
		return fmt.Errorf("unsupported scorer: %s", c.Scorer)
	}

	return nil
}
