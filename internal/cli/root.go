// ABOUTME: Cobra command tree and shared wiring for the catalogscout binary.
// ABOUTME: Builds config, logger, metrics, and engine for the subcommands.

package cli

import (
	"fmt"
	"os"

	"github.com/jfeddern/CatalogScout/internal/config"
	"github.com/jfeddern/CatalogScout/internal/engine"
	"github.com/jfeddern/CatalogScout/internal/matcher"
	"github.com/jfeddern/CatalogScout/internal/metrics"
	"github.com/jfeddern/CatalogScout/internal/providers"
	"github.com/jfeddern/CatalogScout/internal/similarity"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagMode        string
	flagCatalogFile string
	flagScorer      string
	flagMetricsPort int
	flagDotenv      string
	flagMock        bool
)

var rootCmd = &cobra.Command{
	Use:   "catalogscout",
	Short: "Resolve software names against the Docker Hardened Images catalog",
	Long: `CatalogScout matches free-text software names (e.g. "PostgreSQL",
".NET Runtime") against the Docker Hardened Images catalog and reports
ranked candidates, FIPS/STIG compliance variants, and support lifecycle
dates.

The serve command exposes the engine as MCP tools over stdio; search and
check provide the same operations from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", config.ModeHub, "Catalog access mode: hub, local, or mock")
	rootCmd.PersistentFlags().StringVar(&flagCatalogFile, "catalog-file", "", "Path to JSON catalog file (required for local mode)")
	rootCmd.PersistentFlags().StringVar(&flagScorer, "scorer", config.ScorerWeighted, "Similarity algorithm: weighted or jaro-winkler")
	rootCmd.PersistentFlags().IntVar(&flagMetricsPort, "metrics-port", 0, "Port for the Prometheus /metrics endpoint (0 disables it)")
	rootCmd.PersistentFlags().StringVar(&flagDotenv, "env-file", ".env", "Path to a dotenv file with DOCKER_USERNAME/DOCKER_PAT")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "Use the built-in mock catalog (shorthand for --mode mock)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(searchCmd)
}

func buildConfig() (*config.Config, error) {
	cfg := config.Default()
	cfg.Mode = flagMode
	cfg.CatalogFile = flagCatalogFile
	cfg.Scorer = flagScorer
	cfg.MetricsPort = flagMetricsPort
	if flagMock {
		cfg.Mode = config.ModeMock
	}

	if err := config.LoadDotEnv(flagDotenv); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	// MCP owns stdout; diagnostics go to stderr.
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

func newScorer(cfg *config.Config) similarity.Scorer {
	if cfg.Scorer == config.ScorerJaroWinkler {
		return similarity.NewJaroWinklerScorer()
	}
	return similarity.NewWeightedScorer()
}

func newEngine(cfg *config.Config, collector *metrics.Collector, logger *logrus.Logger) (*engine.Engine, error) {
	tokens, err := providers.CreateTokenProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create token provider: %w", err)
	}

	source, err := providers.CreateCatalogSource(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog source: %w", err)
	}

	return engine.New(tokens, source, matcher.New(newScorer(cfg)), collector, logger), nil
}
