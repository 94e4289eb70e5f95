// ABOUTME: The serve command: MCP stdio server plus optional metrics listener.
// ABOUTME: Handles signals and graceful shutdown of the side HTTP server.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jfeddern/CatalogScout/internal/metrics"
	"github.com/jfeddern/CatalogScout/internal/server"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		collector := metrics.NewCollector()

		eng, err := newEngine(cfg, collector, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			logger.Info("Received shutdown signal")
			cancel()
		}()

		if cfg.MetricsPort > 0 {
			startMetricsServer(ctx, cfg.MetricsPort, collector, logger)
		}

		logger.WithFields(logrus.Fields{
			"mode":   cfg.Mode,
			"scorer": cfg.Scorer,
		}).Info("Initializing CatalogScout")

		srv := server.NewServer(eng, collector, logger)
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

// startMetricsServer exposes /metrics and /health on a side listener while
// the MCP transport occupies stdio.
func startMetricsServer(ctx context.Context, port int, collector *metrics.Collector, logger *logrus.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", securityMiddleware(collector.Handler().ServeHTTP, logger))
	mux.HandleFunc("/health", securityMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok"}`)
	}, logger))

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down metrics server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	go func() {
		logger.WithField("port", port).Info("Starting metrics server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Metrics server failed")
		}
	}()
}

func securityMiddleware(next http.HandlerFunc, logger *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		logger.WithFields(logrus.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"remote_ip": r.RemoteAddr,
		}).Debug("HTTP request received")

		next(w, r)
	}
}
