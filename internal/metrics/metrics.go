// ABOUTME: Prometheus instrumentation for catalog operations and MCP tool calls.
// ABOUTME: Exposes an optional /metrics HTTP endpoint next to the stdio transport.

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of one server instance.
// A nil Collector is valid and records nothing, so callers can run with
// metrics disabled.
type Collector struct {
	registry *prometheus.Registry

	toolRequests   *prometheus.CounterVec
	toolErrors     *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	catalogItems   *prometheus.GaugeVec
	matchedNames   prometheus.Counter
	unmatchedNames prometheus.Counter
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		toolRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogscout_tool_requests_total",
				Help: "Number of MCP tool invocations by tool name",
			},
			[]string{"tool"},
		),
		toolErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogscout_tool_errors_total",
				Help: "Number of MCP tool invocations that returned an error",
			},
			[]string{"tool"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalogscout_catalog_fetch_duration_seconds",
				Help:    "Duration of catalog snapshot fetches including auth",
				Buckets: prometheus.DefBuckets,
			},
		),
		catalogItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalogscout_catalog_items",
				Help: "Number of catalog items by item type as of the last fetch",
			},
			[]string{"type"},
		),
		matchedNames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "catalogscout_matched_names_total",
				Help: "Number of searched names that produced at least one match",
			},
		),
		unmatchedNames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "catalogscout_unmatched_names_total",
				Help: "Number of searched names that produced no match",
			},
		),
	}

	c.registry.MustRegister(
		c.toolRequests,
		c.toolErrors,
		c.fetchDuration,
		c.catalogItems,
		c.matchedNames,
		c.unmatchedNames,
	)

	return c
}

// IncTool counts one tool invocation.
func (c *Collector) IncTool(tool string) {
	if c == nil {
		return
	}
	c.toolRequests.WithLabelValues(tool).Inc()
}

// IncToolError counts one failed tool invocation.
func (c *Collector) IncToolError(tool string) {
	if c == nil {
		return
	}
	c.toolErrors.WithLabelValues(tool).Inc()
}

// ObserveFetch records a catalog fetch duration.
func (c *Collector) ObserveFetch(d time.Duration) {
	if c == nil {
		return
	}
	c.fetchDuration.Observe(d.Seconds())
}

// SetCatalogStats publishes per-type item counts from the latest snapshot.
func (c *Collector) SetCatalogStats(stats map[string]int) {
	if c == nil {
		return
	}
	c.catalogItems.Reset()
	for itemType, count := range stats {
		c.catalogItems.WithLabelValues(itemType).Set(float64(count))
	}
}

// AddSearchOutcome records batch search match/no-match counts.
func (c *Collector) AddSearchOutcome(matched, unmatched int) {
	if c == nil {
		return
	}
	c.matchedNames.Add(float64(matched))
	c.unmatchedNames.Add(float64(unmatched))
}

// Handler returns the HTTP handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
