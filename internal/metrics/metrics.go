// Package metrics defines the Prometheus collectors exposed by the HTTP query surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the engine reports, registered against its own
// registry rather than the global DefaultRegisterer — each Engine/httpapi.API pairing owns
// one Metrics instance, and tests can construct several in the same process without tripping
// a "duplicate metrics collector registration" panic.
type Metrics struct {
	registry *prometheus.Registry

	QueriesTotal     *prometheus.CounterVec
	QueryDuration    *prometheus.HistogramVec
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	IndexDocuments   prometheus.Gauge
	IndexTerms       prometheus.Gauge
}

// New creates a fresh registry and registers every collector against it.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textsearch_queries_total",
				Help: "Total queries served, by mode (search, autocomplete, prefix_search).",
			},
			[]string{"mode"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "textsearch_query_duration_seconds",
				Help:    "Query latency in seconds, by mode.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"mode"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textsearch_cache_hits_total",
				Help: "Total cache hits, by cache name (result, prefix).",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "textsearch_cache_misses_total",
				Help: "Total cache misses, by cache name (result, prefix).",
			},
			[]string{"cache"},
		),
		IndexDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "textsearch_index_documents",
				Help: "Number of documents in the built index.",
			},
		),
		IndexTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "textsearch_index_terms",
				Help: "Number of distinct vocabulary terms in the built index.",
			},
		),
	}

	m.registry.MustRegister(
		m.QueriesTotal,
		m.QueryDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.IndexDocuments,
		m.IndexTerms,
	)

	// Create the per-mode series up front so textsearch_queries_total is exported (at zero)
	// before the first query arrives.
	for _, mode := range []string{"search", "autocomplete", "prefix_search"} {
		m.QueriesTotal.WithLabelValues(mode)
	}

	return m
}

// Handler returns the Prometheus scrape HTTP handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetIndexSize updates the index-size gauges after a build or rebuild completes.
func (m *Metrics) SetIndexSize(documents, terms int) {
	m.IndexDocuments.Set(float64(documents))
	m.IndexTerms.Set(float64(terms))
}
