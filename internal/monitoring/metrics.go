// internal/monitoring/metrics.go
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Page kinds used as the "page" label on fetch metrics.
const (
	PageSearch = "search"
	PageDetail = "detail"
)

// MetricsConfig configuration for metrics
type MetricsConfig struct {
	Namespace            string
	EnableGoMetrics      bool
	EnableProcessMetrics bool
}

// Metrics holds the Prometheus collectors for the service. Every method
// is safe to call on a nil *Metrics, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	candidates    prometheus.Histogram
	enrichments   *prometheus.CounterVec
	fieldFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry so several
// instances can coexist (one per test, for instance).
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "audiotekameta"
	}

	reg := prometheus.NewRegistry()
	if config.EnableGoMetrics {
		reg.MustRegister(collectors.NewGoCollector())
	}
	if config.EnableProcessMetrics {
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	factory := promauto.With(reg)
	ns := config.Namespace

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Inbound HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Inbound HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "catalog",
			Name:      "fetches_total",
			Help:      "Catalog page fetches by page kind and outcome.",
		}, []string{"page", "outcome"}),
		fetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "catalog",
			Name:      "fetch_duration_seconds",
			Help:      "Catalog page fetch duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"page"}),
		candidates: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: "pipeline",
			Name:      "candidates",
			Help:      "Number of search candidates found per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		enrichments: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "pipeline",
			Name:      "enrichments_total",
			Help:      "Detail enrichments by outcome (enriched or fallback).",
		}, []string{"outcome"}),
		fieldFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: "pipeline",
			Name:      "field_parse_failures_total",
			Help:      "Detail fields that were present but could not be parsed.",
		}, []string{"field"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTP records one inbound request.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveFetch records one catalog page fetch.
func (m *Metrics) ObserveFetch(page string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetches.WithLabelValues(page, outcome).Inc()
	m.fetchDuration.WithLabelValues(page).Observe(elapsed.Seconds())
}

// ObserveCandidates records how many candidates one search produced.
func (m *Metrics) ObserveCandidates(n int) {
	if m == nil {
		return
	}
	m.candidates.Observe(float64(n))
}

// ObserveEnrichment records whether a candidate was enriched or fell
// back to its search shape.
func (m *Metrics) ObserveEnrichment(enriched bool) {
	if m == nil {
		return
	}
	outcome := "enriched"
	if !enriched {
		outcome = "fallback"
	}
	m.enrichments.WithLabelValues(outcome).Inc()
}

// FieldParseFailure counts a field that could not be parsed.
func (m *Metrics) FieldParseFailure(field string) {
	if m == nil {
		return
	}
	m.fieldFailures.WithLabelValues(field).Inc()
}
