package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Mutation metrics
	MutationsTotal        *prometheus.CounterVec
	SchemaViolationsTotal prometheus.Counter

	// Query metrics
	PathQueriesTotal  *prometheus.CounterVec
	PathQueryDuration prometheus.Histogram

	// Validation metrics
	ValidationRunsTotal prometheus.Counter
	ValidationFindings  *prometheus.GaugeVec

	// Graph size
	GraphNodesTotal *prometheus.GaugeVec
	GraphEdgesTotal *prometheus.GaugeVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.MutationsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxigraph_mutations_total",
			Help: "Total number of node/edge mutation requests",
		},
		[]string{"operation", "status"},
	)
	r.SchemaViolationsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "taxigraph_schema_violations_total",
			Help: "Total number of mutations rejected by schema validation",
		},
	)
	r.PathQueriesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxigraph_path_queries_total",
			Help: "Total number of path queries",
		},
		[]string{"status"},
	)
	r.PathQueryDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "taxigraph_path_query_duration_seconds",
			Help:    "Path query duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)
	r.ValidationRunsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "taxigraph_validation_runs_total",
			Help: "Total number of validation engine runs",
		},
	)
	r.ValidationFindings = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taxigraph_validation_findings",
			Help: "Findings from the most recent validation run per airport",
		},
		[]string{"airport", "severity"},
	)
	r.GraphNodesTotal = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taxigraph_graph_nodes_total",
			Help: "Number of nodes in the graph per airport",
		},
		[]string{"airport"},
	)
	r.GraphEdgesTotal = promauto.With(reg).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "taxigraph_graph_edges_total",
			Help: "Number of edges in the graph per airport",
		},
		[]string{"airport"},
	)
	r.HTTPRequestsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "taxigraph_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	r.HTTPRequestDuration = promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taxigraph_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"method", "path"},
	)

	return r
}

// Handler returns the HTTP handler exposing the registry in the
// Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordMutation records one mutation request outcome.
func (r *Registry) RecordMutation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.MutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordPathQuery records one path query with its duration.
func (r *Registry) RecordPathQuery(status string, duration time.Duration) {
	r.PathQueriesTotal.WithLabelValues(status).Inc()
	r.PathQueryDuration.Observe(duration.Seconds())
}

// RecordValidation records a validation run's finding counts.
func (r *Registry) RecordValidation(airport string, errors, warnings int) {
	r.ValidationRunsTotal.Inc()
	r.ValidationFindings.WithLabelValues(airport, "error").Set(float64(errors))
	r.ValidationFindings.WithLabelValues(airport, "warning").Set(float64(warnings))
}

// UpdateGraphSize records the current node and edge counts for an airport.
func (r *Registry) UpdateGraphSize(airport string, nodes, edges int) {
	r.GraphNodesTotal.WithLabelValues(airport).Set(float64(nodes))
	r.GraphEdgesTotal.WithLabelValues(airport).Set(float64(edges))
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
