// Package metrics defines Prometheus metrics for the graph kernel.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkernel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkernel_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkernel_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	// PathSearches counts searches by kind (all, single, stream) and
	// outcome (found, empty, error, cancelled).
	PathSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkernel_path_searches_total",
			Help: "Total exact-depth path searches",
		},
		[]string{"kind", "outcome"},
	)

	PathSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphkernel_path_search_duration_seconds",
			Help:    "Exact-depth path search duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		},
		[]string{"kind"},
	)

	PathsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphkernel_paths_returned",
			Help:    "Paths returned per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	PartialPathsExpanded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphkernel_partial_paths_total",
			Help: "Partial paths materialized by frontier side",
		},
		[]string{"side"},
	)

	ActiveStreams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphkernel_active_path_streams",
			Help: "Open websocket path streams",
		},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphkernel_nodes_total",
			Help: "Total node count",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphkernel_edges_total",
			Help: "Total edge count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		PathSearches, PathSearchDuration, PathsReturned, PartialPathsExpanded,
		ActiveStreams,
		NodeCount, EdgeCount,
	)
}
