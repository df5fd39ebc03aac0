package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// SummaryComputeDuration measures deriving the stock summary from the store (cache misses only)
	SummaryComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_summary_compute_seconds",
			Help:    "Time spent recomputing the stock summary",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
	)

	SummaryCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_summary_cache_total",
			Help: "Stock summary cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	ImportedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_import_rows_total",
			Help: "Spreadsheet rows processed by entity and outcome (imported, failed)",
		},
		[]string{"entity", "outcome"},
	)
)
