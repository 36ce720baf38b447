package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mime_registry_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mime_registry_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Registry load metrics
var (
	RegistryLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_loads_total",
			Help: "Total number of mime map loads",
		},
		[]string{"status"},
	)

	RegistryLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mime_registry_load_duration_seconds",
			Help:    "Time to read the mime map and build the registry",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RegistryLastLoadTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mime_registry_last_load_timestamp_seconds",
			Help: "Unix timestamp of the last registry build",
		},
	)
)

// Lookup metrics
var (
	RegistryLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_lookups_total",
			Help: "Total number of registry lookups served over HTTP",
		},
		[]string{"kind", "result"},
	)

	StaticContentTypeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_static_content_type_total",
			Help: "Static files served, by how their Content-Type was chosen",
		},
		[]string{"source"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mime_registry_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"volume", "operation"},
	)

	FilesystemRetryEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mime_registry_filesystem_retry_events_total",
			Help: "Stale file handle retry events by outcome (stale, retry, recovered, exhausted)",
		},
		[]string{"operation", "volume", "event"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mime_registry_filesystem_retry_duration_seconds",
			Help:    "Total duration of filesystem operations that needed at least one retry",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"operation", "volume"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mime_registry_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// Lookup results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// RecordLookup counts one registry lookup of the given kind.
func RecordLookup(kind string, hit bool) {
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	RegistryLookupsTotal.WithLabelValues(kind, result).Inc()
}
