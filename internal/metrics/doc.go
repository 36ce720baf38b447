// Package metrics provides Prometheus instrumentation for mime-registry.
//
// All metrics are prefixed with "mime_registry_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Registry Metrics
//
// Load metrics are updated when the mime map is read:
//   - RegistryLoadsTotal: Counter of loads by status
//   - RegistryLoadDuration: Histogram of load and build time
//   - RegistryLastLoadTimestamp: Gauge of the last build time
//
// Lookup metrics are updated by the HTTP handlers:
//   - RegistryLookupsTotal: Counter by kind (extension, content_type,
//     category, image_format) and result (hit, miss)
//   - StaticContentTypeTotal: Counter of static files by Content-Type
//     source (registry, sniffed)
//
// The registry contents are exported by Collector at scrape time:
//   - mime_registry_records
//   - mime_registry_keys{kind}
//   - mime_registry_fallback_records
//   - mime_registry_skipped_entries{field}
//   - mime_registry_records_by_category{category}
//
// ## Filesystem Metrics
//
// Recorded through the filesystem.Observer returned by
// NewFilesystemObserver, labeled by volume ("config" or "static"):
//   - FilesystemOperationDuration, FilesystemOperationErrors
//   - FilesystemRetryEvents: Counter by operation, volume and event
//     (stale, retry, recovered, exhausted)
//   - FilesystemRetryDuration: Histogram of operations that retried
//
// ## Application Info
//
//   - AppInfo: Gauge with version, commit, and Go version labels
//
// # Usage
//
//	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	prometheus.MustRegister(metrics.NewCollector(h))
package metrics
