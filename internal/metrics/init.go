package metrics

import "mime-registry/internal/filesystem"

// Lookup kinds.
const (
	LookupExtension   = "extension"
	LookupContentType = "content_type"
	LookupCategory    = "category"
	LookupImageFormat = "image_format"
)

// Content-Type sources for static files.
const (
	SourceRegistry = "registry"
	SourceSniffed  = "sniffed"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, kind := range []string{LookupExtension, LookupContentType, LookupCategory, LookupImageFormat} {
		RegistryLookupsTotal.WithLabelValues(kind, ResultHit)
		RegistryLookupsTotal.WithLabelValues(kind, ResultMiss)
	}

	for _, source := range []string{SourceRegistry, SourceSniffed} {
		StaticContentTypeTotal.WithLabelValues(source)
	}

	for _, status := range []string{"success", "error"} {
		RegistryLoadsTotal.WithLabelValues(status)
	}

	volumes := []string{"config", "static", "unknown"}
	ops := []string{filesystem.OpStat, filesystem.OpOpen}

	for _, vol := range volumes {
		for _, op := range ops {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryDuration.WithLabelValues(op, vol)
			for _, ev := range retryEvents {
				FilesystemRetryEvents.WithLabelValues(op, vol, ev.String())
			}
		}
	}
}
