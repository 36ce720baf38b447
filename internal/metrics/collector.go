package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mime-registry/internal/logging"
)

// StatsProvider supplies the current registry statistics.
type StatsProvider interface {
	RegistryStats() Stats
}

// Stats holds the registry figures exported on every scrape.
type Stats struct {
	Records      int
	Extensions   int
	ContentTypes int
	Fallbacks    int
	// Skipped counts skipped entries by field (FileExt, ContentType, ...).
	Skipped map[string]int
	// Categories counts records by category.
	Categories map[string]int
}

var (
	registryRecordsDesc = prometheus.NewDesc(
		"mime_registry_records",
		"Number of records in the registry, fallbacks included",
		nil, nil,
	)
	registryKeysDesc = prometheus.NewDesc(
		"mime_registry_keys",
		"Number of indexed lookup keys",
		[]string{"kind"}, nil,
	)
	registryFallbacksDesc = prometheus.NewDesc(
		"mime_registry_fallback_records",
		"Number of built-in records added because the mime map lacked them",
		nil, nil,
	)
	registrySkippedDesc = prometheus.NewDesc(
		"mime_registry_skipped_entries",
		"Number of mime map entries skipped as malformed",
		[]string{"field"}, nil,
	)
	registryCategoryDesc = prometheus.NewDesc(
		"mime_registry_records_by_category",
		"Number of records per category",
		[]string{"category"}, nil,
	)
)

// Collector exports registry statistics as Prometheus gauges, read from the
// provider at scrape time.
type Collector struct {
	provider StatsProvider
}

// NewCollector creates a collector for provider. Register it with
// prometheus.MustRegister.
func NewCollector(provider StatsProvider) *Collector {
	return &Collector{provider: provider}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- registryRecordsDesc
	ch <- registryKeysDesc
	ch <- registryFallbacksDesc
	ch <- registrySkippedDesc
	ch <- registryCategoryDesc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.provider == nil {
		return
	}

	stats := c.provider.RegistryStats()

	ch <- prometheus.MustNewConstMetric(registryRecordsDesc, prometheus.GaugeValue, float64(stats.Records))
	ch <- prometheus.MustNewConstMetric(registryKeysDesc, prometheus.GaugeValue, float64(stats.Extensions), "extension")
	ch <- prometheus.MustNewConstMetric(registryKeysDesc, prometheus.GaugeValue, float64(stats.ContentTypes), "content_type")
	ch <- prometheus.MustNewConstMetric(registryFallbacksDesc, prometheus.GaugeValue, float64(stats.Fallbacks))
	for field, n := range stats.Skipped {
		ch <- prometheus.MustNewConstMetric(registrySkippedDesc, prometheus.GaugeValue, float64(n), field)
	}
	for category, n := range stats.Categories {
		ch <- prometheus.MustNewConstMetric(registryCategoryDesc, prometheus.GaugeValue, float64(n), category)
	}

	logging.Debug("Metrics collected: records=%d, extensions=%d, content_types=%d, fallbacks=%d",
		stats.Records, stats.Extensions, stats.ContentTypes, stats.Fallbacks)
}
