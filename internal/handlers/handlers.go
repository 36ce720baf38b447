package handlers

import (
	"time"

	"mime-registry/internal/metrics"
	"mime-registry/internal/registry"
	"mime-registry/internal/startup"
)

// Handlers serves the registry over HTTP.
type Handlers struct {
	reg       *registry.Registry
	staticDir string
	started   time.Time
}

// New creates the handlers for reg. Static files are served from
// config.StaticDir when it is enabled.
func New(reg *registry.Registry, config *startup.Config) *Handlers {
	h := &Handlers{
		reg:     reg,
		started: time.Now(),
	}
	if config != nil && config.StaticEnabled {
		h.staticDir = config.StaticDir
	}
	return h
}

// RegistryStats implements metrics.StatsProvider.
func (h *Handlers) RegistryStats() metrics.Stats {
	report := h.reg.Report()

	stats := metrics.Stats{
		Records:      report.Records,
		Extensions:   report.Extensions,
		ContentTypes: report.ContentTypes,
		Fallbacks:    len(report.Fallbacks),
		Skipped:      make(map[string]int),
		Categories:   make(map[string]int),
	}
	for _, s := range report.Skipped {
		stats.Skipped[s.Field]++
	}
	for _, rec := range h.reg.Records() {
		stats.Categories[string(rec.Category)]++
	}
	return stats
}
