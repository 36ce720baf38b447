package startup

import (
	"strings"
	"time"

	"mime-registry/internal/logging"
	"mime-registry/internal/metrics"
	"mime-registry/internal/registry"
)

// LoadRegistry loads the registry described by cfg, records load metrics
// and logs the outcome.
func LoadRegistry(cfg registry.LoadConfig) (*registry.Registry, error) {
	section("REGISTRY INITIALIZATION")

	start := time.Now()
	reg, err := registry.Load(cfg)
	duration := time.Since(start)
	metrics.RegistryLoadDuration.Observe(duration.Seconds())

	status := "success"
	if err != nil || reg.Report().Err() != nil {
		status = "error"
	}
	metrics.RegistryLoadsTotal.WithLabelValues(status).Inc()
	if err != nil {
		return nil, err
	}

	metrics.RegistryLastLoadTimestamp.SetToCurrentTime()
	LogRegistryLoaded(reg.Report(), duration)
	return reg, nil
}

// LogRegistryLoaded logs a summary of a registry build
func LogRegistryLoaded(report registry.Report, duration time.Duration) {
	if report.SourceError != "" {
		logging.Warn("  Mime map unavailable: %s", report.SourceError)
	} else {
		logging.Info("  [OK] Mime map loaded from %s in %v", report.Source, duration)
	}
	logging.Info("    Records:        %d", report.Records)
	logging.Info("    Extensions:     %d", report.Extensions)
	logging.Info("    Content types:  %d", report.ContentTypes)
	if len(report.Fallbacks) > 0 {
		logging.Info("    Built-in types: %s", strings.Join(report.Fallbacks, ", "))
	}
	if n := len(report.Skipped); n > 0 {
		logging.Warn("    Skipped entries: %d (see warnings above)", n)
	}
}
