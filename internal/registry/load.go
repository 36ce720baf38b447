package registry

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"mime-registry/internal/loader"
	"mime-registry/internal/logging"
)

// Policy decides what happens when the mime map cannot be read.
type Policy string

const (
	// PolicyLenient logs the failure and builds an empty registry
	// (plus fallbacks).
	PolicyLenient Policy = "lenient"
	// PolicyStrict returns the failure to the caller.
	PolicyStrict Policy = "strict"
)

// ParsePolicy converts a configuration value to a Policy.
// An empty value is PolicyLenient.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyLenient):
		return PolicyLenient, nil
	case string(PolicyStrict):
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("invalid mime map policy %q (want %q or %q)", s, PolicyLenient, PolicyStrict)
	}
}

// LoadConfig describes where a registry comes from.
type LoadConfig struct {
	// Path is the mime map file. It is used as-is; see loader.ResolvePath.
	Path    string
	Policy  Policy
	Options Options
}

// Load reads the mime map at cfg.Path and builds a registry from it.
//
// Under PolicyStrict a missing or malformed file is returned as an error.
// Under PolicyLenient it is logged and recorded in Report.SourceError, and
// the registry is built from no records.
func Load(cfg LoadConfig) (*Registry, error) {
	results, err := loader.ReadFile(cfg.Path)
	if err != nil {
		if cfg.Policy == PolicyStrict {
			return nil, fmt.Errorf("failed to load mime map: %w", err)
		}
		logging.Warn("Mime map not loaded, using built-in types only: %v", err)

		r, _ := Build(nil, cfg.Options)
		r.report.Source = cfg.Path
		r.report.SourceError = err.Error()
		r.report.sourceErr = err
		return r, nil
	}

	r, _ := Build(loader.Records(results), cfg.Options)
	r.report.Source = cfg.Path
	r.report.Skipped = append(loader.Skips(results), r.report.Skipped...)

	for _, s := range r.report.Skipped {
		logging.Warn("Mime map %s", s)
	}
	logging.Debug("Mime map %s: %d records, %d extensions, %d content types, %d fallbacks",
		cfg.Path, r.report.Records, r.report.Extensions, r.report.ContentTypes, len(r.report.Fallbacks))

	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, loading it on first use from
// the MIME_MAP_XML environment variable with PolicyLenient.
func Default() *Registry {
	defaultOnce.Do(func() {
		cfg := LoadConfig{
			Path:   loader.ResolvePath(os.Getenv(loader.EnvMapPath)),
			Policy: PolicyLenient,
		}
		r, err := Load(cfg)
		if err != nil {
			// Unreachable under PolicyLenient.
			r, _ = Build(nil, Options{})
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// SetDefault installs r as the process-wide registry. It reports false if
// Default has already been initialized, in which case r is ignored.
func SetDefault(r *Registry) bool {
	installed := false
	defaultOnce.Do(func() {
		defaultRegistry = r
		installed = true
	})
	return installed
}
