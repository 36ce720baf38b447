package startup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"mime-registry/internal/loader"
	"mime-registry/internal/logging"
	"mime-registry/internal/registry"
)

// Environment variables read by LoadConfig.
const (
	EnvMimeMap         = loader.EnvMapPath
	EnvMimeMapPolicy   = "MIME_MAP_POLICY"
	EnvFallback        = "MIME_FALLBACK"
	EnvStaticDir       = "STATIC_DIR"
	EnvPort            = "PORT"
	EnvMetricsPort     = "METRICS_PORT"
	EnvMetricsEnabled  = "METRICS_ENABLED"
	EnvLogStaticFiles  = "LOG_STATIC_FILES"
	EnvLogHealthChecks = "LOG_HEALTH_CHECKS"
	EnvLogFormat       = "LOG_FORMAT"
	EnvLogFile         = "LOG_FILE"
)

// defaults lists every setting with its default value, in log order.
var defaults = []struct {
	key   string
	value interface{}
}{
	{EnvMimeMap, ""},
	{EnvMimeMapPolicy, string(registry.PolicyLenient)},
	{EnvFallback, true},
	{EnvStaticDir, ""},
	{EnvPort, "8080"},
	{EnvMetricsPort, "9090"},
	{EnvMetricsEnabled, true},
	{EnvLogStaticFiles, false},
	{EnvLogHealthChecks, true},
	{EnvLogFormat, "text"},
	{EnvLogFile, ""},
}

// Config holds all application configuration
type Config struct {
	MimeMapPath     string
	MimeMapPolicy   registry.Policy
	Fallback        bool
	StaticDir       string
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogStaticFiles  bool
	LogHealthChecks bool
	LogFormat       string
	LogFile         string

	// StaticEnabled is false when StaticDir is unset or not a directory.
	StaticEnabled bool
}

// NewViper returns a viper instance with the server defaults, reading
// overrides from the environment.
func NewViper() *viper.Viper {
	v := viper.New()
	for _, d := range defaults {
		v.SetDefault(d.key, d.value)
	}
	v.AutomaticEnv()
	return v
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()
	return ConfigFromViper(NewViper())
}

// ConfigFromViper builds a Config from v and applies the logging settings.
func ConfigFromViper(v *viper.Viper) (*Config, error) {
	policy, err := registry.ParsePolicy(v.GetString(EnvMimeMapPolicy))
	if err != nil {
		return nil, err
	}

	config := &Config{
		MimeMapPath:     loader.ResolvePath(v.GetString(EnvMimeMap)),
		MimeMapPolicy:   policy,
		Fallback:        v.GetBool(EnvFallback),
		StaticDir:       v.GetString(EnvStaticDir),
		Port:            v.GetString(EnvPort),
		MetricsPort:     v.GetString(EnvMetricsPort),
		MetricsEnabled:  v.GetBool(EnvMetricsEnabled),
		LogStaticFiles:  v.GetBool(EnvLogStaticFiles),
		LogHealthChecks: v.GetBool(EnvLogHealthChecks),
		LogFormat:       v.GetString(EnvLogFormat),
		LogFile:         v.GetString(EnvLogFile),
	}

	if err := logging.Setup(logging.Config{Format: config.LogFormat, File: config.LogFile}); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	if config.StaticDir != "" {
		abs, err := filepath.Abs(config.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve static directory path: %w", err)
		}
		config.StaticDir = abs
		config.StaticEnabled = checkDirectory(abs)
	}

	config.log()
	return config, nil
}

func (c *Config) log() {
	section("CONFIGURATION")
	settings := []struct {
		key   string
		value interface{}
	}{
		{EnvMimeMap, c.MimeMapPath},
		{EnvMimeMapPolicy, c.MimeMapPolicy},
		{EnvFallback, c.Fallback},
		{EnvStaticDir, c.StaticDir},
		{EnvPort, c.Port},
		{EnvMetricsPort, c.MetricsPort},
		{EnvMetricsEnabled, c.MetricsEnabled},
		{EnvLogStaticFiles, c.LogStaticFiles},
		{EnvLogHealthChecks, c.LogHealthChecks},
		{"LOG_LEVEL", logging.GetLevel()},
		{EnvLogFormat, c.LogFormat},
		{EnvLogFile, c.LogFile},
	}
	for _, s := range settings {
		logging.Info("  %-20s %v", s.key+":", s.value)
	}

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Static files: %s", onOff(c.StaticEnabled))
	logging.Info("    Fallbacks:    %s", onOff(c.Fallback))
	logging.Info("    Metrics:      %s", onOff(c.MetricsEnabled))
}

// RegistryConfig returns the registry load settings for config.
func (c *Config) RegistryConfig() registry.LoadConfig {
	return registry.LoadConfig{
		Path:    c.MimeMapPath,
		Policy:  c.MimeMapPolicy,
		Options: registry.Options{DisableFallback: !c.Fallback},
	}
}

// checkDirectory reports whether path is an existing directory, logging
// the reason when it is not.
func checkDirectory(path string) bool {
	info, err := os.Stat(path)
	switch {
	case err != nil:
		logging.Warn("  Static directory unavailable: %v", err)
		return false
	case !info.IsDir():
		logging.Warn("  Static directory path is not a directory: %s", path)
		return false
	}
	logging.Debug("  [OK] Static directory exists: %s", path)
	return true
}
