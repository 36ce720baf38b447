// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration is read from environment variables through viper by
// [LoadConfig]:
//
//   - MIME_MAP_XML: Path to the mime map (default: MimeMap.xml next to the executable)
//   - MIME_MAP_POLICY: "lenient" (log and continue) or "strict" (fail) when the
//     mime map cannot be read (default: lenient)
//   - MIME_FALLBACK: Add built-in records for common web types (default: true)
//   - STATIC_DIR: Directory served under /files/ (default: unset, disabled)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_FORMAT: text or json (default: text); json also switches the
//     access log from W3C lines to structured fields
//   - LOG_FILE: Write logs to a rotated file instead of stderr
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Build Information
//
// Version, Commit and BuildTime are set at build time:
//
//	go build -ldflags "-X mime-registry/internal/startup.Version=1.0.0"
package startup
