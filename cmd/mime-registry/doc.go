// Package main provides the entry point for the mime-registry server.
//
// The server loads a mime map XML file into an in-memory registry and
// answers lookups by file extension and content type over HTTP. It can
// also serve a static directory, deriving each response's Content-Type
// from the registry.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables through viper
//  2. Logging Setup: Applies level, format and optional rotated log file
//  3. Metrics Setup: Registers Prometheus metrics and the filesystem observer
//  4. Registry Load: Reads the mime map (strict or lenient) and adds the
//     built-in fallback types
//  5. HTTP Server Setup: Configures routes, middleware, and starts server
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - /api/types, /api/types/extension/{ext}, /api/types/content-type/{type}
//     - /api/category, /api/category/{ext}, /api/image-format/{ext}
//     - /api/report
//     - /files/{path} when STATIC_DIR is set
//     - /health, /healthz, /livez, /readyz, /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//     - Health check endpoint (/health)
//
// # Environment Variables
//
//   - MIME_MAP_XML: Path to the mime map (default: MimeMap.xml next to the binary)
//   - MIME_MAP_POLICY: "lenient" (default) or "strict"
//   - MIME_FALLBACK: Add built-in web types (default: true)
//   - STATIC_DIR: Directory served under /files/
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - LOG_FORMAT: "text" (default) or "json"
//   - LOG_FILE: Write logs to a rotated file instead of stderr
//   - LOG_STATIC_FILES, LOG_HEALTH_CHECKS: Request log filtering
//
// With MIME_MAP_POLICY=strict the server exits at startup when the mime
// map is missing or malformed. In lenient mode it starts with the built-in
// types only and /health reports "degraded".
//
// # Related Packages
//
//   - [mime-registry/internal/registry]: Lookup tables and fallback types
//   - [mime-registry/internal/loader]: Mime map XML decoding
//   - [mime-registry/internal/handlers]: HTTP request handlers
//   - [mime-registry/internal/middleware]: HTTP middleware (logging, metrics, compression)
//   - [mime-registry/internal/startup]: Configuration and initialization
package main
