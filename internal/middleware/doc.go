// Package middleware provides HTTP middleware for the mime-registry server.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics labeled by route template
//   - gzip compression for content types the registry classifies as text
//   - Configurable filtering for static files and health checks
package middleware
