// Package handlers provides the HTTP API of the mime-registry server.
//
// It includes handlers for:
//   - Record lookups by extension and content type
//   - Category and image format lookups
//   - The registry build report
//   - Static files served with registry-derived Content-Type headers
//   - Health checks and version information
//
// All routes are registered by NewRouter.
package handlers
