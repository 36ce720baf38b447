// Package logging provides the leveled logger shared by the registry, the
// HTTP server and mimectl.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions, such as skipped mime map entries
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The level comes from the LOG_LEVEL (or DEBUG) environment variable and
// can be overridden with Setup. Lines are written by logrus, as text or
// JSON, to stderr or to a lumberjack-rotated file.
package logging
