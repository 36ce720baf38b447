package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mime-registry/internal/logging"
)

// responseWriter captures the status code and bytes written.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.wroteHeader = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LoggingConfig holds configuration for the logging middleware
type LoggingConfig struct {
	SkipPaths []string
	// StaticPrefixes are the path prefixes of static file routes.
	StaticPrefixes  []string
	LogStaticFiles  bool
	LogHealthChecks bool
	// Structured emits each request as logrus fields instead of a W3C line.
	Structured bool
}

// DefaultLoggingConfig returns the default configuration: static files
// under /files/ are not logged, health checks are.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:       []string{},
		StaticPrefixes:  []string{"/files/"},
		LogStaticFiles:  false,
		LogHealthChecks: true,
	}
}

var healthCheckPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
}

// accessEntry is one completed request with every field sanitized.
type accessEntry struct {
	Time        time.Time
	ClientIP    string
	Method      string
	Path        string
	Query       string
	Status      int
	Bytes       int64
	Duration    time.Duration
	ContentType string
	UserAgent   string
	Referer     string
}

func newAccessEntry(r *http.Request, rw *responseWriter, duration time.Duration, now time.Time) accessEntry {
	return accessEntry{
		Time:        now,
		ClientIP:    sanitizeLogField(getClientIP(r)),
		Method:      sanitizeLogField(r.Method),
		Path:        sanitizeLogField(r.URL.Path),
		Query:       sanitizeLogField(r.URL.RawQuery),
		Status:      rw.statusCode,
		Bytes:       rw.bytesWritten,
		Duration:    duration,
		ContentType: sanitizeLogField(rw.Header().Get("Content-Type")),
		UserAgent:   sanitizeLogField(r.Header.Get("User-Agent")),
		Referer:     sanitizeLogField(r.Header.Get("Referer")),
	}
}

// W3C renders the entry in W3C Extended Log Format:
// date time c-ip cs-method cs-uri-stem cs-uri-query sc-status sc-bytes
// time-taken sc(Content-Type) cs(User-Agent) cs(Referer)
func (e accessEntry) W3C() string {
	return fmt.Sprintf("%s %s %s %s %s %s %d %d %d %s %s %s",
		e.Time.Format("2006-01-02"),
		e.Time.Format("15:04:05"),
		e.ClientIP,
		e.Method,
		e.Path,
		w3cValue(e.Query, false),
		e.Status,
		e.Bytes,
		e.Duration.Milliseconds(),
		w3cValue(e.ContentType, true),
		w3cValue(e.UserAgent, true),
		w3cValue(e.Referer, false),
	)
}

// Fields returns the entry as structured log fields. Empty values are
// omitted.
func (e accessEntry) Fields() logrus.Fields {
	fields := logrus.Fields{
		"client_ip":   e.ClientIP,
		"method":      e.Method,
		"path":        e.Path,
		"status":      e.Status,
		"bytes":       e.Bytes,
		"duration_ms": e.Duration.Milliseconds(),
	}
	optional := map[string]string{
		"query":        e.Query,
		"content_type": e.ContentType,
		"user_agent":   e.UserAgent,
		"referer":      e.Referer,
	}
	for k, v := range optional {
		if v != "" {
			fields[k] = v
		}
	}
	return fields
}

// sanitizeLogField strips control characters that could forge log lines or
// inject terminal escapes. Newlines become spaces; tabs are kept.
func sanitizeLogField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r == '\x00', r == '\x1b':
			continue
		case r < 0x20 && r != '\t':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Logger returns HTTP request logging middleware.
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkip(r.URL.Path, config) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			entry := newAccessEntry(r, wrapped, time.Since(start), time.Now().UTC())
			if config.Structured {
				logging.PrintFields(entry.Fields(), "request")
			} else {
				logging.Println(entry.W3C())
			}
		})
	}
}

func shouldSkip(path string, config LoggingConfig) bool {
	switch {
	case hasAnyPrefix(path, config.SkipPaths):
		return true
	case !config.LogHealthChecks && healthCheckPaths[path]:
		return true
	case !config.LogStaticFiles && hasAnyPrefix(path, config.StaticPrefixes):
		return true
	}
	return false
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// w3cValue renders an empty value as "-". When quote is set, values
// containing whitespace or quotes are quoted with embedded quotes doubled.
func w3cValue(s string, quote bool) string {
	if s == "" {
		return "-"
	}
	if quote && strings.ContainsAny(s, " \t\"") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
