package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"mime-registry/internal/mimetypes"
	"mime-registry/internal/registry"
)

// CompressionConfig holds configuration for the compression middleware
type CompressionConfig struct {
	// MinSize is the minimum response size in bytes before compression is applied
	MinSize int
	// Compressible reports whether a response media type (lower-cased,
	// without parameters) should be gzipped.
	Compressible func(mediaType string) bool
}

// compressibleCategories are the categories whose content is text.
var compressibleCategories = map[mimetypes.Category]bool{
	mimetypes.CategoryText: true,
	mimetypes.CategoryWeb:  true,
	mimetypes.CategoryCode: true,
	mimetypes.CategoryXML:  true,
}

// DefaultCompressionConfig compresses JSON and every content type the
// registry places in a text-like category.
func DefaultCompressionConfig(reg *registry.Registry) CompressionConfig {
	return CompressionConfig{
		MinSize: 1024,
		Compressible: func(mediaType string) bool {
			if mediaType == "application/json" || strings.HasSuffix(mediaType, "+xml") {
				return true
			}
			return compressibleCategories[reg.ByContentType(mediaType).Category]
		},
	}
}

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(io.Discard, gzip.DefaultCompression)
		return w
	},
}

type encodeState int

const (
	statePending encodeState = iota
	statePlain
	stateGzip
)

// gzipResponseWriter holds back up to MinSize bytes so the encoding can be
// chosen once the response size and content type are known.
type gzipResponseWriter struct {
	http.ResponseWriter
	config  CompressionConfig
	state   encodeState
	status  int
	pending []byte
	zw      *gzip.Writer
}

func newGzipResponseWriter(w http.ResponseWriter, config CompressionConfig) *gzipResponseWriter {
	return &gzipResponseWriter{
		ResponseWriter: w,
		config:         config,
		status:         http.StatusOK,
		pending:        make([]byte, 0, config.MinSize+1),
	}
}

func (g *gzipResponseWriter) WriteHeader(statusCode int) {
	if g.state == statePending {
		g.status = statusCode
	}
}

func (g *gzipResponseWriter) Write(data []byte) (int, error) {
	switch g.state {
	case stateGzip:
		return g.zw.Write(data)
	case statePlain:
		return g.ResponseWriter.Write(data)
	}

	g.pending = append(g.pending, data...)
	if len(g.pending) > g.config.MinSize {
		if err := g.commit(); err != nil {
			return 0, err
		}
	}
	return len(data), nil
}

// mediaType returns the response media type, lower-cased and without
// parameters.
func (g *gzipResponseWriter) mediaType() string {
	ct, _, _ := strings.Cut(g.Header().Get("Content-Type"), ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

func (g *gzipResponseWriter) wantGzip() bool {
	if g.status != http.StatusOK || len(g.pending) < g.config.MinSize {
		return false
	}
	if g.Header().Get("Content-Encoding") != "" || g.config.Compressible == nil {
		return false
	}
	mt := g.mediaType()
	return mt != "" && g.config.Compressible(mt)
}

// commit picks the encoding, sends the header and drains the pending bytes.
func (g *gzipResponseWriter) commit() error {
	if g.state != statePending {
		return nil
	}

	gz := g.wantGzip()
	body := g.pending
	g.pending = nil

	if !gz {
		g.state = statePlain
		g.ResponseWriter.WriteHeader(g.status)
		if len(body) == 0 {
			return nil
		}
		_, err := g.ResponseWriter.Write(body)
		return err
	}

	g.state = stateGzip
	h := g.Header()
	h.Del("Content-Length")
	h.Set("Content-Encoding", "gzip")
	h.Add("Vary", "Accept-Encoding")

	g.zw = gzipWriterPool.Get().(*gzip.Writer)
	g.zw.Reset(g.ResponseWriter)
	g.ResponseWriter.WriteHeader(g.status)
	_, err := g.zw.Write(body)
	return err
}

// Close commits any pending bytes and returns the gzip writer to the pool.
func (g *gzipResponseWriter) Close() error {
	if err := g.commit(); err != nil {
		return err
	}
	if g.zw == nil {
		return nil
	}
	err := g.zw.Close()
	gzipWriterPool.Put(g.zw)
	g.zw = nil
	return err
}

// Flush implements http.Flusher
func (g *gzipResponseWriter) Flush() {
	_ = g.commit()
	if g.zw != nil {
		_ = g.zw.Flush()
	}
	if f, ok := g.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func acceptsGzip(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		coding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		return strings.ReplaceAll(strings.TrimSpace(params), " ", "") != "q=0"
	}
	return false
}

// Compression returns a middleware that gzips compressible responses for
// clients that accept it.
func Compression(config CompressionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r) {
				next.ServeHTTP(w, r)
				return
			}

			gzw := newGzipResponseWriter(w, config)
			defer gzw.Close()

			next.ServeHTTP(gzw, r)
		})
	}
}
