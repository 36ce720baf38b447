package handlers

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"mime-registry/internal/filesystem"
	"mime-registry/internal/logging"
	"mime-registry/internal/metrics"
)

const indexFile = "index.html"

// ServeStatic serves {path} from the static directory. The Content-Type
// comes from the registry; files with an unknown extension are sniffed.
func (h *Handlers) ServeStatic(w http.ResponseWriter, r *http.Request) {
	if h.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	fullPath := filepath.Join(h.staticDir, filepath.FromSlash(mux.Vars(r)["path"]))
	if !isSubPath(h.staticDir, fullPath) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}

	info, err := filesystem.StatWithRetry(fullPath, filesystem.DefaultRetryConfig())
	if err == nil && info.IsDir() {
		fullPath = filepath.Join(fullPath, indexFile)
		info, err = filesystem.StatWithRetry(fullPath, filesystem.DefaultRetryConfig())
	}
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			logging.Warn("Failed to stat static file %s: %v", fullPath, err)
		}
		http.NotFound(w, r)
		return
	}

	f, err := filesystem.OpenWithRetry(fullPath, filesystem.DefaultRetryConfig())
	if err != nil {
		logging.Error("Failed to open static file %s: %v", fullPath, err)
		http.Error(w, "Failed to open file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	contentType, err := h.staticContentType(fullPath, f)
	if err != nil {
		logging.Error("Failed to detect content type of %s: %v", fullPath, err)
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// staticContentType resolves the Content-Type of path from its extension,
// falling back to content sniffing. f is rewound after sniffing.
func (h *Handlers) staticContentType(path string, f io.ReadSeeker) (string, error) {
	if ct := h.reg.ContentType(filepath.Ext(path)); ct != "" {
		metrics.StaticContentTypeTotal.WithLabelValues(metrics.SourceRegistry).Inc()
		return ct, nil
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	metrics.StaticContentTypeTotal.WithLabelValues(metrics.SourceSniffed).Inc()
	logging.Debug("Sniffed %s for %s", mtype.String(), path)
	return mtype.String(), nil
}

// isSubPath reports whether child is parent or lies beneath it.
func isSubPath(parent, child string) bool {
	parent, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	child, err = filepath.Abs(child)
	if err != nil {
		return false
	}
	if child == parent {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
