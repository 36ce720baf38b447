package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"mime-registry/internal/metrics"
	"mime-registry/internal/mimetypes"
)

// TypesResponse lists registry records.
type TypesResponse struct {
	Count   int                 `json:"count"`
	Records []*mimetypes.Record `json:"records"`
}

// CategoryResponse answers a category lookup.
type CategoryResponse struct {
	Extension string             `json:"extension"`
	Category  mimetypes.Category `json:"category"`
}

// CategorySummary counts the records in one category.
type CategorySummary struct {
	Category mimetypes.Category `json:"category"`
	Name     string             `json:"name"`
	Records  int                `json:"records"`
}

// ImageFormatResponse answers an image format lookup.
type ImageFormatResponse struct {
	Extension string `json:"extension"`
	Format    string `json:"format"`
}

// ListTypes returns every record, optionally filtered with ?category=.
func (h *Handlers) ListTypes(w http.ResponseWriter, r *http.Request) {
	records := h.reg.Records()

	if name := r.URL.Query().Get("category"); name != "" {
		category, ok := mimetypes.ParseCategory(name)
		if !ok {
			writeJSONError(w, "unknown category: "+name, http.StatusBadRequest)
			return
		}
		filtered := records[:0]
		for _, rec := range records {
			if rec.Category == category {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	writeJSON(w, TypesResponse{Count: len(records), Records: records})
}

// GetByExtension returns the record for {ext}.
func (h *Handlers) GetByExtension(w http.ResponseWriter, r *http.Request) {
	ext := mux.Vars(r)["ext"]

	rec := h.reg.ByExtension(ext)
	metrics.RecordLookup(metrics.LookupExtension, !rec.IsEmpty())
	if rec.IsEmpty() {
		writeJSONError(w, "unknown extension: "+ext, http.StatusNotFound)
		return
	}

	writeJSON(w, rec)
}

// GetByContentType returns the record for {type}, which may contain a slash.
func (h *Handlers) GetByContentType(w http.ResponseWriter, r *http.Request) {
	contentType := strings.TrimPrefix(mux.Vars(r)["type"], "/")

	rec := h.reg.ByContentType(contentType)
	metrics.RecordLookup(metrics.LookupContentType, !rec.IsEmpty())
	if rec.IsEmpty() {
		writeJSONError(w, "unknown content type: "+contentType, http.StatusNotFound)
		return
	}

	writeJSON(w, rec)
}

// GetCategory returns the category of {ext}. Unknown extensions are not an
// error; they report the unknown category.
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	ext := mux.Vars(r)["ext"]

	category := h.reg.Category(ext)
	metrics.RecordLookup(metrics.LookupCategory, category != mimetypes.CategoryUnknown)

	writeJSON(w, CategoryResponse{Extension: ext, Category: category})
}

// ListCategories returns every category with its record count.
func (h *Handlers) ListCategories(w http.ResponseWriter, _ *http.Request) {
	counts := make(map[mimetypes.Category]int)
	for _, rec := range h.reg.Records() {
		counts[rec.Category]++
	}

	summaries := make([]CategorySummary, 0, len(mimetypes.Categories))
	for _, c := range mimetypes.Categories {
		summaries = append(summaries, CategorySummary{
			Category: c,
			Name:     c.ConfigName(),
			Records:  counts[c],
		})
	}

	writeJSON(w, summaries)
}

// GetImageFormat returns the encoder format for {ext}.
func (h *Handlers) GetImageFormat(w http.ResponseWriter, r *http.Request) {
	ext := mux.Vars(r)["ext"]

	format, ok := h.reg.ImageFormat(ext)
	metrics.RecordLookup(metrics.LookupImageFormat, ok)
	if !ok {
		writeJSONError(w, "not an encodable image extension: "+ext, http.StatusNotFound)
		return
	}

	writeJSON(w, ImageFormatResponse{Extension: ext, Format: format.String()})
}

// GetReport returns the registry build report.
func (h *Handlers) GetReport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, h.reg.Report())
}
