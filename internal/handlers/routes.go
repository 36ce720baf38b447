package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mime-registry/internal/startup"
)

// NewRouter registers every application route.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET", "HEAD")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	r.HandleFunc("/api/types", h.ListTypes).Methods("GET")
	r.HandleFunc("/api/types/extension/{ext}", h.GetByExtension).Methods("GET")
	r.HandleFunc("/api/types/content-type/{type:.*}", h.GetByContentType).Methods("GET")
	r.HandleFunc("/api/category", h.ListCategories).Methods("GET")
	r.HandleFunc("/api/category/{ext}", h.GetCategory).Methods("GET")
	r.HandleFunc("/api/image-format/{ext}", h.GetImageFormat).Methods("GET")
	r.HandleFunc("/api/report", h.GetReport).Methods("GET")

	r.HandleFunc("/files/{path:.*}", h.ServeStatic).Methods("GET", "HEAD")

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// MetricsHandler returns the Prometheus metrics handler
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// GetVersion returns the application version and build information
func (h *Handlers) GetVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, startup.GetBuildInfo())
}
