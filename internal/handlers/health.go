package handlers

import (
	"net/http"
	"runtime"
	"time"

	"mime-registry/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Registry summary
	Source      string `json:"source,omitempty"`
	SourceError string `json:"sourceError,omitempty"`
	Records     int    `json:"records"`
	Skipped     int    `json:"skipped"`
	Fallbacks   int    `json:"fallbacks"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. A registry built
// without its mime map is reported as degraded but still serves.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ready := h.reg != nil
	report := h.reg.Report()

	response := HealthResponse{
		Status:       statusHealthy,
		Ready:        ready,
		Version:      startup.Version,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Source:       report.Source,
		SourceError:  report.SourceError,
		Records:      report.Records,
		Skipped:      len(report.Skipped),
		Fallbacks:    len(report.Fallbacks),
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	switch {
	case !ready:
		response.Status = statusStarting
	case report.SourceError != "":
		response.Status = statusDegraded
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}
	respondJSON(w, r, statusCode, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// ReadinessCheck returns 200 once a registry is installed.
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if h.reg == nil {
		respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
