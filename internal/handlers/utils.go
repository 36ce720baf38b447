package handlers

import (
	"encoding/json"
	"net/http"

	"mime-registry/internal/logging"
)

// respondJSON writes v as JSON with the given status code. HEAD requests
// get the headers only. Encoding errors are logged since the status line
// is already on the wire.
func respondJSON(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if r != nil && r.Method == http.MethodHead {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSON writes v as a 200 JSON response.
func writeJSON(w http.ResponseWriter, v interface{}) {
	respondJSON(w, nil, http.StatusOK, v)
}

// writeJSONError writes {"error": message} with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, nil, statusCode, map[string]string{"error": message})
}
