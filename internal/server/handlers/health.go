package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// Health reports process liveness. The service has no hard backing stores;
// if the process answers, it is healthy.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   AppVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
