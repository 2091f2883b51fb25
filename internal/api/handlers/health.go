package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DirectoryChecker probes the card directory store.
type DirectoryChecker interface {
	Check(ctx context.Context) error
}

type HealthHandler struct {
	directory DirectoryChecker
}

func NewHealthHandler(directory DirectoryChecker) *HealthHandler {
	return &HealthHandler{directory: directory}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.directory.Check(ctx); err != nil {
		checks["card_directory"] = "unhealthy: " + err.Error()
	} else {
		checks["card_directory"] = "healthy"
	}

	status := "healthy"
	for _, check := range checks {
		if len(check) >= 9 && check[:9] == "unhealthy" {
			status = "degraded"
			break
		}
	}

	response := struct {
		Status    string            `json:"status"`
		Timestamp int64             `json:"timestamp"`
		Checks    map[string]string `json:"checks"`
	}{
		Status:    status,
		Timestamp: time.Now().Unix(),
		Checks:    checks,
	}

	statusCode := http.StatusOK
	if status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
