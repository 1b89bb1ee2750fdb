package handlers

import (
	"net/http"
)

// Health reports liveness and storage connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	storage := "ok"
	status := http.StatusOK
	if err := h.DB.Backend().Ping(r.Context()); err != nil {
		storage = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status":  "ok",
		"storage": storage,
	})
}
