package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler handles health-check endpoints.
type HealthHandler struct {
	// Stats is optional and reports live verification entries.
	Stats func() int
}

func NewHealthHandler(stats func() int) *HealthHandler { return &HealthHandler{Stats: stats} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "ping":
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "pong"})
	case "stats":
		n := 0
		if h.Stats != nil {
			n = h.Stats()
		}
		writeJSON(w, http.StatusOK, map[string]int{"pending_verifications": n})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
