package handlers

import (
	"net/http"

	"vidmark/internal/httpkit"
)

// Health always answers 200; it does not check dependencies.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpkit.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
