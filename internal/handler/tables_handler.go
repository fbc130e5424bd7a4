package handlers

import (
	"net/http"

	"blogcms/internal/response"
)

type HealthResponse struct {
	Status string `json:"status"`
	Tables int    `json:"tables"`
}

// Health reports whether the database answers and how many blog tables exist.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.CountTables(r.Context())
	if err != nil {
		h.logger(r).WithError(err).Error("health check failed")
		response.JSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}

	response.JSON(w, http.StatusOK, HealthResponse{Status: "ok", Tables: count})
}
