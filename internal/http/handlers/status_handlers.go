package handlers

import (
	"net/http"
	"time"
)

// StatusHandler godoc
// @Summary Database connectivity check
// @Description Runs a trivial query against the database and reports the outcome.
// @Tags status
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} StatusResponse
// @Router /api/status [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Timestamp: time.Now().UTC(),
		Database:  DatabaseStatus{URL: "(configurada)"},
	}

	serverTime, err := h.productRepo.Ping(r.Context())
	if err != nil {
		h.logger.Error("database status check failed", "error", err)
		resp.Error = err.Error()
		resp.Database.Connection = "error"
		h.writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	resp.Success = true
	resp.Message = "Conexión a la base de datos establecida correctamente"
	resp.Database.Connection = "activa"
	resp.Database.ServerTime = &serverTime

	if n, err := h.productRepo.Count(r.Context()); err != nil {
		h.logger.Warn("could not count products", "error", err)
	} else {
		resp.Database.ProductCount = &n
	}

	h.writeJSON(w, http.StatusOK, resp)
}
