package handler

import (
	"net/http"

	statsapp "github.com/LuWes17/infomatik-api/internal/application/stats"
)

type StatsHandler struct {
	svc statsapp.Service
}

func NewStatsHandler(svc statsapp.Service) *StatsHandler { return &StatsHandler{svc: svc} }

func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}
