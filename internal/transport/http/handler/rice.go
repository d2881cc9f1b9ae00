package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	riceapp "github.com/LuWes17/infomatik-api/internal/application/rice"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
	"github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

type RiceHandler struct {
	svc riceapp.Service
}

func NewRiceHandler(svc riceapp.Service) *RiceHandler { return &RiceHandler{svc: svc} }

// ListSchedules scopes citizens to their own barangay; admins may pass
// ?barangay= or omit it to see everything.
func (h *RiceHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var (
		schedules []domain.RiceSchedule
		err       error
	)
	if claims.Role == domain.RoleAdmin {
		schedules, err = h.svc.ListSchedules(r.Context(), r.URL.Query().Get("barangay"))
	} else {
		schedules, err = h.svc.ListSchedulesForCitizen(r.Context(), claims.UserID)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, schedules)
}

func (h *RiceHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSchedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, s)
}

func (h *RiceHandler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateRiceScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	s, err := h.svc.CreateSchedule(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, s)
}

func (h *RiceHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "schedule deleted")
}

func (h *RiceHandler) RecordClaim(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.RecordRiceClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	c, err := h.svc.RecordClaim(r.Context(), chi.URLParam(r, "id"), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (h *RiceHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListClaims(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *RiceHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.svc.SendReminders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"sent": sent})
}
