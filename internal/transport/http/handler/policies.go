package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	policyapp "github.com/LuWes17/infomatik-api/internal/application/policy"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
)

type PolicyHandler struct {
	svc policyapp.Service
}

func NewPolicyHandler(svc policyapp.Service) *PolicyHandler { return &PolicyHandler{svc: svc} }

func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	policies, err := h.svc.List(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, policies)
}

func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *PolicyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePolicyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	p, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

func (h *PolicyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdatePolicyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

func (h *PolicyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "policy deleted")
}
