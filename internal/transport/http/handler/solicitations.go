package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	solapp "github.com/LuWes17/infomatik-api/internal/application/solicitation"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
	"github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

type SolicitationHandler struct {
	svc solapp.Service
}

func NewSolicitationHandler(svc solapp.Service) *SolicitationHandler {
	return &SolicitationHandler{svc: svc}
}

// Submit expects multipart/form-data: organization, purpose, amount fields
// plus an optional "document" part.
func (h *SolicitationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be a number")
		return
	}
	req := domain.CreateSolicitationRequest{
		Organization: r.FormValue("organization"),
		Purpose:      r.FormValue("purpose"),
		Amount:       amount,
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}

	input := solapp.SubmitInput{RequesterID: claims.UserID, Request: req}
	if f, header, err := r.FormFile("document"); err == nil {
		defer f.Close()
		input.Document = io.Reader(f)
		input.DocumentName = header.Filename
		input.DocumentSize = header.Size
	}

	sol, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, sol)
}

func (h *SolicitationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sols, err := h.svc.ListMine(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, sols)
}

func (h *SolicitationHandler) List(w http.ResponseWriter, r *http.Request) {
	sols, err := h.svc.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, sols)
}

func (h *SolicitationHandler) Get(w http.ResponseWriter, r *http.Request) {
	sol, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, sol)
}

func (h *SolicitationHandler) Review(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ReviewSolicitationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	sol, err := h.svc.Review(r.Context(), chi.URLParam(r, "id"), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, sol)
}
