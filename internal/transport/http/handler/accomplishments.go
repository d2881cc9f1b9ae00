package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	accapp "github.com/LuWes17/infomatik-api/internal/application/accomplishment"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
	"github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

type AccomplishmentHandler struct {
	svc accapp.Service
}

func NewAccomplishmentHandler(svc accapp.Service) *AccomplishmentHandler {
	return &AccomplishmentHandler{svc: svc}
}

func (h *AccomplishmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

func (h *AccomplishmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

// Create expects multipart/form-data: title, description, completedAt fields
// plus zero or more "photos" parts.
func (h *AccomplishmentHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	req := domain.CreateAccomplishmentRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		CompletedAt: r.FormValue("completedAt"),
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}

	var photos []accapp.Photo
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			f, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "unreadable photo upload")
				return
			}
			defer f.Close()
			photos = append(photos, accapp.Photo{Reader: f, Name: header.Filename, Size: header.Size})
		}
	}

	a, err := h.svc.Create(r.Context(), claims.UserID, req, photos)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *AccomplishmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAccomplishmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *AccomplishmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "accomplishment deleted")
}
