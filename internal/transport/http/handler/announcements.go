package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	annapp "github.com/LuWes17/infomatik-api/internal/application/announcement"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
	"github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

type AnnouncementHandler struct {
	svc annapp.Service
}

func NewAnnouncementHandler(svc annapp.Service) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

func (h *AnnouncementHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	anns, err := h.svc.ListPublished(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, anns)
}

func (h *AnnouncementHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.GetPublished(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *AnnouncementHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	anns, err := h.svc.ListAll(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, anns)
}

// Create expects multipart/form-data: title, body, notifySMS fields plus an
// optional "image" part.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	req := domain.CreateAnnouncementRequest{
		Title:     r.FormValue("title"),
		Body:      r.FormValue("body"),
		NotifySMS: r.FormValue("notifySMS") == "true",
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}

	input := annapp.CreateInput{AdminID: claims.UserID, Request: req}
	if f, header, err := r.FormFile("image"); err == nil {
		defer f.Close()
		input.Image = io.Reader(f)
		input.ImageName = header.Filename
		input.ImageSize = header.Size
	}

	a, err := h.svc.Create(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateAnnouncementRequest
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

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "announcement deleted")
}
