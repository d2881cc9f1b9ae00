package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	jobapp "github.com/LuWes17/infomatik-api/internal/application/job"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/validate"
	"github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

// maxUploadBytes caps multipart bodies (resumes, images) at 10 MB.
const maxUploadBytes = 10 << 20

type JobHandler struct {
	svc jobapp.Service
}

func NewJobHandler(svc jobapp.Service) *JobHandler { return &JobHandler{svc: svc} }

func (h *JobHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListOpen(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, jobs)
}

func (h *JobHandler) GetOpen(w http.ResponseWriter, r *http.Request) {
	j, err := h.svc.GetOpen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (h *JobHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListAll(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, jobs)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	j, err := h.svc.Create(r.Context(), claims.UserID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, j)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	j, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, j)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "job posting deleted")
}

// Apply expects multipart/form-data with a "resume" part.
func (h *JobHandler) Apply(w http.ResponseWriter, r *http.Request) {
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
	f, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer f.Close()

	a, err := h.svc.Apply(r.Context(), jobapp.ApplyInput{
		JobID:       chi.URLParam(r, "id"),
		ApplicantID: claims.UserID,
		Resume:      f,
		ResumeName:  header.Filename,
		ResumeSize:  header.Size,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusCreated, a)
}

func (h *JobHandler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.ListMyApplications(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *JobHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, apps)
}

func (h *JobHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req domain.ReviewApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, err)
		return
	}
	a, err := h.svc.Review(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, a)
}
