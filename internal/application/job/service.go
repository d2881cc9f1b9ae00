package job

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/LuWes17/infomatik-api/internal/application/file"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

type ApplyInput struct {
	JobID       string
	ApplicantID string
	Resume      io.Reader
	ResumeName  string
	ResumeSize  int64
}

type Service interface {
	// Citizen-facing reads only surface open postings.
	ListOpen(ctx context.Context) ([]domain.Job, error)
	GetOpen(ctx context.Context, jobID string) (*domain.Job, error)

	Create(ctx context.Context, adminID string, req domain.CreateJobRequest) (*domain.Job, error)
	Update(ctx context.Context, jobID string, req domain.UpdateJobRequest) (*domain.Job, error)
	Delete(ctx context.Context, jobID string) error
	ListAll(ctx context.Context, status string) ([]domain.Job, error)

	Apply(ctx context.Context, input ApplyInput) (*domain.JobApplication, error)
	ListMyApplications(ctx context.Context, applicantID string) ([]domain.JobApplication, error)
	ListApplications(ctx context.Context, jobID string) ([]domain.JobApplication, error)
	Review(ctx context.Context, applicationID string, req domain.ReviewApplicationRequest) (*domain.JobApplication, error)
}

type jobStore interface {
	Put(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	List(ctx context.Context, status string) ([]domain.Job, error)
	Update(ctx context.Context, jobID string, updates map[string]interface{}) error
	Delete(ctx context.Context, jobID string) error
}

type applicationStore interface {
	Put(ctx context.Context, a *domain.JobApplication) error
	Get(ctx context.Context, applicationID string) (*domain.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.JobApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.JobApplication, error)
	Update(ctx context.Context, applicationID string, updates map[string]interface{}) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	jobs         jobStore
	applications applicationStore
	users        userStore
	files        file.Service
}

type ServiceDeps struct {
	JobRepo         jobStore
	ApplicationRepo applicationStore
	UserRepo        userStore
	Files           file.Service
}

func NewService(deps ServiceDeps) Service {
	return &service{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		users:        deps.UserRepo,
		files:        deps.Files,
	}
}

func (s *service) ListOpen(ctx context.Context) ([]domain.Job, error) {
	return s.jobs.List(ctx, domain.JobOpen)
}

func (s *service) GetOpen(ctx context.Context, jobID string) (*domain.Job, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobOpen {
		return nil, fmt.Errorf("job posting not found: %w", domain.ErrNotFound)
	}
	return j, nil
}

func (s *service) Create(ctx context.Context, adminID string, req domain.CreateJobRequest) (*domain.Job, error) {
	now := time.Now().UTC()
	j := &domain.Job{
		JobID:        id.New(),
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		SlotCount:    req.SlotCount,
		Status:       domain.JobOpen,
		PostedBy:     adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobs.Put(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) Update(ctx context.Context, jobID string, req domain.UpdateJobRequest) (*domain.Job, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.SlotCount != nil {
		updates["slot_count"] = *req.SlotCount
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) > 0 {
		if err := s.jobs.Update(ctx, jobID, updates); err != nil {
			return nil, err
		}
	}
	return s.jobs.Get(ctx, jobID)
}

func (s *service) Delete(ctx context.Context, jobID string) error {
	return s.jobs.Delete(ctx, jobID)
}

func (s *service) ListAll(ctx context.Context, status string) ([]domain.Job, error) {
	return s.jobs.List(ctx, status)
}

func (s *service) Apply(ctx context.Context, input ApplyInput) (*domain.JobApplication, error) {
	j, err := s.jobs.Get(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobOpen {
		return nil, fmt.Errorf("job posting is closed: %w", domain.ErrBadRequest)
	}

	// One application per citizen per posting.
	existing, err := s.applications.ListByApplicant(ctx, input.ApplicantID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.JobID == input.JobID {
			return nil, fmt.Errorf("already applied to this posting: %w", domain.ErrConflict)
		}
	}

	applicant, err := s.users.Get(ctx, input.ApplicantID)
	if err != nil {
		return nil, err
	}

	resume, err := s.files.Upload(ctx, file.UploadInput{
		Reader:   input.Resume,
		Filename: input.ResumeName,
		Size:     input.ResumeSize,
		OwnerID:  input.ApplicantID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.JobApplication{
		ApplicationID: id.New(),
		JobID:         input.JobID,
		ApplicantID:   input.ApplicantID,
		FullName:      applicant.FirstName + " " + applicant.LastName,
		ContactNumber: applicant.ContactNumber,
		ResumeFileID:  resume.FileID,
		Status:        domain.ApplicationPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.applications.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListMyApplications(ctx context.Context, applicantID string) ([]domain.JobApplication, error) {
	return s.applications.ListByApplicant(ctx, applicantID)
}

func (s *service) ListApplications(ctx context.Context, jobID string) ([]domain.JobApplication, error) {
	return s.applications.ListByJob(ctx, jobID)
}

func (s *service) Review(ctx context.Context, applicationID string, req domain.ReviewApplicationRequest) (*domain.JobApplication, error) {
	if _, err := s.applications.Get(ctx, applicationID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"status":  req.Status,
		"remarks": req.Remarks,
	}
	if err := s.applications.Update(ctx, applicationID, updates); err != nil {
		return nil, err
	}
	return s.applications.Get(ctx, applicationID)
}
