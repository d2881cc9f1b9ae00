package accomplishment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/LuWes17/infomatik-api/internal/application/file"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

type Photo struct {
	Reader io.Reader
	Name   string
	Size   int64
}

type Service interface {
	List(ctx context.Context) ([]domain.Accomplishment, error)
	Get(ctx context.Context, accomplishmentID string) (*domain.Accomplishment, error)
	Create(ctx context.Context, adminID string, req domain.CreateAccomplishmentRequest, photos []Photo) (*domain.Accomplishment, error)
	Update(ctx context.Context, accomplishmentID string, req domain.UpdateAccomplishmentRequest) (*domain.Accomplishment, error)
	Delete(ctx context.Context, accomplishmentID string) error
}

type accomplishmentStore interface {
	Put(ctx context.Context, a *domain.Accomplishment) error
	Get(ctx context.Context, accomplishmentID string) (*domain.Accomplishment, error)
	List(ctx context.Context) ([]domain.Accomplishment, error)
	Update(ctx context.Context, accomplishmentID string, updates map[string]interface{}) error
	Delete(ctx context.Context, accomplishmentID string) error
}

type service struct {
	accomplishments accomplishmentStore
	files           file.Service
}

func NewService(accomplishments accomplishmentStore, files file.Service) Service {
	return &service{accomplishments: accomplishments, files: files}
}

func (s *service) List(ctx context.Context) ([]domain.Accomplishment, error) {
	return s.accomplishments.List(ctx)
}

func (s *service) Get(ctx context.Context, accomplishmentID string) (*domain.Accomplishment, error) {
	return s.accomplishments.Get(ctx, accomplishmentID)
}

func (s *service) Create(ctx context.Context, adminID string, req domain.CreateAccomplishmentRequest, photos []Photo) (*domain.Accomplishment, error) {
	completed, err := time.Parse("2006-01-02", req.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("completedAt must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}

	var photoIDs []string
	for _, p := range photos {
		uploaded, err := s.files.Upload(ctx, file.UploadInput{
			Reader:   p.Reader,
			Filename: p.Name,
			Size:     p.Size,
			OwnerID:  adminID,
		})
		if err != nil {
			return nil, err
		}
		photoIDs = append(photoIDs, uploaded.FileID)
	}

	now := time.Now().UTC()
	a := &domain.Accomplishment{
		AccomplishmentID: id.New(),
		Title:            req.Title,
		Description:      req.Description,
		PhotoFileIDs:     photoIDs,
		CompletedAt:      completed,
		PostedBy:         adminID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.accomplishments.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, accomplishmentID string, req domain.UpdateAccomplishmentRequest) (*domain.Accomplishment, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := s.accomplishments.Update(ctx, accomplishmentID, updates); err != nil {
			return nil, err
		}
	}
	return s.accomplishments.Get(ctx, accomplishmentID)
}

func (s *service) Delete(ctx context.Context, accomplishmentID string) error {
	return s.accomplishments.Delete(ctx, accomplishmentID)
}
