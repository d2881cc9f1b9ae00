package solicitation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/LuWes17/infomatik-api/internal/application/file"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/smtp"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

type SubmitInput struct {
	RequesterID  string
	Request      domain.CreateSolicitationRequest
	Document     io.Reader // optional supporting document
	DocumentName string
	DocumentSize int64
}

type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Solicitation, error)
	ListMine(ctx context.Context, requesterID string) ([]domain.Solicitation, error)
	List(ctx context.Context, status string) ([]domain.Solicitation, error)
	Get(ctx context.Context, solicitationID string) (*domain.Solicitation, error)
	Review(ctx context.Context, solicitationID, reviewerID string, req domain.ReviewSolicitationRequest) (*domain.Solicitation, error)
}

type solicitationStore interface {
	Put(ctx context.Context, s *domain.Solicitation) error
	Get(ctx context.Context, solicitationID string) (*domain.Solicitation, error)
	List(ctx context.Context, status string) ([]domain.Solicitation, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Solicitation, error)
	Update(ctx context.Context, solicitationID string, updates map[string]interface{}) error
}

type service struct {
	solicitations solicitationStore
	files         file.Service
	mailer        smtp.Mailer
	officeEmail   string
}

type ServiceDeps struct {
	SolicitationRepo solicitationStore
	Files            file.Service
	Mailer           smtp.Mailer
	OfficeEmail      string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		solicitations: deps.SolicitationRepo,
		files:         deps.Files,
		mailer:        deps.Mailer,
		officeEmail:   deps.OfficeEmail,
	}
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*domain.Solicitation, error) {
	var documentFileID string
	if input.Document != nil {
		doc, err := s.files.Upload(ctx, file.UploadInput{
			Reader:   input.Document,
			Filename: input.DocumentName,
			Size:     input.DocumentSize,
			OwnerID:  input.RequesterID,
		})
		if err != nil {
			return nil, err
		}
		documentFileID = doc.FileID
	}

	now := time.Now().UTC()
	sol := &domain.Solicitation{
		SolicitationID: id.New(),
		RequesterID:    input.RequesterID,
		Organization:   input.Request.Organization,
		Purpose:        input.Request.Purpose,
		Amount:         input.Request.Amount,
		DocumentFileID: documentFileID,
		Status:         domain.SolicitationPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.solicitations.Put(ctx, sol); err != nil {
		return nil, err
	}

	// The office copy is best effort; the request is already on record.
	if s.officeEmail != "" {
		body := fmt.Sprintf(
			"New solicitation request from %s.\n\nPurpose: %s\nAmount: PHP %.2f\nReference: %s\n",
			sol.Organization, sol.Purpose, sol.Amount, sol.SolicitationID,
		)
		if err := s.mailer.SendEmail(s.officeEmail, "New solicitation request", body); err != nil {
			slog.Warn("office email failed", "solicitation_id", sol.SolicitationID, "err", err)
		}
	}
	return sol, nil
}

func (s *service) ListMine(ctx context.Context, requesterID string) ([]domain.Solicitation, error) {
	return s.solicitations.ListByRequester(ctx, requesterID)
}

func (s *service) List(ctx context.Context, status string) ([]domain.Solicitation, error) {
	return s.solicitations.List(ctx, status)
}

func (s *service) Get(ctx context.Context, solicitationID string) (*domain.Solicitation, error) {
	return s.solicitations.Get(ctx, solicitationID)
}

func (s *service) Review(ctx context.Context, solicitationID, reviewerID string, req domain.ReviewSolicitationRequest) (*domain.Solicitation, error) {
	sol, err := s.solicitations.Get(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	if sol.Status != domain.SolicitationPending {
		return nil, fmt.Errorf("solicitation already reviewed: %w", domain.ErrConflict)
	}
	updates := map[string]interface{}{
		"status":      req.Status,
		"remarks":     req.Remarks,
		"reviewed_by": reviewerID,
	}
	if err := s.solicitations.Update(ctx, solicitationID, updates); err != nil {
		return nil, err
	}
	return s.solicitations.Get(ctx, solicitationID)
}
