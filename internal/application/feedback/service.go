package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/smtp"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
)

type Service interface {
	Submit(ctx context.Context, authorID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error)
	// ListApproved backs the public wall.
	ListApproved(ctx context.Context) ([]domain.Feedback, error)
	ListAll(ctx context.Context, status string) ([]domain.Feedback, error)
	Moderate(ctx context.Context, feedbackID, adminID string, req domain.ModerateFeedbackRequest) (*domain.Feedback, error)
}

type feedbackStore interface {
	Put(ctx context.Context, f *domain.Feedback) error
	Get(ctx context.Context, feedbackID string) (*domain.Feedback, error)
	List(ctx context.Context, status string) ([]domain.Feedback, error)
	Update(ctx context.Context, feedbackID string, updates map[string]interface{}) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	feedback    feedbackStore
	users       userStore
	mailer      smtp.Mailer
	officeEmail string
}

type ServiceDeps struct {
	FeedbackRepo feedbackStore
	UserRepo     userStore
	Mailer       smtp.Mailer
	OfficeEmail  string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		feedback:    deps.FeedbackRepo,
		users:       deps.UserRepo,
		mailer:      deps.Mailer,
		officeEmail: deps.OfficeEmail,
	}
}

func (s *service) Submit(ctx context.Context, authorID string, req domain.CreateFeedbackRequest) (*domain.Feedback, error) {
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	f := &domain.Feedback{
		FeedbackID: id.New(),
		AuthorID:   author.UserID,
		AuthorName: author.FirstName + " " + author.LastName,
		Subject:    req.Subject,
		Message:    req.Message,
		Status:     domain.FeedbackPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.feedback.Put(ctx, f); err != nil {
		return nil, err
	}

	if s.officeEmail != "" {
		body := fmt.Sprintf("New feedback from %s.\n\nSubject: %s\n\n%s\n", f.AuthorName, f.Subject, f.Message)
		if err := s.mailer.SendEmail(s.officeEmail, "New citizen feedback", body); err != nil {
			slog.Warn("office email failed", "feedback_id", f.FeedbackID, "err", err)
		}
	}
	return f, nil
}

func (s *service) ListApproved(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.List(ctx, domain.FeedbackApproved)
}

func (s *service) ListAll(ctx context.Context, status string) ([]domain.Feedback, error) {
	return s.feedback.List(ctx, status)
}

func (s *service) Moderate(ctx context.Context, feedbackID, adminID string, req domain.ModerateFeedbackRequest) (*domain.Feedback, error) {
	if _, err := s.feedback.Get(ctx, feedbackID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{"status": req.Status}
	if req.Reply != "" {
		updates["reply"] = req.Reply
		updates["replied_by"] = adminID
	}
	if err := s.feedback.Update(ctx, feedbackID, updates); err != nil {
		return nil, err
	}
	return s.feedback.Get(ctx, feedbackID)
}
