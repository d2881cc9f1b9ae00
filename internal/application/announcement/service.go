package announcement

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/LuWes17/infomatik-api/internal/application/file"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/sns"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
	"github.com/LuWes17/infomatik-api/internal/pkg/phone"
)

type CreateInput struct {
	AdminID   string
	Request   domain.CreateAnnouncementRequest
	Image     io.Reader // optional
	ImageName string
	ImageSize int64
}

type Service interface {
	// ListPublished and GetPublished back the public feed.
	ListPublished(ctx context.Context) ([]domain.Announcement, error)
	GetPublished(ctx context.Context, announcementID string) (*domain.Announcement, error)

	Create(ctx context.Context, input CreateInput) (*domain.Announcement, error)
	Update(ctx context.Context, announcementID string, req domain.UpdateAnnouncementRequest) (*domain.Announcement, error)
	Delete(ctx context.Context, announcementID string) error
	ListAll(ctx context.Context) ([]domain.Announcement, error)
}

type announcementStore interface {
	Put(ctx context.Context, a *domain.Announcement) error
	Get(ctx context.Context, announcementID string) (*domain.Announcement, error)
	List(ctx context.Context, publishedOnly bool) ([]domain.Announcement, error)
	Update(ctx context.Context, announcementID string, updates map[string]interface{}) error
	Delete(ctx context.Context, announcementID string) error
}

type contactLister interface {
	ListActiveContactNumbers(ctx context.Context, barangay string) ([]string, error)
}

type service struct {
	announcements announcementStore
	contacts      contactLister
	files         file.Service
	sms           sns.SMSSender
}

type ServiceDeps struct {
	AnnouncementRepo announcementStore
	UserRepo         contactLister
	Files            file.Service
	SMSSender        sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		announcements: deps.AnnouncementRepo,
		contacts:      deps.UserRepo,
		files:         deps.Files,
		sms:           deps.SMSSender,
	}
}

func (s *service) ListPublished(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx, true)
}

func (s *service) GetPublished(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	a, err := s.announcements.Get(ctx, announcementID)
	if err != nil {
		return nil, err
	}
	if !a.Published {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*domain.Announcement, error) {
	var imageFileID string
	if input.Image != nil {
		img, err := s.files.Upload(ctx, file.UploadInput{
			Reader:   input.Image,
			Filename: input.ImageName,
			Size:     input.ImageSize,
			OwnerID:  input.AdminID,
		})
		if err != nil {
			return nil, err
		}
		imageFileID = img.FileID
	}

	now := time.Now().UTC()
	a := &domain.Announcement{
		AnnouncementID: id.New(),
		Title:          input.Request.Title,
		Body:           input.Request.Body,
		ImageFileID:    imageFileID,
		Published:      true,
		PostedBy:       input.AdminID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.announcements.Put(ctx, a); err != nil {
		return nil, err
	}

	if input.Request.NotifySMS {
		s.broadcast(ctx, a)
	}
	return a, nil
}

// broadcast sends the announcement title to every active, verified citizen.
// Delivery is best effort; the announcement itself is already saved.
func (s *service) broadcast(ctx context.Context, a *domain.Announcement) {
	numbers, err := s.contacts.ListActiveContactNumbers(ctx, "")
	if err != nil {
		slog.Warn("announcement broadcast skipped", "announcement_id", a.AnnouncementID, "err", err)
		return
	}
	for i := range numbers {
		numbers[i] = phone.ToE164(numbers[i])
	}
	sent := s.sms.SendBulkSMS(ctx, numbers, "Announcement: "+a.Title)
	slog.Info("announcement broadcast", "announcement_id", a.AnnouncementID, "recipients", len(numbers), "sent", sent)

	if err := s.announcements.Update(ctx, a.AnnouncementID, map[string]interface{}{"sms_notified": true}); err != nil {
		slog.Warn("failed to flag announcement as notified", "announcement_id", a.AnnouncementID, "err", err)
		return
	}
	a.SMSNotified = true
}

func (s *service) Update(ctx context.Context, announcementID string, req domain.UpdateAnnouncementRequest) (*domain.Announcement, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Body != nil {
		updates["body"] = *req.Body
	}
	if req.Published != nil {
		updates["published"] = *req.Published
	}
	if len(updates) > 0 {
		if err := s.announcements.Update(ctx, announcementID, updates); err != nil {
			return nil, err
		}
	}
	return s.announcements.Get(ctx, announcementID)
}

func (s *service) Delete(ctx context.Context, announcementID string) error {
	return s.announcements.Delete(ctx, announcementID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx, false)
}
