package rice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/sns"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
	"github.com/LuWes17/infomatik-api/internal/pkg/phone"
)

type Service interface {
	CreateSchedule(ctx context.Context, adminID string, req domain.CreateRiceScheduleRequest) (*domain.RiceSchedule, error)
	// ListSchedules with barangay "" returns everything.
	ListSchedules(ctx context.Context, barangay string) ([]domain.RiceSchedule, error)
	// ListSchedulesForCitizen scopes the list to the citizen's own barangay.
	ListSchedulesForCitizen(ctx context.Context, userID string) ([]domain.RiceSchedule, error)
	GetSchedule(ctx context.Context, scheduleID string) (*domain.RiceSchedule, error)
	DeleteSchedule(ctx context.Context, scheduleID string) error

	RecordClaim(ctx context.Context, scheduleID, adminID string, req domain.RecordRiceClaimRequest) (*domain.RiceClaim, error)
	ListClaims(ctx context.Context, scheduleID string) ([]domain.RiceClaim, error)

	// SendReminders texts the schedule's barangay and returns the count sent.
	SendReminders(ctx context.Context, scheduleID string) (int, error)
}

type scheduleStore interface {
	Put(ctx context.Context, s *domain.RiceSchedule) error
	Get(ctx context.Context, scheduleID string) (*domain.RiceSchedule, error)
	List(ctx context.Context, barangay string) ([]domain.RiceSchedule, error)
	Update(ctx context.Context, scheduleID string, updates map[string]interface{}) error
	Delete(ctx context.Context, scheduleID string) error
}

type claimStore interface {
	Put(ctx context.Context, c *domain.RiceClaim) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]domain.RiceClaim, error)
}

type contactLister interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	ListActiveContactNumbers(ctx context.Context, barangay string) ([]string, error)
}

type service struct {
	schedules scheduleStore
	claims    claimStore
	contacts  contactLister
	sms       sns.SMSSender
}

type ServiceDeps struct {
	ScheduleRepo scheduleStore
	ClaimRepo    claimStore
	UserRepo     contactLister
	SMSSender    sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		schedules: deps.ScheduleRepo,
		claims:    deps.ClaimRepo,
		contacts:  deps.UserRepo,
		sms:       deps.SMSSender,
	}
}

func (s *service) CreateSchedule(ctx context.Context, adminID string, req domain.CreateRiceScheduleRequest) (*domain.RiceSchedule, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	sched := &domain.RiceSchedule{
		ScheduleID:   id.New(),
		Barangay:     req.Barangay,
		Location:     req.Location,
		Date:         date,
		KilosPerHead: req.KilosPerHead,
		Notes:        req.Notes,
		CreatedBy:    adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.schedules.Put(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *service) ListSchedules(ctx context.Context, barangay string) ([]domain.RiceSchedule, error) {
	if barangay != "" && !domain.IsBarangay(barangay) {
		return nil, fmt.Errorf("unknown barangay: %w", domain.ErrBadRequest)
	}
	return s.schedules.List(ctx, barangay)
}

func (s *service) ListSchedulesForCitizen(ctx context.Context, userID string) ([]domain.RiceSchedule, error) {
	u, err := s.contacts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.schedules.List(ctx, u.Barangay)
}

func (s *service) GetSchedule(ctx context.Context, scheduleID string) (*domain.RiceSchedule, error) {
	return s.schedules.Get(ctx, scheduleID)
}

func (s *service) DeleteSchedule(ctx context.Context, scheduleID string) error {
	return s.schedules.Delete(ctx, scheduleID)
}

func (s *service) RecordClaim(ctx context.Context, scheduleID, adminID string, req domain.RecordRiceClaimRequest) (*domain.RiceClaim, error) {
	if _, err := s.schedules.Get(ctx, scheduleID); err != nil {
		return nil, err
	}

	// One claim per beneficiary per schedule.
	existing, err := s.claims.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.BeneficiaryID == req.BeneficiaryID {
			return nil, fmt.Errorf("beneficiary already claimed on this schedule: %w", domain.ErrConflict)
		}
	}

	claim := &domain.RiceClaim{
		ClaimID:       id.New(),
		ScheduleID:    scheduleID,
		BeneficiaryID: req.BeneficiaryID,
		Kilos:         req.Kilos,
		RecordedBy:    adminID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.claims.Put(ctx, claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *service) ListClaims(ctx context.Context, scheduleID string) ([]domain.RiceClaim, error) {
	return s.claims.ListBySchedule(ctx, scheduleID)
}

func (s *service) SendReminders(ctx context.Context, scheduleID string) (int, error) {
	sched, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return 0, err
	}
	numbers, err := s.contacts.ListActiveContactNumbers(ctx, sched.Barangay)
	if err != nil {
		return 0, err
	}
	for i := range numbers {
		numbers[i] = phone.ToE164(numbers[i])
	}
	msg := fmt.Sprintf("Rice distribution for Brgy. %s on %s at %s. %.1f kg per household.",
		sched.Barangay, sched.Date.Format("Jan 2, 2006"), sched.Location, sched.KilosPerHead)
	sent := s.sms.SendBulkSMS(ctx, numbers, msg)

	if err := s.schedules.Update(ctx, scheduleID, map[string]interface{}{"sms_notified": true}); err != nil {
		slog.Warn("failed to flag schedule as notified", "schedule_id", scheduleID, "err", err)
	}
	return sent, nil
}
