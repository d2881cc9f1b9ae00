package stats

import (
	"context"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
)

// Summary is the admin dashboard snapshot.
type Summary struct {
	Users                int `json:"users"`
	PendingApplications  int `json:"pendingApplications"`
	PendingSolicitations int `json:"pendingSolicitations"`
	PendingFeedback      int `json:"pendingFeedback"`
	UpcomingSchedules    int `json:"upcomingSchedules"`
}

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

type statusCounter interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

type scheduleLister interface {
	List(ctx context.Context, barangay string) ([]domain.RiceSchedule, error)
}

type service struct {
	users         userCounter
	applications  statusCounter
	solicitations statusCounter
	feedback      statusCounter
	schedules     scheduleLister
}

type ServiceDeps struct {
	UserRepo         userCounter
	ApplicationRepo  statusCounter
	SolicitationRepo statusCounter
	FeedbackRepo     statusCounter
	ScheduleRepo     scheduleLister
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:         deps.UserRepo,
		applications:  deps.ApplicationRepo,
		solicitations: deps.SolicitationRepo,
		feedback:      deps.FeedbackRepo,
		schedules:     deps.ScheduleRepo,
	}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	out := &Summary{}

	var err error
	if out.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.PendingApplications, err = s.applications.CountByStatus(ctx, domain.ApplicationPending); err != nil {
		return nil, err
	}
	if out.PendingSolicitations, err = s.solicitations.CountByStatus(ctx, domain.SolicitationPending); err != nil {
		return nil, err
	}
	if out.PendingFeedback, err = s.feedback.CountByStatus(ctx, domain.FeedbackPending); err != nil {
		return nil, err
	}

	schedules, err := s.schedules.List(ctx, "")
	if err != nil {
		return nil, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, sched := range schedules {
		if !sched.Date.Before(today) {
			out.UpcomingSchedules++
		}
	}
	return out, nil
}
