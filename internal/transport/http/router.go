package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	accapp "github.com/LuWes17/infomatik-api/internal/application/accomplishment"
	annapp "github.com/LuWes17/infomatik-api/internal/application/announcement"
	"github.com/LuWes17/infomatik-api/internal/application/auth"
	feedbackapp "github.com/LuWes17/infomatik-api/internal/application/feedback"
	fileapp "github.com/LuWes17/infomatik-api/internal/application/file"
	jobapp "github.com/LuWes17/infomatik-api/internal/application/job"
	policyapp "github.com/LuWes17/infomatik-api/internal/application/policy"
	riceapp "github.com/LuWes17/infomatik-api/internal/application/rice"
	solapp "github.com/LuWes17/infomatik-api/internal/application/solicitation"
	statsapp "github.com/LuWes17/infomatik-api/internal/application/stats"
	"github.com/LuWes17/infomatik-api/internal/application/user"
	"github.com/LuWes17/infomatik-api/internal/config"
	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/otp"
	"github.com/LuWes17/infomatik-api/internal/transport/http/handler"
	appmiddleware "github.com/LuWes17/infomatik-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	adminOnly := appmiddleware.RequireRole(domain.RoleAdmin)

	// 5 requests/second with a burst of 10 on the public OTP and login
	// endpoints so a single address cannot drain SMS credits or guess codes.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	pendingStore := otp.NewStore(5*time.Minute, 3)

	fileSvc := fileapp.NewService(deps.S3Store, deps.FileRepo)
	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:     deps.UserRepo,
		PendingStore: pendingStore,
		SMSSender:    deps.SMSSender,
		Tokens:       deps.JWTProvider,
	})
	userSvc := user.NewService(deps.UserRepo)
	jobSvc := jobapp.NewService(jobapp.ServiceDeps{
		JobRepo:         deps.JobRepo,
		ApplicationRepo: deps.ApplicationRepo,
		UserRepo:        deps.UserRepo,
		Files:           fileSvc,
	})
	solSvc := solapp.NewService(solapp.ServiceDeps{
		SolicitationRepo: deps.SolicitationRepo,
		Files:            fileSvc,
		Mailer:           deps.Mailer,
		OfficeEmail:      cfg.OfficeEmail,
	})
	annSvc := annapp.NewService(annapp.ServiceDeps{
		AnnouncementRepo: deps.AnnouncementRepo,
		UserRepo:         deps.UserRepo,
		Files:            fileSvc,
		SMSSender:        deps.SMSSender,
	})
	policySvc := policyapp.NewService(deps.PolicyRepo)
	feedbackSvc := feedbackapp.NewService(feedbackapp.ServiceDeps{
		FeedbackRepo: deps.FeedbackRepo,
		UserRepo:     deps.UserRepo,
		Mailer:       deps.Mailer,
		OfficeEmail:  cfg.OfficeEmail,
	})
	riceSvc := riceapp.NewService(riceapp.ServiceDeps{
		ScheduleRepo: deps.RiceScheduleRepo,
		ClaimRepo:    deps.RiceClaimRepo,
		UserRepo:     deps.UserRepo,
		SMSSender:    deps.SMSSender,
	})
	accSvc := accapp.NewService(deps.AccomplishmentRepo, fileSvc)
	statsSvc := statsapp.NewService(statsapp.ServiceDeps{
		UserRepo:         deps.UserRepo,
		ApplicationRepo:  deps.ApplicationRepo,
		SolicitationRepo: deps.SolicitationRepo,
		FeedbackRepo:     deps.FeedbackRepo,
		ScheduleRepo:     deps.RiceScheduleRepo,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	jobH := handler.NewJobHandler(jobSvc)
	solH := handler.NewSolicitationHandler(solSvc)
	annH := handler.NewAnnouncementHandler(annSvc)
	policyH := handler.NewPolicyHandler(policySvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	riceH := handler.NewRiceHandler(riceSvc)
	accH := handler.NewAccomplishmentHandler(accSvc)
	fileH := handler.NewFileHandler(fileSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	// ── Public routes (no auth) ──────────────────────────────────────────
	r.Get("/health-check/{action}", healthH.Ping)

	r.With(sensitiveRL.Limit).Post("/auth/send-otp", authH.SendOTP)
	r.With(sensitiveRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
	r.With(sensitiveRL.Limit).Post("/auth/resend-otp", authH.ResendOTP)
	r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
	r.Post("/auth/refresh-token", authH.Refresh)

	r.Get("/jobs", jobH.ListOpen)
	r.Get("/jobs/{id}", jobH.GetOpen)
	r.Get("/announcements", annH.ListPublished)
	r.Get("/announcements/{id}", annH.GetPublished)
	r.Get("/policies", policyH.List)
	r.Get("/policies/{id}", policyH.Get)
	r.Get("/feedback", feedbackH.ListApproved)
	r.Get("/accomplishments", accH.List)
	r.Get("/accomplishments/{id}", accH.Get)

	// ── Authenticated routes ─────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/users/me", userH.Me)
		r.Put("/users/me", userH.UpdateMe)
		r.Put("/users/me/password", userH.ChangePassword)

		r.Post("/jobs/{id}/apply", jobH.Apply)
		r.Get("/applications/mine", jobH.ListMyApplications)

		r.Post("/solicitations", solH.Submit)
		r.Get("/solicitations/mine", solH.ListMine)

		r.Post("/feedback", feedbackH.Submit)

		r.Get("/rice/schedules", riceH.ListSchedules)
		r.Get("/rice/schedules/{id}", riceH.GetSchedule)

		r.Post("/files", fileH.Upload)
		r.Get("/files/{id}", fileH.Get)
		r.Delete("/files/{id}", fileH.Delete)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/users", userH.List)
			r.Post("/users", userH.Create)
			r.Put("/users/{id}", userH.Update)
			r.Delete("/users/{id}", userH.Delete)

			r.Get("/admin/jobs", jobH.ListAll)
			r.Post("/jobs", jobH.Create)
			r.Put("/jobs/{id}", jobH.Update)
			r.Delete("/jobs/{id}", jobH.Delete)
			r.Get("/jobs/{id}/applications", jobH.ListApplications)
			r.Put("/applications/{id}", jobH.Review)

			r.Get("/solicitations", solH.List)
			r.Get("/solicitations/{id}", solH.Get)
			r.Put("/solicitations/{id}", solH.Review)

			r.Get("/admin/announcements", annH.ListAll)
			r.Post("/announcements", annH.Create)
			r.Put("/announcements/{id}", annH.Update)
			r.Delete("/announcements/{id}", annH.Delete)

			r.Post("/policies", policyH.Create)
			r.Put("/policies/{id}", policyH.Update)
			r.Delete("/policies/{id}", policyH.Delete)

			r.Get("/admin/feedback", feedbackH.ListAll)
			r.Put("/feedback/{id}", feedbackH.Moderate)

			r.Post("/rice/schedules", riceH.CreateSchedule)
			r.Delete("/rice/schedules/{id}", riceH.DeleteSchedule)
			r.Post("/rice/schedules/{id}/claims", riceH.RecordClaim)
			r.Get("/rice/schedules/{id}/claims", riceH.ListClaims)
			r.Post("/rice/schedules/{id}/reminders", riceH.SendReminders)

			r.Post("/accomplishments", accH.Create)
			r.Put("/accomplishments/{id}", accH.Update)
			r.Delete("/accomplishments/{id}", accH.Delete)

			r.Get("/stats", statsH.Summary)
		})
	})

	return r
}
