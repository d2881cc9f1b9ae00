package http

import (
	"github.com/LuWes17/infomatik-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/LuWes17/infomatik-api/internal/infrastructure/jwt"
	s3infra "github.com/LuWes17/infomatik-api/internal/infrastructure/s3"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/smtp"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo           *dynamo.UserRepo
	JobRepo            *dynamo.JobRepo
	ApplicationRepo    *dynamo.ApplicationRepo
	SolicitationRepo   *dynamo.SolicitationRepo
	AnnouncementRepo   *dynamo.AnnouncementRepo
	PolicyRepo         *dynamo.PolicyRepo
	FeedbackRepo       *dynamo.FeedbackRepo
	RiceScheduleRepo   *dynamo.RiceScheduleRepo
	RiceClaimRepo      *dynamo.RiceClaimRepo
	AccomplishmentRepo *dynamo.AccomplishmentRepo
	FileRepo           *dynamo.FileRepo
	S3Store            *s3infra.Store
	Mailer             smtp.Mailer
	SMSSender          sns.SMSSender
	JWTProvider        *jwtinfra.Provider
}
