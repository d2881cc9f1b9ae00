package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/LuWes17/infomatik-api/internal/config"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/LuWes17/infomatik-api/internal/infrastructure/jwt"
	s3infra "github.com/LuWes17/infomatik-api/internal/infrastructure/s3"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/smtp"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/sns"
	transporthttp "github.com/LuWes17/infomatik-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	mailer := smtp.NewMailer(cfg)

	// Outbound SMS: SNS in production, console echo everywhere else.
	var smsSender sns.SMSSender
	if cfg.SMSProvider == "sns" {
		sender, err := sns.NewSender(cfg)
		if err != nil {
			log.Fatalf("SNS sender: %v", err)
		}
		smsSender = sender
	} else {
		smsSender = sns.ConsoleSender{}
		log.Println("SMS_PROVIDER != sns; codes will be logged, not sent")
	}

	tables := cfg.DynamoTables
	deps := &transporthttp.Deps{
		UserRepo:           dynamo.NewUserRepo(dynamoClient, tables.Users),
		JobRepo:            dynamo.NewJobRepo(dynamoClient, tables.Jobs),
		ApplicationRepo:    dynamo.NewApplicationRepo(dynamoClient, tables.JobApplications),
		SolicitationRepo:   dynamo.NewSolicitationRepo(dynamoClient, tables.Solicitations),
		AnnouncementRepo:   dynamo.NewAnnouncementRepo(dynamoClient, tables.Announcements),
		PolicyRepo:         dynamo.NewPolicyRepo(dynamoClient, tables.Policies),
		FeedbackRepo:       dynamo.NewFeedbackRepo(dynamoClient, tables.Feedback),
		RiceScheduleRepo:   dynamo.NewRiceScheduleRepo(dynamoClient, tables.RiceSchedules),
		RiceClaimRepo:      dynamo.NewRiceClaimRepo(dynamoClient, tables.RiceClaims),
		AccomplishmentRepo: dynamo.NewAccomplishmentRepo(dynamoClient, tables.Accomplishments),
		FileRepo:           dynamo.NewFileRepo(dynamoClient, tables.Files),
		S3Store:            s3Store,
		Mailer:             mailer,
		SMSSender:          smsSender,
		JWTProvider:        jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
