package sns

import (
	"context"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/LuWes17/infomatik-api/internal/config"
)

// SMSSender dispatches SMS messages. Numbers are E.164 (+639XXXXXXXXX).
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
	// SendBulkSMS delivers message to every number, skipping failures.
	// Returns the count of successful sends.
	SendBulkSMS(ctx context.Context, to []string, message string) int
}

type sender struct {
	client *sns.Client
}

// NewSender creates an SNS-backed SMSSender.
func NewSender(cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
	})
	return err
}

func (s *sender) SendBulkSMS(ctx context.Context, to []string, message string) int {
	sent := 0
	for _, number := range to {
		if err := s.SendSMS(ctx, number, message); err != nil {
			slog.Warn("bulk SMS send failed", "to", number, "err", err)
			continue
		}
		sent++
	}
	return sent
}

// ConsoleSender logs messages instead of dispatching them. Used outside
// production so the OTP shows up in the server log.
type ConsoleSender struct{}

func (ConsoleSender) SendSMS(_ context.Context, to, message string) error {
	slog.Info("SMS (console)", "to", to, "message", message)
	return nil
}

func (ConsoleSender) SendBulkSMS(_ context.Context, to []string, message string) int {
	slog.Info("bulk SMS (console)", "recipients", len(to), "message", message)
	return len(to)
}
