package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LuWes17/infomatik-api/internal/domain"
	jwtinfra "github.com/LuWes17/infomatik-api/internal/infrastructure/jwt"
	"github.com/LuWes17/infomatik-api/internal/infrastructure/sns"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
	"github.com/LuWes17/infomatik-api/internal/pkg/otp"
	"github.com/LuWes17/infomatik-api/internal/pkg/phone"
)

// bcryptCost is deliberately above the library default; registration is rare
// enough that the extra hashing time is irrelevant, offline cracking is not.
const bcryptCost = 12

type SendOTPResult struct {
	MaskedNumber string `json:"maskedNumber"`
	ExpiresIn    int    `json:"expiresIn"` // seconds
}

type AuthResult struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

type Service interface {
	// SendOTP stores a pending registration and dispatches its code.
	SendOTP(ctx context.Context, req domain.RegistrationRequest) (*SendOTPResult, error)
	// VerifyOTP finalizes registration: checks the code, persists the user,
	// and issues a token pair.
	VerifyOTP(ctx context.Context, contactNumber, code string) (*AuthResult, error)
	// ResendOTP issues a fresh code for an existing pending registration.
	ResendOTP(ctx context.Context, contactNumber string) (*SendOTPResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error)
	// Refresh trades a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByContactNumber(ctx context.Context, number string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	SignAccess(userID, role string) (string, error)
	SignRefresh(userID string) (string, error)
	VerifyRefresh(tokenStr string) (*jwtinfra.Claims, error)
}

type service struct {
	users   userStore
	pending *otp.Store
	sms     sns.SMSSender
	tokens  tokenSigner
}

type ServiceDeps struct {
	UserRepo     userStore
	PendingStore *otp.Store
	SMSSender    sns.SMSSender
	Tokens       tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:   deps.UserRepo,
		pending: deps.PendingStore,
		sms:     deps.SMSSender,
		tokens:  deps.Tokens,
	}
}

func (s *service) SendOTP(ctx context.Context, req domain.RegistrationRequest) (*SendOTPResult, error) {
	number, ok := phone.Normalize(req.ContactNumber)
	if !ok {
		return nil, fmt.Errorf("invalid contact number: %w", domain.ErrBadRequest)
	}
	if !domain.IsBarangay(req.Barangay) {
		return nil, fmt.Errorf("unknown barangay: %w", domain.ErrBadRequest)
	}
	if _, err := s.users.GetByContactNumber(ctx, number); err == nil {
		return nil, domain.ErrAlreadyRegistered
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	req.ContactNumber = number
	s.pending.Put(number, code, req)

	result := &SendOTPResult{
		MaskedNumber: phone.Mask(number),
		ExpiresIn:    int(s.pending.Expiry().Seconds()),
	}

	// The pending record survives a failed dispatch so the citizen can hit
	// resend instead of starting over.
	if err := s.sms.SendSMS(ctx, phone.ToE164(number), otpMessage(code)); err != nil {
		slog.Warn("OTP dispatch failed", "to", phone.Mask(number), "err", err)
		return nil, domain.ErrSMSDelivery
	}
	return result, nil
}

func (s *service) VerifyOTP(ctx context.Context, contactNumber, code string) (*AuthResult, error) {
	number, ok := phone.Normalize(contactNumber)
	if !ok {
		return nil, fmt.Errorf("invalid contact number: %w", domain.ErrBadRequest)
	}

	payload, err := s.pending.Verify(number, code)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	// Two concurrent registrations for the same number can both pass the
	// send-otp check; the loser is caught here.
	if _, err := s.users.GetByContactNumber(ctx, number); err == nil {
		s.pending.Delete(number)
		return nil, domain.ErrAlreadyRegistered
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		ContactNumber: number,
		PasswordHash:  string(hash),
		Barangay:      payload.Barangay,
		Role:          domain.RoleCitizen,
		IsActive:      true,
		IsVerified:    true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	s.pending.Delete(number)

	return s.issueTokens(u)
}

func (s *service) ResendOTP(ctx context.Context, contactNumber string) (*SendOTPResult, error) {
	number, ok := phone.Normalize(contactNumber)
	if !ok {
		return nil, fmt.Errorf("invalid contact number: %w", domain.ErrBadRequest)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	if _, err := s.pending.Reset(number, code); err != nil {
		return nil, err
	}

	if err := s.sms.SendSMS(ctx, phone.ToE164(number), otpMessage(code)); err != nil {
		slog.Warn("OTP redispatch failed", "to", phone.Mask(number), "err", err)
		return nil, domain.ErrSMSDelivery
	}
	return &SendOTPResult{
		MaskedNumber: phone.Mask(number),
		ExpiresIn:    int(s.pending.Expiry().Seconds()),
	}, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error) {
	number, ok := phone.Normalize(req.ContactNumber)
	if !ok {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.GetByContactNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account deactivated: %w", domain.ErrUnauthorized)
	}

	now := time.Now().UTC()
	if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"last_login": now.Format(time.RFC3339)}); err != nil {
		slog.Warn("failed to record last login", "user_id", u.UserID, "err", err)
	}
	u.LastLogin = &now

	return s.issueTokens(u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", fmt.Errorf("invalid or expired refresh token: %w", domain.ErrUnauthorized)
	}
	u, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("invalid or expired refresh token: %w", domain.ErrUnauthorized)
	}
	if !u.IsActive {
		return "", fmt.Errorf("account deactivated: %w", domain.ErrUnauthorized)
	}
	return s.tokens.SignAccess(u.UserID, u.Role)
}

func (s *service) issueTokens(u *domain.User) (*AuthResult, error) {
	access, err := s.tokens.SignAccess(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(u.UserID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, AccessToken: access, RefreshToken: refresh}, nil
}

// generateCode returns a uniformly random 6-digit numeric string; leading
// zeros are allowed.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func otpMessage(code string) string {
	return "Your verification code is " + code + ". It expires in 5 minutes."
}
