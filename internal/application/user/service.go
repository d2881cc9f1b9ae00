package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/LuWes17/infomatik-api/internal/pkg/id"
	"github.com/LuWes17/infomatik-api/internal/pkg/phone"
)

const bcryptCost = 12

type Page struct {
	Users      []domain.User `json:"users"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error

	// Admin operations.
	List(ctx context.Context, limit int32, cursor string) (*Page, error)
	Create(ctx context.Context, req domain.AdminCreateUserRequest) (*domain.User, error)
	AdminUpdate(ctx context.Context, userID string, req domain.AdminUpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByContactNumber(ctx context.Context, number string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error)
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Barangay != nil {
		if !domain.IsBarangay(*req.Barangay) {
			return nil, fmt.Errorf("unknown barangay: %w", domain.ErrBadRequest)
		}
		updates["barangay"] = *req.Barangay
	}
	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.users.Get(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)})
}

func (s *service) List(ctx context.Context, limit int32, cursor string) (*Page, error) {
	users, next, err := s.users.ScanPage(ctx, limit, cursor)
	if err != nil {
		return nil, err
	}
	return &Page{Users: users, NextCursor: next}, nil
}

func (s *service) Create(ctx context.Context, req domain.AdminCreateUserRequest) (*domain.User, error) {
	number, ok := phone.Normalize(req.ContactNumber)
	if !ok {
		return nil, fmt.Errorf("invalid contact number: %w", domain.ErrBadRequest)
	}
	if _, err := s.users.GetByContactNumber(ctx, number); err == nil {
		return nil, domain.ErrAlreadyRegistered
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:        id.New(),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		ContactNumber: number,
		PasswordHash:  string(hash),
		Barangay:      req.Barangay,
		Role:          req.Role,
		IsActive:      true,
		IsVerified:    true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) AdminUpdate(ctx context.Context, userID string, req domain.AdminUpdateUserRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Barangay != nil {
		if !domain.IsBarangay(*req.Barangay) {
			return nil, fmt.Errorf("unknown barangay: %w", domain.ErrBadRequest)
		}
		updates["barangay"] = *req.Barangay
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) > 0 {
		if err := s.users.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.users.Get(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
