package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LuWes17/infomatik-api/internal/domain"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByContactNumber(ctx context.Context, number string) (*domain.User, error) {
	args := m.Called(ctx, number)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	users, _ := args.Get(0).([]domain.User)
	return users, args.String(1), args.Error(2)
}

func TestUpdateProfileRejectsUnknownBarangay(t *testing.T) {
	store := &mockUserStore{}
	svc := NewService(store)

	bad := "Atlantis"
	_, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{Barangay: &bad})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfileNoFieldsIsARead(t *testing.T) {
	store := &mockUserStore{}
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	svc := NewService(store)

	u, err := svc.UpdateProfile(context.Background(), "u1", domain.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "u1", u.UserID)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{}
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)
	svc := NewService(store)

	err = svc.ChangePassword(context.Background(), "u1", domain.ChangePasswordRequest{
		CurrentPassword: "not the old password",
		NewPassword:     "brand new password",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old password"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &mockUserStore{}
	store.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", PasswordHash: string(hash)}, nil)
	store.On("Update", mock.Anything, "u1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		newHash, ok := updates["password_hash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brand new password")) == nil
	})).Return(nil)
	svc := NewService(store)

	err = svc.ChangePassword(context.Background(), "u1", domain.ChangePasswordRequest{
		CurrentPassword: "old password",
		NewPassword:     "brand new password",
	})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestAdminCreateDuplicateNumber(t *testing.T) {
	store := &mockUserStore{}
	store.On("GetByContactNumber", mock.Anything, "09171234567").
		Return(&domain.User{UserID: "existing"}, nil)
	svc := NewService(store)

	_, err := svc.Create(context.Background(), domain.AdminCreateUserRequest{
		FirstName:     "Maria",
		LastName:      "Santos",
		ContactNumber: "+639171234567",
		Password:      "super secret",
		Barangay:      "Agnas",
		Role:          domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestAdminCreatePreVerified(t *testing.T) {
	store := &mockUserStore{}
	store.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	store.On("Put", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(store)

	u, err := svc.Create(context.Background(), domain.AdminCreateUserRequest{
		FirstName:     "Maria",
		LastName:      "Santos",
		ContactNumber: "09171234567",
		Password:      "super secret",
		Barangay:      "Agnas",
		Role:          domain.RoleAdmin,
	})
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.True(t, u.IsActive)
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, "09171234567", u.ContactNumber)
}
