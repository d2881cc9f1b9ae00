package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/LuWes17/infomatik-api/internal/domain"
	jwtinfra "github.com/LuWes17/infomatik-api/internal/infrastructure/jwt"
	"github.com/LuWes17/infomatik-api/internal/pkg/otp"
)

// --- mocks ---

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

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, to, message string) error {
	return m.Called(ctx, to, message).Error(0)
}
func (m *mockSMSSender) SendBulkSMS(ctx context.Context, to []string, message string) int {
	return m.Called(ctx, to, message).Int(0)
}

type mockTokenSigner struct{ mock.Mock }

func (m *mockTokenSigner) SignAccess(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}
func (m *mockTokenSigner) SignRefresh(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}
func (m *mockTokenSigner) VerifyRefresh(tokenStr string) (*jwtinfra.Claims, error) {
	args := m.Called(tokenStr)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

type fixture struct {
	users   *mockUserStore
	sms     *mockSMSSender
	tokens  *mockTokenSigner
	pending *otp.Store
	svc     Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:   &mockUserStore{},
		sms:     &mockSMSSender{},
		tokens:  &mockTokenSigner{},
		pending: otp.NewStore(5*time.Minute, 3),
	}
	f.svc = NewService(ServiceDeps{
		UserRepo:     f.users,
		PendingStore: f.pending,
		SMSSender:    f.sms,
		Tokens:       f.tokens,
	})
	return f
}

func validRegistration() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		ContactNumber: "09171234567",
		Password:      "correct horse",
		Barangay:      "Agnas",
	}
}

// sentCode pulls the 6-digit code out of the SMS body the sender mock saw.
func sentCode(t *testing.T, sms *mockSMSSender) string {
	t.Helper()
	require.NotEmpty(t, sms.Calls)
	body := sms.Calls[len(sms.Calls)-1].Arguments.String(2)
	require.Regexp(t, `\d{6}`, body)
	for i := 0; i+6 <= len(body); i++ {
		if isSixDigits(body[i : i+6]) {
			return body[i : i+6]
		}
	}
	t.Fatal("no code in message")
	return ""
}

func isSixDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) == 6
}

// --- SendOTP ---

func TestSendOTP(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)

	res, err := f.svc.SendOTP(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "0917***4567", res.MaskedNumber)
	assert.Equal(t, 300, res.ExpiresIn)
	f.sms.AssertExpectations(t)
}

func TestSendOTPNormalizesE164Input(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)

	req := validRegistration()
	req.ContactNumber = "+639171234567"
	_, err := f.svc.SendOTP(context.Background(), req)
	require.NoError(t, err)
	f.users.AssertCalled(t, "GetByContactNumber", mock.Anything, "09171234567")
}

func TestSendOTPInvalidNumber(t *testing.T) {
	f := newFixture(t)
	req := validRegistration()
	req.ContactNumber = "12345"
	_, err := f.svc.SendOTP(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSendOTPDuplicateNumber(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").
		Return(&domain.User{UserID: "u1"}, nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	f.sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestSendOTPDispatchFailureKeepsPending(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(errors.New("throttled")).Once()
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	assert.ErrorIs(t, err, domain.ErrSMSDelivery)

	// The record survived, so resend works without a fresh send-otp.
	res, err := f.svc.ResendOTP(context.Background(), "09171234567")
	require.NoError(t, err)
	assert.Equal(t, "0917***4567", res.MaskedNumber)
}

// --- VerifyOTP ---

func TestVerifyOTPRegistersAndIssuesTokens(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)
	f.users.On("Put", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("SignAccess", mock.Anything, domain.RoleCitizen).Return("access", nil)
	f.tokens.On("SignRefresh", mock.Anything).Return("refresh", nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	require.NoError(t, err)

	res, err := f.svc.VerifyOTP(context.Background(), "09171234567", sentCode(t, f.sms))
	require.NoError(t, err)

	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, "refresh", res.RefreshToken)
	assert.Equal(t, domain.RoleCitizen, res.User.Role)
	assert.True(t, res.User.IsActive)
	assert.True(t, res.User.IsVerified)
	assert.NotEmpty(t, res.User.UserID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("correct horse")))

	// Consumed: the same code must not register twice.
	_, err = f.svc.VerifyOTP(context.Background(), "09171234567", sentCode(t, f.sms))
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(context.Background(), "09171234567", "000000")
	assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	f.users.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestVerifyOTPNoPending(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.VerifyOTP(context.Background(), "09171234567", "123456")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerifyOTPLosesRegistrationRace(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound).Once()
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	require.NoError(t, err)

	// Someone else finished registering this number in the meantime.
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").
		Return(&domain.User{UserID: "winner"}, nil)

	_, err = f.svc.VerifyOTP(context.Background(), "09171234567", sentCode(t, f.sms))
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	f.users.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

// --- ResendOTP ---

func TestResendOTPInvalidatesOldCode(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)
	f.sms.On("SendSMS", mock.Anything, "+639171234567", mock.Anything).Return(nil)
	f.users.On("Put", mock.Anything, mock.Anything).Return(nil)
	f.tokens.On("SignAccess", mock.Anything, mock.Anything).Return("access", nil)
	f.tokens.On("SignRefresh", mock.Anything).Return("refresh", nil)

	_, err := f.svc.SendOTP(context.Background(), validRegistration())
	require.NoError(t, err)
	first := sentCode(t, f.sms)

	_, err = f.svc.ResendOTP(context.Background(), "09171234567")
	require.NoError(t, err)
	second := sentCode(t, f.sms)

	if first != second {
		_, err = f.svc.VerifyOTP(context.Background(), "09171234567", first)
		assert.ErrorIs(t, err, domain.ErrOTPInvalid)
	}
	_, err = f.svc.VerifyOTP(context.Background(), "09171234567", second)
	assert.NoError(t, err)
}

func TestResendOTPWithoutPending(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ResendOTP(context.Background(), "09171234567")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

// --- Login ---

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := &domain.User{
		UserID:        "u1",
		ContactNumber: "09171234567",
		PasswordHash:  hashFor(t, "correct horse"),
		Role:          domain.RoleCitizen,
		IsActive:      true,
	}
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(u, nil)
	f.users.On("Update", mock.Anything, "u1", mock.Anything).Return(nil)
	f.tokens.On("SignAccess", "u1", domain.RoleCitizen).Return("access", nil)
	f.tokens.On("SignRefresh", "u1").Return("refresh", nil)

	res, err := f.svc.Login(context.Background(), domain.LoginRequest{
		ContactNumber: "09171234567",
		Password:      "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "access", res.AccessToken)
	require.NotNil(t, res.User.LastLogin)
	f.users.AssertCalled(t, "Update", mock.Anything, "u1", mock.Anything)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	u := &domain.User{
		UserID:       "u1",
		PasswordHash: hashFor(t, "correct horse"),
		IsActive:     true,
	}
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(u, nil)

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{
		ContactNumber: "09171234567",
		Password:      "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginUnknownNumber(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(nil, domain.ErrNotFound)

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{
		ContactNumber: "09171234567",
		Password:      "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	f := newFixture(t)
	u := &domain.User{
		UserID:       "u1",
		PasswordHash: hashFor(t, "correct horse"),
		IsActive:     false,
	}
	f.users.On("GetByContactNumber", mock.Anything, "09171234567").Return(u, nil)

	_, err := f.svc.Login(context.Background(), domain.LoginRequest{
		ContactNumber: "09171234567",
		Password:      "correct horse",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "deactivated")
}

// --- Refresh ---

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	f.tokens.On("VerifyRefresh", "refresh").Return(&jwtinfra.Claims{UserID: "u1"}, nil)
	f.users.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", Role: domain.RoleCitizen, IsActive: true}, nil)
	f.tokens.On("SignAccess", "u1", domain.RoleCitizen).Return("new-access", nil)

	token, err := f.svc.Refresh(context.Background(), "refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", token)
}

func TestRefreshInvalidToken(t *testing.T) {
	f := newFixture(t)
	f.tokens.On("VerifyRefresh", "bogus").Return(nil, errors.New("bad signature"))

	_, err := f.svc.Refresh(context.Background(), "bogus")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefreshDeactivatedUser(t *testing.T) {
	f := newFixture(t)
	f.tokens.On("VerifyRefresh", "refresh").Return(&jwtinfra.Claims{UserID: "u1"}, nil)
	f.users.On("Get", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", IsActive: false}, nil)

	_, err := f.svc.Refresh(context.Background(), "refresh")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
