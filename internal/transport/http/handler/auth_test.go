package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LuWes17/infomatik-api/internal/application/auth"
	"github.com/LuWes17/infomatik-api/internal/domain"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendOTP(ctx context.Context, req domain.RegistrationRequest) (*auth.SendOTPResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.SendOTPResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyOTP(ctx context.Context, contactNumber, code string) (*auth.AuthResult, error) {
	args := m.Called(ctx, contactNumber, code)
	if r, _ := args.Get(0).(*auth.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) ResendOTP(ctx context.Context, contactNumber string) (*auth.SendOTPResult, error) {
	args := m.Called(ctx, contactNumber)
	if r, _ := args.Get(0).(*auth.SendOTPResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Login(ctx context.Context, req domain.LoginRequest) (*auth.AuthResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.AuthResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func validSendOTPBody() map[string]string {
	return map[string]string{
		"firstName":     "Juan",
		"lastName":      "Dela Cruz",
		"contactNumber": "09171234567",
		"password":      "correct horse",
		"barangay":      "Agnas",
	}
}

// --- tests ---

func TestSendOTP(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendOTP", mock.Anything, mock.Anything).
		Return(&auth.SendOTPResult{MaskedNumber: "0917***4567", ExpiresIn: 300}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.SendOTP, "/auth/send-otp", validSendOTPBody())
	assert.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	assert.True(t, env.Success)
	data, _ := env.Data.(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "0917***4567", data["maskedNumber"])
	assert.Equal(t, float64(300), data["expiresIn"])
}

func TestSendOTP_MissingFields(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	body := validSendOTPBody()
	delete(body, "password")
	rr := postJSON(t, h.SendOTP, "/auth/send-otp", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "Password")
	svc.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
}

func TestSendOTP_InvalidBarangay(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	body := validSendOTPBody()
	body["barangay"] = "Nowhere"
	rr := postJSON(t, h.SendOTP, "/auth/send-otp", body)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
}

func TestSendOTP_DuplicateNumber(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendOTP", mock.Anything, mock.Anything).Return(nil, domain.ErrAlreadyRegistered)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.SendOTP, "/auth/send-otp", validSendOTPBody())
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "already registered")
}

func TestVerifyOTP(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, "09171234567", "123456").
		Return(&auth.AuthResult{
			User:         &domain.User{UserID: "u1"},
			AccessToken:  "access",
			RefreshToken: "refresh",
		}, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/auth/verify-otp", map[string]string{
		"contactNumber": "09171234567",
		"otp":           "123456",
	})
	assert.Equal(t, http.StatusCreated, rr.Code)

	env := decodeEnvelope(t, rr)
	data, _ := env.Data.(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "access", data["token"])
	assert.Equal(t, "refresh", data["refreshToken"])
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyOTP", mock.Anything, "09171234567", "000000").
		Return(nil, domain.ErrOTPInvalid)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/auth/verify-otp", map[string]string{
		"contactNumber": "09171234567",
		"otp":           "000000",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestVerifyOTP_NonNumericCode(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/auth/verify-otp", map[string]string{
		"contactNumber": "09171234567",
		"otp":           "abc123",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "VerifyOTP", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendOTP_NoPending(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("ResendOTP", mock.Anything, "09171234567").Return(nil, domain.ErrNoPendingRequest)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.ResendOTP, "/auth/resend-otp", map[string]string{
		"contactNumber": "09171234567",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.Contains(t, env.Message, "no pending")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Login, "/auth/login", map[string]string{
		"contactNumber": "09171234567",
		"password":      "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	env := decodeEnvelope(t, rr)
	assert.False(t, env.Success)
}

func TestRefresh(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Refresh", mock.Anything, "refresh").Return("new-access", nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.Refresh, "/auth/refresh-token", map[string]string{
		"refreshToken": "refresh",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	env := decodeEnvelope(t, rr)
	data, _ := env.Data.(map[string]interface{})
	require.NotNil(t, data)
	assert.Equal(t, "new-access", data["token"])
}
