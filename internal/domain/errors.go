package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// OTP-flow sentinels. They all wrap ErrBadRequest because the registration
// flow surfaces every verification failure to the client as a 400 with a
// user-facing message.
var (
	ErrOTPNotFound         = fmt.Errorf("no verification found for this number: %w", ErrBadRequest)
	ErrOTPExpired          = fmt.Errorf("verification code expired: %w", ErrBadRequest)
	ErrOTPAttemptsExceeded = fmt.Errorf("maximum verification attempts exceeded: %w", ErrBadRequest)
	ErrOTPInvalid          = fmt.Errorf("invalid verification code: %w", ErrBadRequest)
	ErrNoPendingRequest    = fmt.Errorf("no pending verification request: %w", ErrBadRequest)
	ErrAlreadyRegistered   = fmt.Errorf("contact number already registered: %w", ErrBadRequest)
	ErrSMSDelivery         = fmt.Errorf("failed to send verification code: %w", ErrBadRequest)
)
