package otp

import (
	"testing"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() domain.RegistrationRequest {
	return domain.RegistrationRequest{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		ContactNumber: "09171234567",
		Password:      "hunter2hunter2",
		Barangay:      "Tayhi",
	}
}

// newFrozenStore returns a store whose clock starts at a fixed instant and a
// function to advance it.
func newFrozenStore(expiry time.Duration, maxAttempts int) (*Store, func(d time.Duration)) {
	s := NewStore(expiry, maxAttempts)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }
	return s, func(d time.Duration) { current = current.Add(d) }
}

func TestVerify_HappyPath(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "042069", payload())

	got, err := s.Verify("09171234567", "042069")
	require.NoError(t, err)
	assert.Equal(t, "09171234567", got.ContactNumber)
	assert.Equal(t, "Juan", got.FirstName)
}

func TestVerify_UnknownKey(t *testing.T) {
	s := NewStore(0, 0)
	_, err := s.Verify("09170000000", "123456")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerify_WrongCodeConsumesAttempt(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "111111", payload())

	_, err := s.Verify("09171234567", "222222")
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
	assert.ErrorContains(t, err, "2 attempt(s) remaining")

	_, err = s.Verify("09171234567", "333333")
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
	assert.ErrorContains(t, err, "1 attempt(s) remaining")

	// Budget spent but the correct code still works on the last attempt.
	got, err := s.Verify("09171234567", "111111")
	require.NoError(t, err)
	assert.Equal(t, "Juan", got.FirstName)
}

func TestVerify_ThirdWrongCodeExhausts(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "111111", payload())

	for i := 0; i < 2; i++ {
		_, err := s.Verify("09171234567", "000000")
		require.ErrorIs(t, err, domain.ErrOTPInvalid)
	}

	// The third mismatch reaches the limit inside the same call.
	_, err := s.Verify("09171234567", "000000")
	assert.ErrorIs(t, err, domain.ErrOTPAttemptsExceeded)

	// The record is gone; even the correct code cannot revive it.
	_, err = s.Verify("09171234567", "111111")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerify_ExpiredEvenWithCorrectCode(t *testing.T) {
	s, advance := newFrozenStore(300*time.Second, 3)
	s.Put("09171234567", "111111", payload())

	advance(301 * time.Second)

	_, err := s.Verify("09171234567", "111111")
	assert.ErrorIs(t, err, domain.ErrOTPExpired)

	// Lazy expiry deleted the record on that read.
	_, err = s.Verify("09171234567", "111111")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestVerify_JustInsideExpiryWindow(t *testing.T) {
	s, advance := newFrozenStore(300*time.Second, 3)
	s.Put("09171234567", "111111", payload())

	advance(300 * time.Second)

	_, err := s.Verify("09171234567", "111111")
	assert.NoError(t, err)
}

func TestPut_OverwritesPrevious(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "111111", payload())
	s.Put("09171234567", "222222", payload())

	_, err := s.Verify("09171234567", "111111")
	require.ErrorIs(t, err, domain.ErrOTPInvalid)

	_, err = s.Verify("09171234567", "222222")
	assert.NoError(t, err)
}

func TestReset_NewCodeAndFreshBudget(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "111111", payload())

	// Burn two attempts.
	_, _ = s.Verify("09171234567", "000000")
	_, _ = s.Verify("09171234567", "000000")

	got, err := s.Reset("09171234567", "222222")
	require.NoError(t, err)
	assert.Equal(t, "Juan", got.FirstName)

	// Old code no longer verifies and the budget is full again.
	_, err = s.Verify("09171234567", "111111")
	require.ErrorIs(t, err, domain.ErrOTPInvalid)
	assert.ErrorContains(t, err, "2 attempt(s) remaining")

	_, err = s.Verify("09171234567", "222222")
	assert.NoError(t, err)
}

func TestReset_ExtendsExpiry(t *testing.T) {
	s, advance := newFrozenStore(300*time.Second, 3)
	s.Put("09171234567", "111111", payload())

	advance(200 * time.Second)
	_, err := s.Reset("09171234567", "222222")
	require.NoError(t, err)

	// 200s after the reset the new code is still inside its window.
	advance(200 * time.Second)
	_, err = s.Verify("09171234567", "222222")
	assert.NoError(t, err)
}

func TestReset_NoPending(t *testing.T) {
	s := NewStore(0, 0)
	_, err := s.Reset("09171234567", "222222")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestReset_ExpiredCountsAsNoPending(t *testing.T) {
	s, advance := newFrozenStore(300*time.Second, 3)
	s.Put("09171234567", "111111", payload())

	advance(301 * time.Second)

	_, err := s.Reset("09171234567", "222222")
	assert.ErrorIs(t, err, domain.ErrNoPendingRequest)
}

func TestDelete_Idempotent(t *testing.T) {
	s := NewStore(0, 0)
	s.Put("09171234567", "111111", payload())

	s.Delete("09171234567")
	s.Delete("09171234567") // second delete is a no-op

	_, err := s.Verify("09171234567", "111111")
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}
