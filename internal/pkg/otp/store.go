// Package otp holds pending phone verifications for the registration flow.
//
// The store is process-local by design: a pending verification is throwaway
// state that a citizen can recreate by requesting a new code, so losing it on
// restart is acceptable and sharing it across instances is a non-goal.
package otp

import (
	"fmt"
	"sync"
	"time"

	"github.com/LuWes17/infomatik-api/internal/domain"
)

const (
	// DefaultExpiry is how long a code stays valid after issue.
	DefaultExpiry = 300 * time.Second
	// DefaultMaxAttempts is the verification attempt budget per code.
	DefaultMaxAttempts = 3
)

// pending is one in-flight verification, keyed by normalized phone number.
// Expiry is computed lazily from CreatedAt on every read; nothing is
// scheduled, so overwriting a key can never race a stale sweep.
type pending struct {
	Code      string
	Payload   domain.RegistrationRequest
	CreatedAt time.Time
	Attempts  int
	Verified  bool
}

// Store maps a phone number to at most one pending verification.
type Store struct {
	mu          sync.Mutex
	records     map[string]*pending
	expiry      time.Duration
	maxAttempts int
	now         func() time.Time // swapped in tests
}

// NewStore creates a Store. Non-positive expiry or maxAttempts fall back to
// the defaults.
func NewStore(expiry time.Duration, maxAttempts int) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Store{
		records:     make(map[string]*pending),
		expiry:      expiry,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Expiry returns the configured code lifetime.
func (s *Store) Expiry() time.Duration { return s.expiry }

// Put stores a fresh verification for key, replacing any previous one.
// Restarting registration for the same number is a legitimate overwrite.
func (s *Store) Put(key, code string, payload domain.RegistrationRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = &pending{
		Code:      code,
		Payload:   payload,
		CreatedAt: s.now(),
	}
}

// Verify checks a submitted code against the pending record for key.
//
// The attempt is consumed before the comparison, so a mismatch always costs
// budget. Reaching the budget invalidates the record within the same call;
// there is no extra probe afterwards. On a match the record is marked
// verified and left in place for the caller to delete after use.
func (s *Store) Verify(key, submitted string) (domain.RegistrationRequest, error) {
	var zero domain.RegistrationRequest

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return zero, domain.ErrOTPNotFound
	}
	if s.now().Sub(rec.CreatedAt) > s.expiry {
		delete(s.records, key)
		return zero, domain.ErrOTPExpired
	}
	if rec.Attempts >= s.maxAttempts {
		delete(s.records, key)
		return zero, domain.ErrOTPAttemptsExceeded
	}

	rec.Attempts++
	if rec.Code != submitted {
		if rec.Attempts >= s.maxAttempts {
			delete(s.records, key)
			return zero, domain.ErrOTPAttemptsExceeded
		}
		remaining := s.maxAttempts - rec.Attempts
		return zero, fmt.Errorf("%w, %d attempt(s) remaining", domain.ErrOTPInvalid, remaining)
	}

	rec.Verified = true
	return rec.Payload, nil
}

// Reset gives an existing pending record a new code and a full attempt
// budget, keeping the original payload. Used by resend; the citizen never
// re-enters their registration data.
func (s *Store) Reset(key, newCode string) (domain.RegistrationRequest, error) {
	var zero domain.RegistrationRequest

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return zero, domain.ErrNoPendingRequest
	}
	if s.now().Sub(rec.CreatedAt) > s.expiry {
		delete(s.records, key)
		return zero, domain.ErrNoPendingRequest
	}

	rec.Code = newCode
	rec.CreatedAt = s.now()
	rec.Attempts = 0
	rec.Verified = false
	return rec.Payload, nil
}

// Delete removes the record for key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}
