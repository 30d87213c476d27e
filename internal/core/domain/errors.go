package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("access forbidden")
	ErrRateLimited           = errors.New("too many login attempts")
	ErrNotFound              = errors.New("not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// CredentialsError is returned by a failed login. AttemptsLeft is the number
// of failures the client may still make before it is locked out.
type CredentialsError struct {
	AttemptsLeft int
}

func (e *CredentialsError) Error() string {
	return fmt.Sprintf("%s (%d attempts left)", ErrInvalidCredentials, e.AttemptsLeft)
}

func (e *CredentialsError) Unwrap() error { return ErrInvalidCredentials }

// RateLimitError is returned while a client is locked out.
type RateLimitError struct {
	Lockout time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s, retry in %d minutes", ErrRateLimited, e.LockoutMinutes())
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// LockoutMinutes rounds the remaining lockout up to whole minutes, never
// reporting less than one while the lockout is active.
func (e *RateLimitError) LockoutMinutes() int {
	return CeilMinutes(e.Lockout)
}

// CeilMinutes converts d to whole minutes rounding up, with a floor of 1.
func CeilMinutes(d time.Duration) int {
	m := int(math.Ceil(d.Minutes()))
	if m < 1 {
		return 1
	}
	return m
}

// ValidationError carries a human-readable reason for rejected input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
