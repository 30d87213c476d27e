package domain

import "time"

// LoginAttempt tracks consecutive failed logins for one client identifier.
// Lockout is derived from Count and LastFailure, never stored.
type LoginAttempt struct {
	Count       int       `json:"count"`
	LastFailure time.Time `json:"last_failure"`
}

// RateLimitStatus is the outcome of a rate limit check.
type RateLimitStatus struct {
	Allowed        bool
	AttemptsLeft   int
	LockoutMinutes int
	RetryAfter     time.Duration
}
