package ports

import (
	"context"
	"time"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// AttemptStore persists failed login counters keyed by client identifier.
// Implementations must be safe for concurrent use.
type AttemptStore interface {
	// Get returns the record for key, or ok=false when none exists.
	Get(ctx context.Context, key string) (rec domain.LoginAttempt, ok bool, err error)
	// RecordFailure increments the counter for key, sets its last failure to
	// at and keeps the record for at least ttl.
	RecordFailure(ctx context.Context, key string, at time.Time, ttl time.Duration) (domain.LoginAttempt, error)
	// Acquire checks the lockout and counts one attempt in a single atomic
	// step. A record whose last attempt is window or more before at starts
	// over. When the count has already reached max, nothing is counted and
	// allowed is false; rec is the stored record in both cases.
	Acquire(ctx context.Context, key string, at time.Time, max int, window time.Duration) (rec domain.LoginAttempt, allowed bool, err error)
	// Reset removes the record for key.
	Reset(ctx context.Context, key string) error
}

// RevocationStore remembers session token ids revoked by logout.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
