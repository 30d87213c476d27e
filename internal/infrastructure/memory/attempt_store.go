// Package memory holds process-local implementations of the storage ports.
// They back single-instance deployments and the fallback paths used when the
// document store or Redis is not configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// sweepEvery controls how often writes drop expired entries.
const sweepEvery = 64

type attemptEntry struct {
	rec       domain.LoginAttempt
	expiresAt time.Time
}

// AttemptStore is a mutex-guarded map of login failure counters.
type AttemptStore struct {
	mu      sync.Mutex
	records map[string]attemptEntry
	writes  int
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{records: make(map[string]attemptEntry)}
}

func (s *AttemptStore) Get(_ context.Context, key string) (domain.LoginAttempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[key]
	return e.rec, ok, nil
}

// RecordFailure starts a new count when the previous record outlived its ttl.
func (s *AttemptStore) RecordFailure(_ context.Context, key string, at time.Time, ttl time.Duration) (domain.LoginAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[key]
	if ok && at.After(e.expiresAt) {
		e = attemptEntry{}
	}
	e.rec.Count++
	e.rec.LastFailure = at
	e.expiresAt = at.Add(ttl)
	s.records[key] = e

	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweep(at)
	}
	return e.rec, nil
}

// Acquire runs the lockout check and the increment under one lock so
// concurrent logins from a client cannot all pass the check.
func (s *AttemptStore) Acquire(_ context.Context, key string, at time.Time, max int, window time.Duration) (domain.LoginAttempt, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.records[key]
	if ok && at.Sub(e.rec.LastFailure) >= window {
		e = attemptEntry{}
	}
	if e.rec.Count >= max {
		return e.rec, false, nil
	}

	e.rec.Count++
	e.rec.LastFailure = at
	e.expiresAt = at.Add(window)
	s.records[key] = e

	s.writes++
	if s.writes%sweepEvery == 0 {
		s.sweep(at)
	}
	return e.rec, true, nil
}

func (s *AttemptStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

// Len reports the number of tracked clients.
func (s *AttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *AttemptStore) sweep(now time.Time) {
	for k, e := range s.records {
		if now.After(e.expiresAt) {
			delete(s.records, k)
		}
	}
}
