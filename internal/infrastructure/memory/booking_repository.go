package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// BookingRepository stores booking requests in process memory.
type BookingRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{byID: make(map[string]*domain.Booking)}
}

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *BookingRepository) List(_ context.Context) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Booking, 0, len(r.byID))
	for _, b := range r.byID {
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *BookingRepository) SetStatus(_ context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound(domain.KindBooking, id)
	}
	b.Status = status
	clone := *b
	return &clone, nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrSubmissionNotFound(domain.KindBooking, id)
	}
	delete(r.byID, id)
	return nil
}
