package ports

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// MessageRepository persists contact messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	// List returns messages newest first.
	List(ctx context.Context) ([]*domain.Message, error)
	SetRead(ctx context.Context, id string, read bool) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
}

// BookingRepository persists booking requests.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	// List returns bookings newest first.
	List(ctx context.Context) ([]*domain.Booking, error)
	SetStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}
