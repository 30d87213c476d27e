package ports

import (
	"context"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
)

// CreateMessageInput is the DTO passed from the transport layer for a contact form.
type CreateMessageInput struct {
	FullName string
	Email    string
	Subject  string
	Body     string
	Plan     string
}

// CreateBookingInput is the DTO passed from the transport layer for a booking form.
type CreateBookingInput struct {
	FullName string
	Email    string
	Company  string
	Date     string
	Time     string
	Notes    string
	Plan     string
}

// SubmissionService manages the admin inbox.
type SubmissionService interface {
	CreateMessage(ctx context.Context, in CreateMessageInput) (*domain.Message, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)

	ListMessages(ctx context.Context) ([]*domain.Message, error)
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	// ListSubmissions merges messages and bookings, newest first.
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)

	MarkMessageRead(ctx context.Context, id string, read bool) (*domain.Message, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error)
	DeleteMessage(ctx context.Context, id string) error
	DeleteBooking(ctx context.Context, id string) error
}
