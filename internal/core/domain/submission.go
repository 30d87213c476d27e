package domain

import (
	"fmt"
	"time"
)

// SubmissionKind discriminates the Submission union.
type SubmissionKind string

const (
	KindMessage SubmissionKind = "message"
	KindBooking SubmissionKind = "booking"
)

// Submission is either a contact Message or a Booking request.
type Submission interface {
	SubmissionID() string
	Kind() SubmissionKind
	SubmittedAt() time.Time
}

// BookingStatus represents the lifecycle state of a booking request.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates s against the known statuses.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return st, nil
	}
	return "", NewValidationError("status must be one of: pending, confirmed, cancelled, completed")
}

// Message is a contact form submission.
type Message struct {
	ID        string    `json:"id" bson:"_id"`
	FullName  string    `json:"fullName" bson:"full_name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Body      string    `json:"body" bson:"body"`
	Plan      string    `json:"plan,omitempty" bson:"plan,omitempty"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Read      bool      `json:"read" bson:"read"`
}

func (m *Message) SubmissionID() string   { return m.ID }
func (m *Message) Kind() SubmissionKind   { return KindMessage }
func (m *Message) SubmittedAt() time.Time { return m.Timestamp }

// Booking is a consultation booking request.
type Booking struct {
	ID        string        `json:"id" bson:"_id"`
	FullName  string        `json:"fullName" bson:"full_name"`
	Email     string        `json:"email" bson:"email"`
	Company   string        `json:"company,omitempty" bson:"company,omitempty"`
	Date      string        `json:"date" bson:"date"`
	Time      string        `json:"time" bson:"time"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Plan      string        `json:"plan" bson:"plan"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
	Status    BookingStatus `json:"status" bson:"status"`
}

func (b *Booking) SubmissionID() string   { return b.ID }
func (b *Booking) Kind() SubmissionKind   { return KindBooking }
func (b *Booking) SubmittedAt() time.Time { return b.Timestamp }

// ErrSubmissionNotFound builds a not-found error for a submission id.
func ErrSubmissionNotFound(kind SubmissionKind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
