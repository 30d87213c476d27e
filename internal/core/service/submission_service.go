package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alexmorgan-dev/portfolio-api/internal/core/domain"
	"github.com/alexmorgan-dev/portfolio-api/internal/core/ports"
	"github.com/alexmorgan-dev/portfolio-api/internal/metrics"
)

// SubmissionRepositories groups the message and booking stores.
type SubmissionRepositories struct {
	Messages ports.MessageRepository
	Bookings ports.BookingRepository
}

// SubmissionService manages contact messages and booking requests. The
// fallback repositories are kept as a write-through copy of the primary:
// every successful write is mirrored into them, a write the primary rejects
// with a store error lands in the fallback instead, and inbox reads that fail
// on the primary are served from the fallback.
type SubmissionService struct {
	primary  SubmissionRepositories
	fallback SubmissionRepositories
	now      func() time.Time
	log      zerolog.Logger
}

func NewSubmissionService(primary, fallback SubmissionRepositories, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{primary: primary, fallback: fallback, now: time.Now, log: log}
}

func (s *SubmissionService) CreateMessage(ctx context.Context, in ports.CreateMessageInput) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.TrimSpace(in.Email),
		Subject:   strings.TrimSpace(in.Subject),
		Body:      strings.TrimSpace(in.Body),
		Plan:      strings.TrimSpace(in.Plan),
		Timestamp: s.now().UTC(),
	}
	if m.FullName == "" || m.Email == "" || m.Subject == "" || m.Body == "" {
		return nil, domain.NewValidationError("fullName, email, subject and body are required")
	}

	var mirror func() error
	if s.fallback.Messages != nil {
		mirror = func() error { return s.fallback.Messages.Create(ctx, m) }
	}
	err := s.writeThrough(domain.KindMessage, func() error { return s.primary.Messages.Create(ctx, m) }, mirror)
	if err != nil {
		s.log.Error().Err(err).Str("email", m.Email).Msg("failed to store message")
		return nil, err
	}

	metrics.SubmissionsCreatedTotal.WithLabelValues(string(domain.KindMessage), "read").Inc()
	s.log.Info().Str("id", m.ID).Msg("message received")
	return m, nil
}

func (s *SubmissionService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	b := &domain.Booking{
		ID:        uuid.NewString(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Notes:     strings.TrimSpace(in.Notes),
		Plan:      strings.TrimSpace(in.Plan),
		Timestamp: s.now().UTC(),
		Status:    domain.BookingPending,
	}
	if b.FullName == "" || b.Email == "" || b.Date == "" || b.Time == "" || b.Plan == "" {
		return nil, domain.NewValidationError("fullName, email, date, time and plan are required")
	}

	var mirror func() error
	if s.fallback.Bookings != nil {
		mirror = func() error { return s.fallback.Bookings.Create(ctx, b) }
	}
	err := s.writeThrough(domain.KindBooking, func() error { return s.primary.Bookings.Create(ctx, b) }, mirror)
	if err != nil {
		s.log.Error().Err(err).Str("email", b.Email).Msg("failed to store booking")
		return nil, err
	}

	metrics.SubmissionsCreatedTotal.WithLabelValues(string(domain.KindBooking), "read").Inc()
	s.log.Info().Str("id", b.ID).Str("date", b.Date).Msg("booking received")
	return b, nil
}

func (s *SubmissionService) ListMessages(ctx context.Context) ([]*domain.Message, error) {
	msgs, err := s.primary.Messages.List(ctx)
	if err == nil {
		return msgs, nil
	}

	s.log.Warn().Err(err).Msg("message store unavailable, serving fallback")
	metrics.SubmissionFallbackTotal.WithLabelValues(string(domain.KindMessage), "read").Inc()
	if s.fallback.Messages == nil {
		return []*domain.Message{}, nil
	}
	return s.fallback.Messages.List(ctx)
}

func (s *SubmissionService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.primary.Bookings.List(ctx)
	if err == nil {
		return bookings, nil
	}

	s.log.Warn().Err(err).Msg("booking store unavailable, serving fallback")
	metrics.SubmissionFallbackTotal.WithLabelValues(string(domain.KindBooking), "read").Inc()
	if s.fallback.Bookings == nil {
		return []*domain.Booking{}, nil
	}
	return s.fallback.Bookings.List(ctx)
}

func (s *SubmissionService) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	msgs, err := s.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Submission, 0, len(msgs)+len(bookings))
	for _, m := range msgs {
		out = append(out, m)
	}
	for _, b := range bookings {
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt().After(out[j].SubmittedAt())
	})
	return out, nil
}

func (s *SubmissionService) MarkMessageRead(ctx context.Context, id string, read bool) (*domain.Message, error) {
	var out *domain.Message
	var mirror func() error
	if s.fallback.Messages != nil {
		mirror = func() error {
			m, err := s.fallback.Messages.SetRead(ctx, id, read)
			if out == nil {
				out = m
			}
			return err
		}
	}
	err := s.writeThrough(domain.KindMessage, func() error {
		m, err := s.primary.Messages.SetRead(ctx, id, read)
		out = m
		return err
	}, mirror)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", id).Bool("read", read).Msg("message updated")
	return out, nil
}

func (s *SubmissionService) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	st, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	var out *domain.Booking
	var mirror func() error
	if s.fallback.Bookings != nil {
		mirror = func() error {
			b, err := s.fallback.Bookings.SetStatus(ctx, id, st)
			if out == nil {
				out = b
			}
			return err
		}
	}
	err = s.writeThrough(domain.KindBooking, func() error {
		b, err := s.primary.Bookings.SetStatus(ctx, id, st)
		out = b
		return err
	}, mirror)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", id).Str("status", string(st)).Msg("booking updated")
	return out, nil
}

func (s *SubmissionService) DeleteMessage(ctx context.Context, id string) error {
	var mirror func() error
	if s.fallback.Messages != nil {
		mirror = func() error { return s.fallback.Messages.Delete(ctx, id) }
	}
	if err := s.writeThrough(domain.KindMessage, func() error { return s.primary.Messages.Delete(ctx, id) }, mirror); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("message deleted")
	return nil
}

func (s *SubmissionService) DeleteBooking(ctx context.Context, id string) error {
	var mirror func() error
	if s.fallback.Bookings != nil {
		mirror = func() error { return s.fallback.Bookings.Delete(ctx, id) }
	}
	if err := s.writeThrough(domain.KindBooking, func() error { return s.primary.Bookings.Delete(ctx, id) }, mirror); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("booking deleted")
	return nil
}

// writeThrough runs a write against the primary store and repeats it on the
// fallback. A not-found from the fallback is ignored since it may predate the
// process. When the primary fails with a store error the write is kept in the
// fallback alone; not-found and validation errors from the primary are final.
func (s *SubmissionService) writeThrough(kind domain.SubmissionKind, primary, fallback func() error) error {
	err := primary()
	if err == nil {
		if fallback != nil {
			if ferr := fallback(); ferr != nil && !errors.Is(ferr, domain.ErrNotFound) {
				s.log.Warn().Err(ferr).Str("kind", string(kind)).Msg("failed to mirror write into fallback store")
			}
		}
		return nil
	}

	if fallback == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	if ferr := fallback(); ferr != nil {
		s.log.Warn().Err(ferr).Str("kind", string(kind)).Msg("fallback store rejected write")
		return err
	}

	s.log.Error().Err(err).Str("kind", string(kind)).Msg("submission store unavailable, write kept in fallback")
	metrics.SubmissionFallbackTotal.WithLabelValues(string(kind), "write").Inc()
	return nil
}
