package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"devevent/internal/domain"
)

// confirmationTimeout bounds sending one booking confirmation.
const confirmationTimeout = 10 * time.Second

// emailRegex matches local@domain.tld with no whitespace.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type bookingService struct {
	logger         *slog.Logger
	bookingRepo    domain.BookingRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	publicBaseURL  string
	contextTimeout time.Duration
	// confirmations tracks in-flight confirmation emails.
	confirmations sync.WaitGroup
}

// NewBookingService returns a BookingService. emailService may be nil, in which
// case no confirmation is sent.
func NewBookingService(logger *slog.Logger,
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	publicBaseURL string,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		logger:         logger,
		bookingRepo:    bookingRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		publicBaseURL:  strings.TrimSuffix(publicBaseURL, "/"),
		contextTimeout: timeout,
	}
}

// NormalizeEmail trims and lower-cases email and checks its shape.
func NormalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if !emailRegex.MatchString(e) {
		return "", domain.ErrInvalidEmail
	}
	return e, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, slug, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	addr, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	event, err := s.lookupEvent(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := domain.NewBooking(event.ID, addr, now, now)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if s.emailService != nil {
		s.sendConfirmation(ctx, booking.ID, &domain.BookingConfirmationEmailData{
			Email:    addr,
			Title:    event.Title,
			Date:     event.Date,
			Time:     event.Time,
			Location: event.Location,
			Mode:     event.Mode,
			EventURL: s.publicBaseURL + "/events/" + event.Slug,
		})
	}
	return booking, nil
}

// sendConfirmation mails data in a detached goroutine with its own timeout.
// The caller never waits; failures are only logged.
func (s *bookingService) sendConfirmation(ctx context.Context, bookingID string, data *domain.BookingConfirmationEmailData) {
	ctx = context.WithoutCancel(ctx)
	s.confirmations.Add(1)
	go func() {
		defer s.confirmations.Done()
		ctx, cancel := context.WithTimeout(ctx, confirmationTimeout)
		defer cancel()
		if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", bookingID, "err", err)
		}
	}()
}

func (s *bookingService) CountBookings(ctx context.Context, slug string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.lookupEvent(ctx, slug)
	if err != nil {
		return 0, err
	}
	n, err := s.bookingRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

// lookupEvent is the pre-write existence check for the referenced event.
func (s *bookingService) lookupEvent(ctx context.Context, slug string) (*domain.Event, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}
