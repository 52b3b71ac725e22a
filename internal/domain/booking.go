package domain

import (
	"context"
	"time"
)

// Booking is an email sign-up for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking returns a new Booking. ID is typically set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService defines attendee sign-ups for events.
type BookingService interface {
	// CreateBooking books email onto the event identified by slug.
	CreateBooking(ctx context.Context, slug, email string) (*Booking, error)
	CountBookings(ctx context.Context, slug string) (int, error)
}
