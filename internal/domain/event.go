package domain

import (
	"context"
	"time"
)

// Event modes.
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeHybrid  = "hybrid"
)

// Event represents a developer conference listing.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        string    `json:"mode"`
	Audience    string    `json:"audience"`
	Agenda      []string  `json:"agenda"`
	Organizer   string    `json:"organizer"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsValidMode reports whether m is one of the supported event modes.
func IsValidMode(m string) bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// EventInput is the loosely-typed payload of a create request after content-type
// dispatch. Agenda and Tags hold the raw value (sequence, string or scalar) and are
// coerced by the service; Image is the string reference or the uploaded file.
type EventInput struct {
	Title       string
	Slug        string
	Description string
	Overview    string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      any
	Tags        any
	Image       ImageInput
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	// ListSimilar returns events other than excludeID sharing at least one tag.
	ListSimilar(ctx context.Context, excludeID string, tags []string) ([]*Event, error)
}

// EventListCache stores the public event listing between invalidations.
type EventListCache interface {
	Get(ctx context.Context) ([]*Event, bool, error)
	Set(ctx context.Context, events []*Event) error
	Purge(ctx context.Context) error
}

// CacheInvalidator signals that cached public pages should be refreshed.
// Invalidate returns immediately; failures are only logged by the implementation.
type CacheInvalidator interface {
	Invalidate(path string)
}

// EventService defines event ingestion and lookup.
type EventService interface {
	CreateEvent(ctx context.Context, in *EventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListSimilarEvents(ctx context.Context, slug string) ([]*Event, error)
	// RevalidateListing drops the cached public listing.
	RevalidateListing(ctx context.Context) error
}
