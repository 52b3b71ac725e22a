package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevent/internal/domain"
)

// revalidatePath is the public page that lists events.
const revalidatePath = "/"

type eventService struct {
	logger         *slog.Logger
	eventRepo      domain.EventRepository
	images         domain.ImageResolver
	cache          domain.EventListCache
	invalidator    domain.CacheInvalidator
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(logger *slog.Logger,
	eventRepo domain.EventRepository,
	images domain.ImageResolver,
	cache domain.EventListCache,
	invalidator domain.CacheInvalidator,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		logger:         logger,
		eventRepo:      eventRepo,
		images:         images,
		cache:          cache,
		invalidator:    invalidator,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, in *domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in == nil {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidInput)
	}

	// An empty resolved image is rejected only after all fields are gathered.
	image, err := s.images.Resolve(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	event := buildEvent(in)
	if image == "" {
		return nil, fmt.Errorf("%w: image is required", domain.ErrMissingRequired)
	}
	event.Image = image

	if err := normalizeEvent(event); err != nil {
		return nil, err
	}

	now := s.now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Purge(ctx); err != nil {
			s.logger.WarnContext(ctx, "purge event list cache", "err", err)
		}
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(revalidatePath)
	}
	return event, nil
}

// buildEvent copies the scalar fields and coerces the list fields of in.
func buildEvent(in *domain.EventInput) *domain.Event {
	mode := strings.ToLower(in.Mode)
	if !domain.IsValidMode(mode) {
		mode = domain.ModeHybrid
	}
	return &domain.Event{
		Title:       in.Title,
		Slug:        in.Slug,
		Description: in.Description,
		Overview:    in.Overview,
		Venue:       in.Venue,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		Mode:        mode,
		Audience:    in.Audience,
		Organizer:   in.Organizer,
		Agenda:      CoerceStrings(in.Agenda),
		Tags:        CoerceStrings(in.Tags),
	}
}

// normalizeEvent applies the record-level rules: slug falls back to the title,
// date and time are brought to canonical form. Failures are reported per field.
func normalizeEvent(e *domain.Event) error {
	verr := &domain.ValidationError{}

	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		verr.Add("title", "Title is required")
	}

	slug := e.Slug
	if strings.TrimSpace(slug) == "" {
		slug = Slugify(e.Title)
	}
	if normalized, err := NormalizeSlug(slug); err != nil {
		verr.Add("slug", "Slug is required")
	} else {
		e.Slug = normalized
	}

	if d, err := NormalizeDate(e.Date); err != nil {
		verr.Add("date", err.Error())
	} else {
		e.Date = d
	}
	if t, err := NormalizeTime(e.Time); err != nil {
		verr.Add("time", err.Error())
	} else {
		e.Time = t
	}
	return verr.OrNil()
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

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

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		events, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "read event list cache", "err", err)
		} else if ok {
			return events, nil
		}
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, events); err != nil {
			s.logger.WarnContext(ctx, "write event list cache", "err", err)
		}
	}
	return events, nil
}

func (s *eventService) ListSimilarEvents(ctx context.Context, slug string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

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
	if len(event.Tags) == 0 {
		return []*domain.Event{}, nil
	}
	similar, err := s.eventRepo.ListSimilar(ctx, event.ID, event.Tags)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	if similar == nil {
		similar = []*domain.Event{}
	}
	return similar, nil
}

func (s *eventService) RevalidateListing(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge event list cache: %w", err)
	}
	return nil
}
