package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateEventResponse is the response body for POST /events (201).
type CreateEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// GetEventResponse is the response body for GET /events/{slug} (200).
type GetEventResponse struct {
	Event   *domain.Event `json:"event"`
	Message string        `json:"message"`
}

// ListEventsResponse is the response body for GET /events and GET /events/{slug}/similar (200).
type ListEventsResponse struct {
	Events []*domain.Event `json:"events"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create an event from a JSON body or a multipart/urlencoded form. The image may be an uploaded file, an http(s) URL, a data URL, or an absolute or ~-relative local path. agenda and tags accept arrays, JSON-encoded arrays, or strings delimited by , ; or |.
// @Tags events
// @Accept json
// @Accept mpfd
// @Accept x-www-form-urlencoded
// @Produce json
// @Param event body object true "Event fields: title, slug, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags"
// @Success 201 {object} controllers.CreateEventResponse
// @Failure 400 {object} helpers.ErrorResponse "missing image, invalid image field, or local file not found"
// @Failure 409 {object} helpers.ErrorResponse "duplicate slug"
// @Failure 415 {object} helpers.ErrorResponse "unsupported content type"
// @Failure 500 {object} helpers.ErrorResponse "creation failed, may carry a validation map"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	in, err := helpers.DecodeEventInput(r)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedMediaType) {
			helpers.WriteJSONError(w, http.StatusUnsupportedMediaType, "Unsupported Content-Type",
				"Use application/json, multipart/form-data or application/x-www-form-urlencoded")
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		c.writeCreateError(w, r, err)
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, CreateEventResponse{Message: "Event Created successfully", Event: event})
}

func (c *EventController) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr  *domain.ValidationError
		stErr *domain.StoreError
		fnf   *domain.FileNotFoundError
	)
	switch {
	case errors.Is(err, domain.ErrMissingRequired):
		helpers.WriteJSONError(w, http.StatusBadRequest, "Image is required", "Provide an image file, URL, data URL or local path")
		return
	case errors.Is(err, domain.ErrInvalidImage):
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid image field", domain.ErrInvalidImage.Error())
		return
	case errors.As(err, &fnf):
		helpers.WriteJSONError(w, http.StatusBadRequest, "File not found", "File not found: "+fnf.Path)
		return
	case errors.Is(err, domain.ErrFileNotFound):
		helpers.WriteJSONError(w, http.StatusBadRequest, "File not found", err.Error())
		return
	case domain.IsDuplicateField(err, "slug"):
		helpers.WriteJSONError(w, http.StatusConflict, "Duplicate slug", "Change title or provide a unique slug")
		return
	case errors.Is(err, domain.ErrDuplicateKey):
		helpers.WriteJSONError(w, http.StatusConflict, "Duplicate key", err.Error())
		return
	case errors.As(err, &verr):
		c.Logger.WarnContext(r.Context(), "event rejected", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteValidationError(w, http.StatusInternalServerError, "Event Creation Failed", err.Error(), verr.Fields)
		return
	case errors.As(err, &stErr) && stErr.Kind == domain.StoreValidation:
		field := stErr.Field
		if field == "" {
			field = "document"
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteValidationError(w, http.StatusInternalServerError, "Event Creation Failed", err.Error(),
			map[string]string{field: stErr.Error()})
		return
	case errors.As(err, &stErr) && stErr.Kind == domain.StoreMalformed:
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, "Event Creation Failed", err.Error())
}

// GetEvent godoc
// @Summary Get an event by slug
// @Description The slug is trimmed and lower-cased before lookup.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.GetEventResponse
// @Failure 400 {object} helpers.ErrorResponse "empty or malformed slug"
// @Failure 404 {object} helpers.ErrorResponse "no event with that slug"
// @Failure 500 {object} helpers.ErrorResponse
// @Failure 503 {object} helpers.ErrorResponse "database unreachable"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeLookupError(w, r, err, slug, "Failed to fetch event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, GetEventResponse{Event: event, Message: "Event fetched successfully"})
}

// writeLookupError maps failures of a slug lookup. A malformed store query is
// checked before the empty-slug case because both match domain.ErrInvalidInput.
func (c *EventController) writeLookupError(w http.ResponseWriter, r *http.Request, err error, slug, fallback string) {
	var stErr *domain.StoreError
	switch {
	case errors.As(err, &stErr) && stErr.Kind == domain.StoreMalformed:
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid query parameter", "Malformed slug format")
		return
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid slug", "Slug cannot be empty after sanitization")
		return
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", "No event exists with slug: "+strings.ToLower(strings.TrimSpace(slug)))
		return
	case errors.Is(err, domain.ErrUnavailable):
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, "Database connection failed",
			"Unable to connect to the database. Please try again later.")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, fallback, err.Error())
}

// ListEvents godoc
// @Summary List events
// @Description Returns every event, newest first. Served from the listing cache when one is configured.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Failure 503 {object} helpers.ErrorResponse "database unreachable"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		if errors.Is(err, domain.ErrUnavailable) {
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, "Database connection failed",
				"Unable to connect to the database. Please try again later.")
			return
		}
		helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}

// ListSimilarEvents godoc
// @Summary List events similar to an event
// @Description Returns other events sharing at least one tag with the event, newest first.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.ListEventsResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	events, err := c.Service.ListSimilarEvents(r.Context(), slug)
	if err != nil {
		c.writeLookupError(w, r, err, slug, "Failed to fetch similar events")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, ListEventsResponse{Events: events})
}
