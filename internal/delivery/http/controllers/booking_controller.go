package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{slug}/bookings.
type CreateBookingRequest struct {
	Email string `json:"email"`
}

// CreateBookingResponse is the response body for POST /events/{slug}/bookings (201).
type CreateBookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

// CountBookingsResponse is the response body for GET /events/{slug}/bookings/count (200).
type CountBookingsResponse struct {
	Count int `json:"count"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc}
}

// CreateBooking godoc
// @Summary Book a spot on an event
// @Description Registers an email for the event. A confirmation email is sent when a mail provider is configured.
// @Tags bookings
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param body body CreateBookingRequest true "Attendee email"
// @Success 201 {object} controllers.CreateBookingResponse
// @Failure 400 {object} helpers.ErrorResponse "missing or invalid email"
// @Failure 404 {object} helpers.ErrorResponse "no event with that slug"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := helpers.DecodeJSON(r, &req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	slug := r.PathValue("slug")
	booking, err := c.Service.CreateBooking(r.Context(), slug, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidEmail):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid email", err.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid booking", err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", "No event exists with slug: "+strings.ToLower(strings.TrimSpace(slug)))
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Booking Failed", err.Error())
		}
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, CreateBookingResponse{Message: "Booking created successfully", Booking: booking})
}

// CountBookings godoc
// @Summary Count bookings for an event
// @Tags bookings
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.CountBookingsResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{slug}/bookings/count [get]
func (c *BookingController) CountBookings(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	n, err := c.Service.CountBookings(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, "Invalid slug", "Slug cannot be empty after sanitization")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "Event not found", "No event exists with slug: "+strings.ToLower(strings.TrimSpace(slug)))
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "Failed to count bookings", err.Error())
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, CountBookingsResponse{Count: n})
}
