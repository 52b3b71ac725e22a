package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr error
	countErr  error
	count     int
	lastSlug  string
	lastEmail string
}

func (f *fakeBookingService) CreateBooking(_ context.Context, slug, email string) (*domain.Booking, error) {
	f.lastSlug, f.lastEmail = slug, email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Booking{ID: "bk-1", EventID: "ev-1", Email: email}, nil
}

func (f *fakeBookingService) CountBookings(_ context.Context, slug string) (int, error) {
	f.lastSlug = slug
	return f.count, f.countErr
}

func TestBookingController_CreateBooking(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"email":"ada@example.com"}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Booking created successfully",
		},
		{
			name:        "unknown field rejected",
			body:        `{"email":"ada@example.com","eventId":"x"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "invalid email",
			body:        `{"email":"nope"}`,
			fakeErr:     domain.ErrInvalidEmail,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email",
		},
		{
			name:        "missing email",
			body:        `{"email":""}`,
			fakeErr:     fmt.Errorf("%w: email is required", domain.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid booking",
		},
		{
			name:        "event not found",
			body:        `{"email":"ada@example.com"}`,
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Event not found",
		},
		{
			name:        "store failure",
			body:        `{"email":"ada@example.com"}`,
			fakeErr:     errors.New("db error"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Booking Failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{createErr: tt.fakeErr}
			ctrl := NewBookingController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/events/go-conf/bookings", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("slug", "go-conf")
			rr := httptest.NewRecorder()

			ctrl.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantStatus == http.StatusCreated {
				var resp CreateBookingResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.wantMessage, resp.Message)
				assert.Equal(t, "bk-1", resp.Booking.ID)
				assert.Equal(t, "go-conf", fake.lastSlug)
				assert.Equal(t, "ada@example.com", fake.lastEmail)
				return
			}
			var body helpers.ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestBookingController_CountBookings(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		fakeErr    error
		wantStatus int
	}{
		{name: "success", count: 7, wantStatus: http.StatusOK},
		{name: "not found", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "empty slug", fakeErr: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "failure", fakeErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewBookingController(testLogger, &fakeBookingService{count: tt.count, countErr: tt.fakeErr})
			req := httptest.NewRequest(http.MethodGet, "/events/go-conf/bookings/count", nil)
			req.SetPathValue("slug", "go-conf")
			rr := httptest.NewRecorder()

			ctrl.CountBookings(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp CountBookingsResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.count, resp.Count)
			}
		})
	}
}
