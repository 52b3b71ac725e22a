package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = "bk-1"
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingRepo) CountByEventID(_ context.Context, eventID string) (int, error) {
	n := 0
	for _, b := range f.bookings {
		if b.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// fakeEmailService records booking confirmations.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(_ context.Context, data *domain.BookingConfirmationEmailData) error {
	f.sent = append(f.sent, data)
	return f.err
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{" Ada@Example.COM ", "ada@example.com", nil},
		{"", "", domain.ErrInvalidInput},
		{"ada@example", "", domain.ErrInvalidEmail},
		{"ada lovelace@example.com", "", domain.ErrInvalidEmail},
		{"@example.com", "", domain.ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeEmail(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	event := &domain.Event{ID: "ev-1", Slug: "go-conf", Title: "Go Conf", Date: "2025-06-01", Time: "09:00", Mode: "online"}

	tests := []struct {
		name      string
		slug      string
		email     string
		repoErr   error
		mailErr   error
		wantErr   error
		wantSent  int
		wantSaved int
	}{
		{name: "success", slug: "Go-Conf", email: " Ada@Example.com ", wantSent: 1, wantSaved: 1},
		{name: "email failure does not fail booking", slug: "go-conf", email: "ada@example.com", mailErr: errors.New("ses down"), wantSent: 1, wantSaved: 1},
		{name: "invalid email", slug: "go-conf", email: "nope", wantErr: domain.ErrInvalidEmail},
		{name: "unknown event", slug: "missing", email: "ada@example.com", wantErr: domain.ErrNotFound},
		{name: "empty slug", slug: " ", email: "ada@example.com", wantErr: domain.ErrInvalidInput},
		{name: "store failure", slug: "go-conf", email: "ada@example.com", repoErr: errors.New("db down"), wantErr: errors.New("db down")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{createErr: tt.repoErr}
			mail := &fakeEmailService{err: tt.mailErr}
			svc := NewBookingService(testLogger, bookings, newFakeEventRepo(event), mail, "https://devevent.example/", time.Second).(*bookingService)

			got, err := svc.CreateBooking(context.Background(), tt.slug, tt.email)
			svc.confirmations.Wait()
			if tt.wantErr != nil {
				require.Error(t, err)
				if tt.repoErr != nil {
					assert.ErrorContains(t, err, tt.wantErr.Error())
				} else {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)
				assert.Empty(t, mail.sent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ev-1", got.EventID)
			assert.Equal(t, "ada@example.com", got.Email)
			assert.Len(t, bookings.bookings, tt.wantSaved)
			require.Len(t, mail.sent, tt.wantSent)
			assert.Equal(t, "https://devevent.example/events/go-conf", mail.sent[0].EventURL)
			assert.Equal(t, "Go Conf", mail.sent[0].Title)
		})
	}
}

// blockingEmailService holds every send until release is closed.
type blockingEmailService struct {
	started chan struct{}
	release chan struct{}
	ctxErr  error
}

func (b *blockingEmailService) SendBookingConfirmation(ctx context.Context, _ *domain.BookingConfirmationEmailData) error {
	close(b.started)
	<-b.release
	b.ctxErr = ctx.Err()
	return nil
}

func TestBookingService_ConfirmationDoesNotDelayBooking(t *testing.T) {
	event := &domain.Event{ID: "ev-1", Slug: "go-conf"}
	mail := &blockingEmailService{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewBookingService(testLogger, &fakeBookingRepo{}, newFakeEventRepo(event), mail, "", time.Second).(*bookingService)

	reqCtx, cancelReq := context.WithCancel(context.Background())
	got, err := svc.CreateBooking(reqCtx, "go-conf", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", got.ID)

	select {
	case <-mail.started:
	case <-time.After(5 * time.Second):
		t.Fatal("confirmation was never sent")
	}
	// the request finishing must not cancel the send
	cancelReq()
	close(mail.release)
	svc.confirmations.Wait()
	assert.NoError(t, mail.ctxErr)
}

func TestBookingService_CreateBookingWithoutEmail(t *testing.T) {
	event := &domain.Event{ID: "ev-1", Slug: "go-conf"}
	svc := NewBookingService(testLogger, &fakeBookingRepo{}, newFakeEventRepo(event), nil, "", time.Second)

	got, err := svc.CreateBooking(context.Background(), "go-conf", "ada@example.com")

	require.NoError(t, err)
	assert.Equal(t, "bk-1", got.ID)
}

func TestBookingService_CountBookings(t *testing.T) {
	event := &domain.Event{ID: "ev-1", Slug: "go-conf"}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{EventID: "ev-1"}, {EventID: "ev-1"}, {EventID: "ev-9"},
	}}
	svc := NewBookingService(testLogger, bookings, newFakeEventRepo(event), nil, "", time.Second)

	n, err := svc.CountBookings(context.Background(), "go-conf")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = svc.CountBookings(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
