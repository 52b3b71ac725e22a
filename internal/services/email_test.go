package services

import (
	"context"
	"errors"
	"testing"

	"devevent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, htmlBody, textBody string) error {
	f.to, f.subject, f.html, f.text = to, subject, htmlBody, textBody
	return f.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(templateName string, _ any) (string, string, string, error) {
	f.name = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "You're booked", "<p>html</p>", "text", nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	data := &domain.BookingConfirmationEmailData{Email: "ada@example.com", Title: "Go Conf"}

	t.Run("success", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewEmailService(testLogger, mailer, renderer)

		require.NoError(t, svc.SendBookingConfirmation(context.Background(), data))
		assert.Equal(t, "booking_confirmation", renderer.name)
		assert.Equal(t, "ada@example.com", mailer.to)
		assert.Equal(t, "You're booked", mailer.subject)
	})

	t.Run("render failure", func(t *testing.T) {
		svc := NewEmailService(testLogger, &fakeMailer{}, &fakeRenderer{err: errors.New("bad template")})
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(testLogger, &fakeMailer{err: errors.New("ses down")}, &fakeRenderer{})
		require.Error(t, svc.SendBookingConfirmation(context.Background(), data))
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(testLogger, &fakeMailer{}, &fakeRenderer{})
		require.Error(t, svc.SendBookingConfirmation(context.Background(), nil))
	})
}
