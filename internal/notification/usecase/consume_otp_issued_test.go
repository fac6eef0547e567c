package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/mail"
	"github.com/creditsmart/otpauth/internal/pkg/validator"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newTestUsecase(t *testing.T) (*Usecase, *fakeMailer) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("mail:\n  support_email: support@creditsmart.id\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	mailer := &fakeMailer{}

	uc := NewNotification(Dependency{
		Config:     cfg,
		Clock:      fixedClock{at: time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)},
		Validator:  val,
		RepoMail:   mailer,
		Instrument: instrument.NewNoop(),
	})

	return uc, mailer
}

func TestConsumeOTPIssued(t *testing.T) {

	t.Run("SendsCodeEmail", func(t *testing.T) {

		// Arrange
		uc, mailer := newTestUsecase(t)

		// Act
		err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
			EventID:      42,
			EmailAddress: "user@example.com",
			OTP:          "123456",
		})

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if len(mailer.sent) != 1 {
			t.Fatalf("expected one email, got %d", len(mailer.sent))
		}

		msg := mailer.sent[0]
		if len(msg.To) != 1 || msg.To[0] != "user@example.com" {
			t.Fatalf("unexpected recipients: %v", msg.To)
		}
		if msg.Subject != "Your Credit Smart verification code" {
			t.Fatalf("unexpected subject: %q", msg.Subject)
		}
		for _, want := range []string{"123456", "support@creditsmart.id", "Credit Smart", "2026"} {
			if !strings.Contains(msg.HTMLBody, want) {
				t.Fatalf("body missing %q:\n%s", want, msg.HTMLBody)
			}
		}
	})

	t.Run("InvalidInputIsDropped", func(t *testing.T) {

		// Arrange
		uc, mailer := newTestUsecase(t)

		tests := []ConsumeOTPIssuedInput{
			{EventID: 0, EmailAddress: "user@example.com", OTP: "123456"},
			{EventID: 1, EmailAddress: "not-an-email", OTP: "123456"},
			{EventID: 1, EmailAddress: "user@example.com", OTP: "12345"},
			{EventID: 1, EmailAddress: "user@example.com", OTP: ""},
		}

		for _, in := range tests {
			// Act: malformed events are logged and acknowledged, not retried.
			if err := uc.ConsumeOTPIssued(context.Background(), in); err != nil {
				t.Fatalf("expected nil error for %+v, got %v", in, err)
			}
		}

		// Assert
		if len(mailer.sent) != 0 {
			t.Fatalf("expected no email sent, got %d", len(mailer.sent))
		}
	})

	t.Run("SendFailureIsReturned", func(t *testing.T) {

		// Arrange
		uc, mailer := newTestUsecase(t)
		mailer.err = errors.New("smtp down")

		// Act
		err := uc.ConsumeOTPIssued(context.Background(), ConsumeOTPIssuedInput{
			EventID:      42,
			EmailAddress: "user@example.com",
			OTP:          "123456",
		})

		// Assert
		if err == nil {
			t.Fatalf("expected error when send fails")
		}
	})
}
