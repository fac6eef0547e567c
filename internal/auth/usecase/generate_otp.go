package usecase

import (
	"context"
	"log/slog"

	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/goerror"
)

type GenerateOTPInput struct {
	EmailAddress string `validate:"required,email"`
}

type GenerateOTPOutput struct {
	EmailAddress string
}

// GenerateOTP creates a fresh OTP session for the email address and emits an
// event so the code is delivered by email. A repeated request replaces any
// session already pending for the same address.
func (s *Usecase) GenerateOTP(ctx context.Context, in GenerateOTPInput) (*GenerateOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "GenerateOTP")
	defer span.End()

	if !s.limiter.Allow() {
		slog.WarnContext(ctx, "otp generate request rate limited")
		return nil, goerror.NewBusiness("Many requests, please try again later", goerror.CodeTooManyRequest)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := normalizeEmail(in.EmailAddress)

	secret, _, err := s.totp.Generate(email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp secret", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.totp.GenerateCode(secret, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess := entity.Session{
		OTP:          code,
		EmailAddress: email,
		SecretKey:    secret,
	}
	if err := s.repoCache.PutSession(ctx, sess, s.sessionTTL()); err != nil {
		slog.ErrorContext(ctx, "failed to repo put otp session", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPIssued(ctx, OTPIssuedEvent{
		EventID:      s.uid.Generate(),
		EmailAddress: email,
		OTP:          code,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued event", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GenerateOTPOutput{EmailAddress: email}, nil
}
