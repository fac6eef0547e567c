package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/goerror"
)

type VerifyOTPInput struct {
	EmailAddress string `validate:"required,email"`
	OTP          string `validate:"required,otpcode"`
}

type VerifyOTPOutput struct {
	EmailAddress string
	Status       entity.VerifyStatus
}

// VerifyOTP checks a submitted code against the pending session for the email
// address. A matching code consumes the session so it cannot be replayed; a
// wrong code keeps the session pending for another attempt.
//
// The outcome is reported in the output status, not as an error. Absence of a
// session and a code mismatch are regular results of this operation.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	email := normalizeEmail(in.EmailAddress)

	sess, err := s.repoCache.GetSession(ctx, email, s.sessionTTL())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.InfoContext(ctx, "no pending otp session", "email_address", email)
		return &VerifyOTPOutput{EmailAddress: email, Status: entity.VerifyStatusNoSession}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp session", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.OTP, sess.SecretKey, s.clock.Now()) {
		slog.InfoContext(ctx, "otp code rejected", "email_address", email)
		return &VerifyOTPOutput{EmailAddress: email, Status: entity.VerifyStatusRejected}, nil
	}

	if err := s.repoCache.DeleteSession(ctx, email); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete otp session", "email_address", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{EmailAddress: email, Status: entity.VerifyStatusVerified}, nil
}
