package usecase

import (
	"context"
	"log/slog"

	"github.com/creditsmart/otpauth/internal/pkg/mail"
)

const otpEmailSubject = "Your Credit Smart verification code"

const otpEmailBodyTemplate = `<html>
<body style="font-family: Arial, sans-serif;">
	<p>Hello,</p>
	<p>Your one-time password is:</p>
	<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.otp}}</p>
	<p>This code is valid for 5 minutes only. If you did not request it, you can ignore this email.</p>
	<p>Thanks,<br>{{.company_name}}</p>
	<p style="color: #888; font-size: 12px;">Need help? Contact {{.support_email}}. &copy; {{.year}} {{.company_name}}</p>
</body>
</html>`

type ConsumeOTPIssuedInput struct {
	EventID      int64  `validate:"required,gt=0"`
	EmailAddress string `validate:"required,email"`
	OTP          string `validate:"required,otpcode"`
}

func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	data := s.baseEmailTemplateData()
	data["otp"] = in.OTP

	body, err := s.renderTemplate("otp_email_body", otpEmailBodyTemplate, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render otp email body", "event_id", in.EventID, "error", err)
		return nil
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.EmailAddress},
		Subject:  otpEmailSubject,
		HTMLBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "event_id", in.EventID, "email_address", in.EmailAddress, "error", err)
		return err
	}

	return nil
}
