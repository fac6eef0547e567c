package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/mail"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"
)

type Mail struct {
	client     mail.Mail
	ins        instrument.Instrumentation
	maxRetries uint64
	baseDelay  time.Duration
}

func New(client mail.Mail, cfg config.Config, ins instrument.Instrumentation) *Mail {
	maxRetries := cfg.GetUint64("mail.send_max_retries")
	if maxRetries == 0 {
		maxRetries = 3
	}

	baseDelay := cfg.GetSecond("mail.send_retry_base_delay_seconds")
	if baseDelay <= 0 {
		baseDelay = time.Second
	}

	return &Mail{client: client, ins: ins, maxRetries: maxRetries, baseDelay: baseDelay}
}

// Send delivers a message, retrying transient failures with fibonacci backoff.
func (m *Mail) Send(ctx context.Context, msg mail.Message) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "Send")
	defer span.End()

	backoff := retry.WithMaxRetries(m.maxRetries, retry.NewFibonacci(m.baseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.client.Send(ctx, msg); err != nil {
			slog.WarnContext(ctx, "mail send attempt failed, will retry", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
