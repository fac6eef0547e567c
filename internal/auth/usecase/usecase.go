package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/clock"
	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/otp"
	"github.com/creditsmart/otpauth/internal/pkg/ratelimit"
	"github.com/creditsmart/otpauth/internal/pkg/uid"
	"github.com/creditsmart/otpauth/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OTPIssuedEvent struct {
	EventID      int64
	EmailAddress string
	OTP          string
}

type repoMessaging interface {
	PublishOTPIssued(ctx context.Context, msg OTPIssuedEvent) error
}

type repoCache interface {
	PutSession(ctx context.Context, sess entity.Session, ttl time.Duration) error
	GetSession(ctx context.Context, email string, ttl time.Duration) (*entity.Session, error)
	DeleteSession(ctx context.Context, email string) error
}

type Usecase struct {
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	totp          otp.OTP
	clock         clock.Clocker
	limiter       ratelimit.Limiter
	uid           uid.NumberID
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Totp          otp.OTP
	Clock         clock.Clocker
	Limiter       ratelimit.Limiter
	UID           uid.NumberID
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		totp:          dep.Totp,
		clock:         dep.Clock,
		limiter:       dep.Limiter,
		uid:           dep.UID,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Usecase) sessionTTL() time.Duration {
	ttl := s.cfg.GetSecond("modules.auth.session_ttl_seconds")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return ttl
}
