package auth

import (
	"github.com/creditsmart/otpauth/internal/auth/inbound"
	"github.com/creditsmart/otpauth/internal/auth/outbound/cache"
	"github.com/creditsmart/otpauth/internal/auth/outbound/mq"
	"github.com/creditsmart/otpauth/internal/auth/usecase"
	"github.com/creditsmart/otpauth/internal/pkg/clock"
	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/messaging"
	"github.com/creditsmart/otpauth/internal/pkg/otp"
	"github.com/creditsmart/otpauth/internal/pkg/ratelimit"
	"github.com/creditsmart/otpauth/internal/pkg/router"
	"github.com/creditsmart/otpauth/internal/pkg/uid"
	"github.com/creditsmart/otpauth/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	CacheConn  *redis.Client              `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Totp       otp.OTP                    `validate:"required"`
	Limiter    ratelimit.Limiter          `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoCache := cache.NewSessionStore(dep.CacheConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoCache:     repoCache,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Totp:          dep.Totp,
		Clock:         dep.Clock,
		Limiter:       dep.Limiter,
		UID:           dep.UID,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
