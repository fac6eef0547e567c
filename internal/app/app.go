package app

import (
	"context"
	"net/http"

	"github.com/creditsmart/otpauth/internal/pkg/clock"
	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/goroutine"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/mail"
	"github.com/creditsmart/otpauth/internal/pkg/messaging"
	"github.com/creditsmart/otpauth/internal/pkg/otp"
	"github.com/creditsmart/otpauth/internal/pkg/ratelimit"
	"github.com/creditsmart/otpauth/internal/pkg/router"
	"github.com/creditsmart/otpauth/internal/pkg/uid"
	"github.com/creditsmart/otpauth/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	totp      otp.OTP
	limiter   ratelimit.Limiter

	// resources
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
