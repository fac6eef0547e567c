package inbound

import (
	"context"

	"github.com/creditsmart/otpauth/internal/auth/usecase"
	"github.com/creditsmart/otpauth/internal/pkg/router"
)

type uc interface {
	GenerateOTP(ctx context.Context, in usecase.GenerateOTPInput) (*usecase.GenerateOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/otp/generate", end.GenerateOTP)
	r.POST("/api/v1/auth/otp/verify", end.VerifyOTP)
}
