package inbound

import (
	"github.com/creditsmart/otpauth/internal/auth/usecase"
	"github.com/creditsmart/otpauth/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the OTP workflows.
type HTTPEndpoint struct {
	uc uc
}

// GenerateOTP issues a one-time password and sends it by email.
// @Summary Generate OTP
// @Description Creates a one-time password for the email address and delivers it by email. A new request replaces any OTP still pending for the same address.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body GenerateOTPRequest true "Generate OTP payload"
// @Success 200 {object} router.successResponse{data=GenerateOTPResponse} "OTP sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/generate [post]
func (h *HTTPEndpoint) GenerateOTP(r *router.Request) (any, error) {
	var req GenerateOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateOTP(r.Context(), usecase.GenerateOTPInput{
		EmailAddress: req.EmailAddress,
	})
	if err != nil {
		return nil, err
	}

	return GenerateOTPResponse{EmailAddress: resp.EmailAddress}, nil
}

// VerifyOTP checks a submitted one-time password.
// @Summary Verify OTP
// @Description Verifies the submitted code against the pending OTP session. The outcome (verified, rejected, no_session) is reported in the response body with HTTP 200.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify OTP payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "Verification outcome"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		EmailAddress: req.EmailAddress,
		OTP:          req.UserOTP,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		EmailAddress: resp.EmailAddress,
		Status:       resp.Status.String(),
	}, nil
}
