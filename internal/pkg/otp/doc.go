// Package otp provides helpers for generating and validating one-time
// passwords (OTP), focused on TOTP (time-based OTP).
//
// This is used for email verification flows: generate a secret and a code
// bound to the current time step, then validate user-provided codes against
// the same secret before the step expires.
package otp
