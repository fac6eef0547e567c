package otp

import (
	"strings"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
)

func TestTOTPGenerate(t *testing.T) {

	t.Run("SecretFormat", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)

		// Act
		secret, uri, err := o.Generate("user@example.com")

		// Assert
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(secret) != 32 {
			t.Fatalf("expected 32-char secret, got %d chars", len(secret))
		}
		for _, r := range secret {
			if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", r) {
				t.Fatalf("secret contains non-base32 rune %q", r)
			}
		}
		if uri == "" {
			t.Fatalf("expected provisioning uri")
		}
	})

	t.Run("FreshSecretEachCall", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)

		// Act
		first, _, err1 := o.Generate("user@example.com")
		second, _, err2 := o.Generate("user@example.com")

		// Assert
		if err1 != nil || err2 != nil {
			t.Fatalf("generate: %v %v", err1, err2)
		}
		if first == second {
			t.Fatalf("expected different secrets per call")
		}
	})
}

func TestTOTPGenerateCode(t *testing.T) {

	t.Run("StableWithinTimeStep", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)
		secret, _, err := o.Generate("user@example.com")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		at := time.Unix(1700000100, 0) // aligned to a 300s step

		// Act
		first, err1 := o.GenerateCode(secret, at)
		second, err2 := o.GenerateCode(secret, at.Add(299*time.Second))

		// Assert
		if err1 != nil || err2 != nil {
			t.Fatalf("generate code: %v %v", err1, err2)
		}
		if len(first) != 6 {
			t.Fatalf("expected 6-digit code, got %q", first)
		}
		if first != second {
			t.Fatalf("expected same code within one time step, got %q and %q", first, second)
		}
	})
}

func TestTOTPValidate(t *testing.T) {

	t.Run("AcceptsCurrentStep", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)
		secret, _, _ := o.Generate("user@example.com")
		at := time.Unix(1700000100, 0)
		code, err := o.GenerateCode(secret, at)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if !o.Validate(code, secret, at.Add(250*time.Second)) {
			t.Fatalf("expected code accepted within its time step")
		}
	})

	t.Run("RejectsAdjacentStep", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)
		secret, _, _ := o.Generate("user@example.com")
		at := time.Unix(1700000100, 0)
		code, err := o.GenerateCode(secret, at)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if o.Validate(code, secret, at.Add(300*time.Second)) {
			t.Fatalf("expected code rejected in the next time step")
		}
		if o.Validate(code, secret, at.Add(-time.Second)) {
			t.Fatalf("expected code rejected in the previous time step")
		}
	})

	t.Run("RejectsWrongSecret", func(t *testing.T) {

		// Arrange
		o := NewTOTP("Credit Smart", 300, libotp.DigitsSix)
		secretA, _, _ := o.Generate("a@example.com")
		secretB, _, _ := o.Generate("b@example.com")
		at := time.Unix(1700000100, 0)
		code, err := o.GenerateCode(secretA, at)
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}

		// Act & Assert
		if o.Validate(code, secretB, at) {
			t.Fatalf("expected code rejected against a different secret")
		}
	})
}
