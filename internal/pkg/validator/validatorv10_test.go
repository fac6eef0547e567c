package validator

import "testing"

type otpRequest struct {
	EmailAddress string `validate:"required,email"`
	UserOTP      string `validate:"required,otpcode"`
}

func TestV10ValidatorValidate(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	t.Run("Valid", func(t *testing.T) {
		in := otpRequest{EmailAddress: "user@example.com", UserOTP: "123456"}

		if err := v.Validate(in); err != nil {
			t.Fatalf("expected valid, got %v", err)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		in := otpRequest{EmailAddress: "not-an-email", UserOTP: "123456"}

		err := v.Validate(in)
		if err == nil {
			t.Fatalf("expected validation error")
		}

		errV10, ok := err.(V10ValidationError)
		if !ok {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}
		if _, found := errV10["email_address"]; !found {
			t.Fatalf("expected email_address field error, got %v", errV10)
		}
	})

	t.Run("InvalidOTPCode", func(t *testing.T) {
		cases := []string{"12345", "1234567", "12345a", "abcdef", ""}

		for _, code := range cases {
			in := otpRequest{EmailAddress: "user@example.com", UserOTP: code}

			if err := v.Validate(in); err == nil {
				t.Fatalf("expected validation error for code %q", code)
			}
		}
	})
}
