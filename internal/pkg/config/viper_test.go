package config

import (
	"testing"
	"time"
)

const testYAML = `
app:
  name: otpauth
  debug: true
modules:
  auth:
    session_ttl_seconds: 300
    max_otp_requests: 5
notification:
  consumer_names: "otp_issued_notification, , extra_consumer"
limits:
  weights: "read:1,write:3"
`

func newTestConfig(t *testing.T) *Viper {
	t.Helper()

	cfg, err := NewViperFromBytes("yaml", []byte(testYAML))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestViperGetters(t *testing.T) {

	t.Run("String", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetString("app.name"); got != "otpauth" {
			t.Fatalf("expected otpauth, got %q", got)
		}
	})

	t.Run("Bool", func(t *testing.T) {
		cfg := newTestConfig(t)

		if !cfg.GetBool("app.debug") {
			t.Fatalf("expected app.debug true")
		}
	})

	t.Run("Second", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetSecond("modules.auth.session_ttl_seconds"); got != 300*time.Second {
			t.Fatalf("expected 300s, got %v", got)
		}
	})

	t.Run("Int64", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetInt64("modules.auth.max_otp_requests"); got != 5 {
			t.Fatalf("expected 5, got %d", got)
		}
	})
}

func TestViperGetArray(t *testing.T) {

	t.Run("DropsEmptyElements", func(t *testing.T) {

		// Arrange
		cfg := newTestConfig(t)

		// Act
		got := cfg.GetArray("notification.consumer_names")

		// Assert
		if len(got) != 2 {
			t.Fatalf("expected 2 elements, got %v", got)
		}
		if got[0] != "otp_issued_notification" || got[1] != "extra_consumer" {
			t.Fatalf("unexpected elements: %v", got)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		cfg := newTestConfig(t)

		if got := cfg.GetArray("does.not.exist"); len(got) != 0 {
			t.Fatalf("expected empty slice, got %v", got)
		}
	})
}

func TestViperGetMap(t *testing.T) {

	t.Run("ParsesPairs", func(t *testing.T) {

		// Arrange
		cfg := newTestConfig(t)

		// Act
		got := cfg.GetMap("limits.weights")

		// Assert
		if len(got) != 2 {
			t.Fatalf("expected 2 pairs, got %v", got)
		}
		if got["read"] != "1" || got["write"] != "3" {
			t.Fatalf("unexpected pairs: %v", got)
		}
	})
}
