package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/goerror"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewSessionStore(rdb, instrument.NewNoop()), mr
}

func testSession(email string) entity.Session {
	return entity.Session{
		OTP:          "123456",
		EmailAddress: email,
		SecretKey:    "JBSWY3DPEHPK3PXPJBSWY3DPEHPK3PXP",
	}
}

func TestSessionStorePut(t *testing.T) {

	t.Run("StoresRecordWithTTL", func(t *testing.T) {

		// Arrange
		store, mr := newTestStore(t)
		ctx := context.Background()

		// Act
		err := store.PutSession(ctx, testSession("user@example.com"), 5*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("put: %v", err)
		}
		if !mr.Exists("otp:user@example.com") {
			t.Fatalf("expected key otp:user@example.com")
		}
		if ttl := mr.TTL("otp:user@example.com"); ttl != 5*time.Minute {
			t.Fatalf("expected 5m ttl, got %v", ttl)
		}
	})

	t.Run("ReplacesExistingRecord", func(t *testing.T) {

		// Arrange
		store, _ := newTestStore(t)
		ctx := context.Background()

		first := testSession("user@example.com")
		second := testSession("user@example.com")
		second.OTP = "654321"

		// Act
		if err := store.PutSession(ctx, first, 5*time.Minute); err != nil {
			t.Fatalf("put first: %v", err)
		}
		if err := store.PutSession(ctx, second, 5*time.Minute); err != nil {
			t.Fatalf("put second: %v", err)
		}

		// Assert
		got, err := store.GetSession(ctx, "user@example.com", 5*time.Minute)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.OTP != "654321" {
			t.Fatalf("expected replaced record, got otp %q", got.OTP)
		}
	})
}

func TestSessionStoreGet(t *testing.T) {

	t.Run("NotFound", func(t *testing.T) {

		// Arrange
		store, _ := newTestStore(t)

		// Act
		_, err := store.GetSession(context.Background(), "missing@example.com", 5*time.Minute)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RefreshesTTL", func(t *testing.T) {

		// Arrange
		store, mr := newTestStore(t)
		ctx := context.Background()
		if err := store.PutSession(ctx, testSession("user@example.com"), 5*time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act: read just before expiry, which should extend the session.
		mr.FastForward(4 * time.Minute)
		if _, err := store.GetSession(ctx, "user@example.com", 5*time.Minute); err != nil {
			t.Fatalf("get: %v", err)
		}
		mr.FastForward(4 * time.Minute)
		got, err := store.GetSession(ctx, "user@example.com", 5*time.Minute)

		// Assert
		if err != nil {
			t.Fatalf("expected session alive after refresh, got %v", err)
		}
		if got.EmailAddress != "user@example.com" || got.OTP != "123456" {
			t.Fatalf("unexpected session: %+v", got)
		}
	})

	t.Run("ExpiresWithoutReads", func(t *testing.T) {

		// Arrange
		store, mr := newTestStore(t)
		ctx := context.Background()
		if err := store.PutSession(ctx, testSession("user@example.com"), 5*time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		mr.FastForward(5*time.Minute + time.Second)
		_, err := store.GetSession(ctx, "user@example.com", 5*time.Minute)

		// Assert
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after expiry, got %v", err)
		}
	})
}

func TestSessionStoreDelete(t *testing.T) {

	t.Run("RemovesRecord", func(t *testing.T) {

		// Arrange
		store, mr := newTestStore(t)
		ctx := context.Background()
		if err := store.PutSession(ctx, testSession("user@example.com"), 5*time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		if err := store.DeleteSession(ctx, "user@example.com"); err != nil {
			t.Fatalf("delete: %v", err)
		}

		// Assert
		if mr.Exists("otp:user@example.com") {
			t.Fatalf("expected key removed")
		}
	})

	t.Run("MissingRecordIsNoError", func(t *testing.T) {

		// Arrange
		store, _ := newTestStore(t)

		// Act & Assert
		if err := store.DeleteSession(context.Background(), "missing@example.com"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	})
}
