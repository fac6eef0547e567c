package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/config"
	"github.com/creditsmart/otpauth/internal/pkg/goerror"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	pkgotp "github.com/creditsmart/otpauth/internal/pkg/otp"
	"github.com/creditsmart/otpauth/internal/pkg/ratelimit"
	"github.com/creditsmart/otpauth/internal/pkg/validator"
	libotp "github.com/pquerna/otp"
)

type fakeSessionStore struct {
	sessions map[string]entity.Session
	putErr   error
	getErr   error
	delErr   error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]entity.Session)}
}

func (f *fakeSessionStore) PutSession(_ context.Context, sess entity.Session, _ time.Duration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[sess.EmailAddress] = sess
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, email string, _ time.Duration) (*entity.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	sess, ok := f.sessions[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &sess, nil
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, email string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.sessions, email)
	return nil
}

type fakePublisher struct {
	events []OTPIssuedEvent
	err    error
}

func (f *fakePublisher) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)
	return nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

type seqNumberID struct{ last int64 }

func (s *seqNumberID) Generate() int64 {
	s.last++
	return s.last
}

func newTestUsecase(t *testing.T, maxRequests int64) (*Usecase, *fakeSessionStore, *fakePublisher) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  auth:\n    session_ttl_seconds: 300\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}

	val, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	store := newFakeSessionStore()
	pub := &fakePublisher{}

	uc := New(Dependency{
		RepoCache:     store,
		RepoMessaging: pub,
		Validator:     val,
		Config:        cfg,
		Totp:          pkgotp.NewTOTP("Credit Smart", 300, libotp.DigitsSix),
		Clock:         fixedClock{at: time.Unix(1700000100, 0)},
		Limiter:       ratelimit.NewCounter(maxRequests),
		UID:           &seqNumberID{},
		Instrument:    instrument.NewNoop(),
	})

	return uc, store, pub
}

// mutateCode flips the first digit so the result is a well-formed code that
// can never equal the original.
func mutateCode(code string) string {
	b := []byte(code)
	b[0] = '0' + (b[0]-'0'+1)%10
	return string(b)
}

func TestGenerateOTP(t *testing.T) {

	t.Run("StoresSessionAndPublishesEvent", func(t *testing.T) {

		// Arrange
		uc, store, pub := newTestUsecase(t, 100)

		// Act
		out, err := uc.GenerateOTP(context.Background(), GenerateOTPInput{EmailAddress: "user@example.com"})

		// Assert
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if out.EmailAddress != "user@example.com" {
			t.Fatalf("unexpected output email %q", out.EmailAddress)
		}

		sess, ok := store.sessions["user@example.com"]
		if !ok {
			t.Fatalf("expected session stored")
		}
		if len(sess.SecretKey) != 32 {
			t.Fatalf("expected 32-char secret, got %d", len(sess.SecretKey))
		}

		if len(pub.events) != 1 {
			t.Fatalf("expected one event, got %d", len(pub.events))
		}
		evt := pub.events[0]
		if evt.EventID == 0 {
			t.Fatalf("expected non-zero event id")
		}
		if evt.EmailAddress != "user@example.com" || evt.OTP != sess.OTP {
			t.Fatalf("event does not match session: %+v vs %+v", evt, sess)
		}
	})

	t.Run("NormalizesEmail", func(t *testing.T) {

		// Arrange
		uc, store, _ := newTestUsecase(t, 100)

		// Act
		out, err := uc.GenerateOTP(context.Background(), GenerateOTPInput{EmailAddress: "  User@Example.COM "})

		// Assert
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if out.EmailAddress != "user@example.com" {
			t.Fatalf("expected normalized email, got %q", out.EmailAddress)
		}
		if _, ok := store.sessions["user@example.com"]; !ok {
			t.Fatalf("expected session keyed by normalized email")
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {

		// Arrange
		uc, store, _ := newTestUsecase(t, 100)

		// Act
		_, err := uc.GenerateOTP(context.Background(), GenerateOTPInput{EmailAddress: "not-an-email"})

		// Assert
		if err == nil {
			t.Fatalf("expected validation error")
		}
		if len(store.sessions) != 0 {
			t.Fatalf("expected no session stored")
		}
	})

	t.Run("RateLimited", func(t *testing.T) {

		// Arrange
		uc, _, _ := newTestUsecase(t, 5)
		ctx := context.Background()
		in := GenerateOTPInput{EmailAddress: "user@example.com"}

		// Act: the fifth request trips the limiter and resets the counter.
		for i := range 4 {
			if _, err := uc.GenerateOTP(ctx, in); err != nil {
				t.Fatalf("request %d: %v", i+1, err)
			}
		}
		_, err := uc.GenerateOTP(ctx, in)

		// Assert
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeTooManyRequest {
			t.Fatalf("expected too many requests error, got %v", err)
		}

		if _, err := uc.GenerateOTP(ctx, in); err != nil {
			t.Fatalf("expected counter reset after denial, got %v", err)
		}
	})

	t.Run("PublishFailure", func(t *testing.T) {

		// Arrange
		uc, _, pub := newTestUsecase(t, 100)
		pub.err = errors.New("broker down")

		// Act
		_, err := uc.GenerateOTP(context.Background(), GenerateOTPInput{EmailAddress: "user@example.com"})

		// Assert
		if err == nil {
			t.Fatalf("expected error when publish fails")
		}
	})
}

func TestVerifyOTP(t *testing.T) {

	t.Run("MatchConsumesSession", func(t *testing.T) {

		// Arrange
		uc, store, pub := newTestUsecase(t, 100)
		ctx := context.Background()
		if _, err := uc.GenerateOTP(ctx, GenerateOTPInput{EmailAddress: "user@example.com"}); err != nil {
			t.Fatalf("generate: %v", err)
		}
		code := pub.events[0].OTP

		// Act
		out, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: code})

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if out.Status != entity.VerifyStatusVerified {
			t.Fatalf("expected verified, got %v", out.Status)
		}
		if _, ok := store.sessions["user@example.com"]; ok {
			t.Fatalf("expected session consumed")
		}

		// A correct code must not be accepted twice.
		again, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: code})
		if err != nil {
			t.Fatalf("second verify: %v", err)
		}
		if again.Status != entity.VerifyStatusNoSession {
			t.Fatalf("expected no session on replay, got %v", again.Status)
		}
	})

	t.Run("MismatchKeepsSession", func(t *testing.T) {

		// Arrange
		uc, store, pub := newTestUsecase(t, 100)
		ctx := context.Background()
		if _, err := uc.GenerateOTP(ctx, GenerateOTPInput{EmailAddress: "user@example.com"}); err != nil {
			t.Fatalf("generate: %v", err)
		}
		code := pub.events[0].OTP

		// Act
		out, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: mutateCode(code)})

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if out.Status != entity.VerifyStatusRejected {
			t.Fatalf("expected rejected, got %v", out.Status)
		}
		if _, ok := store.sessions["user@example.com"]; !ok {
			t.Fatalf("expected session kept after mismatch")
		}

		// A later attempt with the right code still succeeds.
		retry, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: code})
		if err != nil {
			t.Fatalf("retry verify: %v", err)
		}
		if retry.Status != entity.VerifyStatusVerified {
			t.Fatalf("expected verified on retry, got %v", retry.Status)
		}
	})

	t.Run("NoPendingSession", func(t *testing.T) {

		// Arrange
		uc, _, _ := newTestUsecase(t, 100)

		// Act
		out, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{EmailAddress: "user@example.com", OTP: "123456"})

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if out.Status != entity.VerifyStatusNoSession {
			t.Fatalf("expected no session, got %v", out.Status)
		}
	})

	t.Run("RegenerateInvalidatesPreviousCode", func(t *testing.T) {

		// Arrange
		uc, _, pub := newTestUsecase(t, 100)
		ctx := context.Background()
		in := GenerateOTPInput{EmailAddress: "user@example.com"}
		if _, err := uc.GenerateOTP(ctx, in); err != nil {
			t.Fatalf("first generate: %v", err)
		}
		if _, err := uc.GenerateOTP(ctx, in); err != nil {
			t.Fatalf("second generate: %v", err)
		}
		first, second := pub.events[0].OTP, pub.events[1].OTP
		if first == second {
			t.Skip("codes collided, nothing to distinguish")
		}

		// Act: the first code is checked against the replacement secret.
		out, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: first})
		if err != nil {
			t.Fatalf("verify first: %v", err)
		}

		// Assert
		if out.Status != entity.VerifyStatusRejected {
			t.Fatalf("expected first code rejected, got %v", out.Status)
		}

		latest, err := uc.VerifyOTP(ctx, VerifyOTPInput{EmailAddress: "user@example.com", OTP: second})
		if err != nil {
			t.Fatalf("verify second: %v", err)
		}
		if latest.Status != entity.VerifyStatusVerified {
			t.Fatalf("expected latest code verified, got %v", latest.Status)
		}
	})

	t.Run("InvalidCodeFormat", func(t *testing.T) {

		// Arrange
		uc, _, _ := newTestUsecase(t, 100)

		// Act
		_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{EmailAddress: "user@example.com", OTP: "12345a"})

		// Assert
		if err == nil {
			t.Fatalf("expected validation error")
		}
	})
}
