package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/creditsmart/otpauth/internal/auth/entity"
	"github.com/creditsmart/otpauth/internal/pkg/goerror"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "otp:"

// SessionStore persists OTP sessions in Redis, one record per email address.
type SessionStore struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewSessionStore(client *redis.Client, ins instrument.Instrumentation) *SessionStore {
	return &SessionStore{client: client, ins: ins}
}

func (s *SessionStore) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.outbound.cache").Start(ctx, name)
}

func sessionKey(email string) string {
	return keyPrefix + email
}

// PutSession stores the session under the email key with the given TTL,
// replacing any record already there.
func (s *SessionStore) PutSession(ctx context.Context, sess entity.Session, ttl time.Duration) error {
	ctx, span := s.startSpan(ctx, "PutSession")
	defer span.End()

	raw, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := s.client.Set(ctx, sessionKey(sess.EmailAddress), raw, ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// GetSession loads the session for the email address and pushes its expiry
// out by ttl, so a read keeps the session alive for another full window.
//
// It returns goerror.ErrNotFound when no session exists.
func (s *SessionStore) GetSession(ctx context.Context, email string, ttl time.Duration) (*entity.Session, error) {
	ctx, span := s.startSpan(ctx, "GetSession")
	defer span.End()

	raw, err := s.client.Get(ctx, sessionKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.client.Expire(ctx, sessionKey(email), ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &sess, nil
}

// DeleteSession removes the session for the email address. Deleting a missing
// session is not an error.
func (s *SessionStore) DeleteSession(ctx context.Context, email string) error {
	ctx, span := s.startSpan(ctx, "DeleteSession")
	defer span.End()

	if err := s.client.Del(ctx, sessionKey(email)).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
