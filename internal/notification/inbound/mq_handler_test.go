package inbound

import (
	"context"
	"testing"
	"time"

	"github.com/creditsmart/otpauth/internal/notification/usecase"
	"github.com/creditsmart/otpauth/internal/pkg/instrument"
	"github.com/creditsmart/otpauth/internal/pkg/messaging"
)

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m *fakeMessage) Body() []byte                  { return m.body }
func (m *fakeMessage) Key() []byte                   { return nil }
func (m *fakeMessage) Headers() []messaging.Header   { return m.headers }
func (m *fakeMessage) Attributes() map[string]string { return nil }
func (m *fakeMessage) ID() string                    { return "" }
func (m *fakeMessage) Topic() string                 { return "" }
func (m *fakeMessage) Subject() string               { return "" }
func (m *fakeMessage) Timestamp() time.Time          { return time.Time{} }
func (m *fakeMessage) Ack(context.Context) error     { return nil }

type fakeConsumer struct {
	inputs []usecase.ConsumeOTPIssuedInput
	err    error
}

func (f *fakeConsumer) ConsumeOTPIssued(_ context.Context, in usecase.ConsumeOTPIssuedInput) error {
	if f.err != nil {
		return f.err
	}
	f.inputs = append(f.inputs, in)
	return nil
}

type staticStringID struct{ id string }

func (s staticStringID) Generate() string { return s.id }

func TestOTPIssuedNotification(t *testing.T) {

	t.Run("DispatchesToUsecase", func(t *testing.T) {

		// Arrange
		consumer := &fakeConsumer{}
		handler := &MQHandler{uc: consumer, uuid: staticStringID{id: "cid-1"}, ins: instrument.NewNoop()}
		msg := &fakeMessage{
			body:    []byte(`{"event_id":42,"email_address":"user@example.com","otp":"123456"}`),
			headers: []messaging.Header{{Key: "cID", Value: []byte("req-123")}},
		}

		// Act
		err := handler.OTPIssuedNotification(context.Background(), msg)

		// Assert
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if len(consumer.inputs) != 1 {
			t.Fatalf("expected one dispatch, got %d", len(consumer.inputs))
		}
		got := consumer.inputs[0]
		if got.EventID != 42 || got.EmailAddress != "user@example.com" || got.OTP != "123456" {
			t.Fatalf("unexpected input: %+v", got)
		}
	})

	t.Run("MalformedBodyIsAcked", func(t *testing.T) {

		// Arrange
		consumer := &fakeConsumer{}
		handler := &MQHandler{uc: consumer, uuid: staticStringID{id: "cid-1"}, ins: instrument.NewNoop()}
		msg := &fakeMessage{body: []byte("{not json")}

		// Act
		err := handler.OTPIssuedNotification(context.Background(), msg)

		// Assert
		if err != nil {
			t.Fatalf("expected nil error for malformed body, got %v", err)
		}
		if len(consumer.inputs) != 0 {
			t.Fatalf("expected no dispatch")
		}
	})
}
