package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

func TestDialWithRetry(t *testing.T) {
	errRefused := errors.New("connection refused")
	opts := Options{DialRetries: 2, InitialInterval: time.Millisecond}

	t.Run("gives up after retries", func(t *testing.T) {
		calls := 0
		dial := func(string) (*amqp091.Connection, error) {
			calls++
			return nil, errRefused
		}

		_, err := dialWithRetry(context.Background(), dial, "amqp://localhost", opts)
		if !errors.Is(err, errRefused) {
			t.Fatalf("expected last dial error, got %v", err)
		}
		if calls != 3 {
			t.Errorf("expected 3 dial attempts, got %d", calls)
		}
	})

	t.Run("succeeds after a failure", func(t *testing.T) {
		calls := 0
		dial := func(string) (*amqp091.Connection, error) {
			calls++
			if calls == 1 {
				return nil, errRefused
			}
			return &amqp091.Connection{}, nil
		}

		conn, err := dialWithRetry(context.Background(), dial, "amqp://localhost", opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conn == nil || calls != 2 {
			t.Errorf("expected connection after 2 attempts, got conn=%v calls=%d", conn, calls)
		}
	})

	t.Run("no retries", func(t *testing.T) {
		calls := 0
		dial := func(string) (*amqp091.Connection, error) {
			calls++
			return nil, errRefused
		}

		if _, err := dialWithRetry(context.Background(), dial, "amqp://localhost", Options{}); err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("expected a single attempt, got %d", calls)
		}
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		dial := func(string) (*amqp091.Connection, error) {
			calls++
			cancel()
			return nil, errRefused
		}

		if _, err := dialWithRetry(ctx, dial, "amqp://localhost", Options{DialRetries: 10, InitialInterval: time.Millisecond}); err == nil {
			t.Fatal("expected error")
		}
		if calls != 1 {
			t.Errorf("expected retries to stop after cancel, got %d attempts", calls)
		}
	})
}

func TestLedgerLoadedMessageJSON(t *testing.T) {
	msg := NewLedgerLoadedMessage("18501179", "file:input.txt", 9, 1)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := LedgerLoadedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.UserID != "18501179" || got.Records != 9 || got.Malformed != 1 || got.Source != "file:input.txt" {
		t.Errorf("unexpected message: %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestClose_NilComponents(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Fatalf("Close should not fail with nil components: %v", err)
	}
}
