package sink

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaSink(t *testing.T) {
	t.Run("publishes keyed json", func(t *testing.T) {
		w := &fakeWriter{}
		s := newKafkaSink(w, "orders", nil)

		ok, err := s.HandleOrder(context.Background(), testOrder())
		if err != nil || !ok {
			t.Fatalf("HandleOrder = %v, %v, want true, nil", ok, err)
		}

		if len(w.messages) != 1 {
			t.Fatalf("messages = %d, want 1", len(w.messages))
		}
		msg := w.messages[0]
		if string(msg.Key) != "1001" {
			t.Errorf("key = %q, want 1001", msg.Key)
		}

		var body map[string]any
		if err := json.Unmarshal(msg.Value, &body); err != nil {
			t.Fatalf("decode value: %v", err)
		}
		if body["customer_name"] != "Ada Lovelace" {
			t.Errorf("customer_name = %v", body["customer_name"])
		}
		if body["customer_id"] != float64(17) {
			t.Errorf("customer_id = %v, want 17", body["customer_id"])
		}
		if products, _ := body["products"].([]any); len(products) != 2 {
			t.Errorf("products = %v, want 2 entries", body["products"])
		}

		if len(msg.Headers) != 2 {
			t.Fatalf("headers = %d, want 2", len(msg.Headers))
		}
		if h := msg.Headers[1]; h.Key != "created_at" || string(h.Value) != "2024-02-02T10:30:00" {
			t.Errorf("header = %s=%s, want created_at=2024-02-02T10:30:00", h.Key, h.Value)
		}
	})

	t.Run("write failure declines with error", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("leader not available")}
		s := newKafkaSink(w, "orders", nil)

		ok, err := s.HandleOrder(context.Background(), testOrder())
		if err == nil {
			t.Error("expected error, got nil")
		}
		if ok {
			t.Error("failed publish should not be accepted")
		}
	})

	t.Run("close", func(t *testing.T) {
		w := &fakeWriter{}
		if err := newKafkaSink(w, "orders", nil).Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if !w.closed {
			t.Error("writer was not closed")
		}
	})

	t.Run("constructor wires writer", func(t *testing.T) {
		s := NewKafkaSink([]string{"localhost:9092"}, "orders", 0, nil)
		kw, ok := s.writer.(*kafka.Writer)
		if !ok {
			t.Fatalf("writer = %T, want *kafka.Writer", s.writer)
		}
		if kw.Topic != "orders" {
			t.Errorf("Topic = %q, want orders", kw.Topic)
		}
		if kw.RequiredAcks != kafka.RequireAll {
			t.Errorf("RequiredAcks = %v, want RequireAll", kw.RequiredAcks)
		}
	})
}
