package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/rickgao/woo-sync/internal/model"
)

// messageWriter is the subset of *kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes each order as JSON, keyed by order ID.
type KafkaSink struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewKafkaSink creates a KafkaSink writing to topic. Writes are synchronous
// and wait for all in-sync replicas.
func NewKafkaSink(brokers []string, topic string, writeTimeout time.Duration, logger *slog.Logger) *KafkaSink {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: writeTimeout,
	}
	return newKafkaSink(w, topic, logger)
}

func newKafkaSink(w messageWriter, topic string, logger *slog.Logger) *KafkaSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &KafkaSink{writer: w, topic: topic, logger: logger}
}

func (s *KafkaSink) HandleOrder(ctx context.Context, order model.Order) (bool, error) {
	value, err := json.Marshal(order)
	if err != nil {
		return false, fmt.Errorf("encode order %d: %w", order.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "status", Value: []byte(order.Status)},
			{Key: "created_at", Value: []byte(order.CreatedAt)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return false, fmt.Errorf("publish order %d to %s: %w", order.ID, s.topic, err)
	}

	s.logger.Debug("order published", "order_id", order.ID, "topic", s.topic)
	return true, nil
}

// Close flushes and closes the writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
