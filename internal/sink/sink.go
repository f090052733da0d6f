package sink

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/rickgao/woo-sync/internal/model"
)

// Sink acts on a normalized order.
type Sink interface {
	HandleOrder(ctx context.Context, order model.Order) (bool, error)
}

// Chain runs sinks in order. An order is accepted only if every sink accepts
// it; the first decline or error stops the chain.
type Chain struct {
	sinks []Sink
}

// Multi creates a Chain.
func Multi(sinks ...Sink) *Chain {
	return &Chain{sinks: sinks}
}

func (c *Chain) HandleOrder(ctx context.Context, order model.Order) (bool, error) {
	for _, s := range c.sinks {
		ok, err := s.HandleOrder(ctx, order)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Len returns the number of sinks in the chain.
func (c *Chain) Len() int {
	return len(c.sinks)
}

// Close closes every sink that holds resources.
func (c *Chain) Close() error {
	var errs []error
	for _, s := range c.sinks {
		if closer, ok := s.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// LogSink logs each order and accepts it.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) HandleOrder(_ context.Context, order model.Order) (bool, error) {
	customerID := int64(-1)
	if order.CustomerID != nil {
		customerID = *order.CustomerID
	}
	s.logger.Info("new order",
		"order_id", order.ID,
		"status", order.Status,
		"created_at", order.CreatedAt,
		"customer_id", customerID,
		"customer_name", order.CustomerName,
		"line_items", len(order.LineItems),
	)
	return true, nil
}
