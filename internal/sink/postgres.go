package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/woo-sync/internal/model"
)

const orderSchema = `
CREATE TABLE IF NOT EXISTS synced_orders (
	order_id      BIGINT PRIMARY KEY,
	status        TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	customer_id   BIGINT,
	customer_name TEXT NOT NULL,
	synced_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS synced_order_items (
	order_id   BIGINT NOT NULL REFERENCES synced_orders (order_id),
	position   INT NOT NULL,
	product_id BIGINT NOT NULL,
	quantity   INT NOT NULL,
	PRIMARY KEY (order_id, position)
)`

// DB is the subset of *pgxpool.Pool the sink uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresSink records orders in synced_orders and synced_order_items.
// Replayed orders hit ON CONFLICT DO NOTHING and are still accepted.
type PostgresSink struct {
	db     DB
	logger *slog.Logger
}

// NewPostgresSink creates a PostgresSink. Call EnsureSchema before use.
func NewPostgresSink(db DB, logger *slog.Logger) *PostgresSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSink{db: db, logger: logger}
}

// EnsureSchema creates the order tables if they do not exist.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, orderSchema); err != nil {
		return fmt.Errorf("create order tables: %w", err)
	}
	return nil
}

func (s *PostgresSink) HandleOrder(ctx context.Context, order model.Order) (bool, error) {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO synced_orders (order_id, status, created_at, customer_id, customer_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO NOTHING
	`, order.ID, order.Status, order.CreatedAt, order.CustomerID, order.CustomerName)

	for i, li := range order.LineItems {
		batch.Queue(`
			INSERT INTO synced_order_items (order_id, position, product_id, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (order_id, position) DO NOTHING
		`, order.ID, i, li.ProductID, li.Quantity)
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	conflicts := 0
	for range batch.Len() {
		ct, err := results.Exec()
		if err != nil {
			return false, fmt.Errorf("insert order %d: %w", order.ID, err)
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	s.logger.Debug("order recorded",
		"order_id", order.ID,
		"rows", batch.Len(),
		"conflicts", conflicts,
	)
	return true, nil
}
