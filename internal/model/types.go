package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Orders
// -----------------------------------------------------------------------------

// Order is the canonical form of a WooCommerce order handed to downstream actions.
type Order struct {
	ID        int64  `json:"id"`         // WooCommerce order ID
	Status    string `json:"status"`     // Remote status at fetch time (e.g. "completed")
	CreatedAt string `json:"created_at"` // date_created, ISO 8601

	CustomerID   *int64 `json:"customer_id"`   // nil when the record carries no customer_id
	CustomerName string `json:"customer_name"` // "first last" from billing, empty without billing

	LineItems []LineItem `json:"products"` // Same order as the remote line_items
}

// LineItem is one (product, quantity) entry of an order.
type LineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// -----------------------------------------------------------------------------
// Products
// -----------------------------------------------------------------------------

// ProductSummary is a compact projection of a product.
type ProductSummary struct {
	ID            int64           `json:"id"`
	StockQuantity *int            `json:"stock_quantity"` // nil when stock is not managed
	Price         decimal.Decimal `json:"price"`
}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

// DataShapeError reports a remote record missing a field the sync relies on.
// It signals a schema mismatch and is never retried.
type DataShapeError struct {
	Record string // "order" or "product"
	ID     int64
	Field  string
	Reason string
}

func (e *DataShapeError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("malformed %s %d: field %q %s", e.Record, e.ID, e.Field, reason)
}
