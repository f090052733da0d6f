package woo

import "encoding/json"

// APIOrder represents an order from GET /orders.
// Only the fields the sync reads are typed; everything else is ignored.
type APIOrder struct {
	ID           int64  `json:"id"`
	Number       string `json:"number"`
	Status       string `json:"status"`
	Currency     string `json:"currency"`
	Total        string `json:"total"`
	DateCreated  string `json:"date_created"`  // site-local ISO 8601, no zone
	DateModified string `json:"date_modified"` // site-local ISO 8601, no zone

	CustomerID *int64      `json:"customer_id"` // 0 for guest checkout
	Billing    *APIBilling `json:"billing"`

	// nil when the field is absent or null, which is a malformed order.
	LineItems []APILineItem `json:"line_items"`
}

// APIBilling is the billing address block of an order.
type APIBilling struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   string  `json:"company"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
}

// APILineItem is one line of an order.
type APILineItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProductID   *int64 `json:"product_id"`
	VariationID int64  `json:"variation_id"`
	Quantity    *int   `json:"quantity"`
	SKU         string `json:"sku"`
	Total       string `json:"total"`
}

// APIProduct represents a product from GET /products.
// Raw keeps the full record as returned by the store.
type APIProduct struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Price         string `json:"price"`
	RegularPrice  string `json:"regular_price"`
	SalePrice     string `json:"sale_price"`
	StockQuantity *int   `json:"stock_quantity"` // null when stock is not managed
	StockStatus   string `json:"stock_status"`
	DateModified  string `json:"date_modified"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps a copy of the raw record.
func (p *APIProduct) UnmarshalJSON(data []byte) error {
	type plain APIProduct
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = APIProduct(v)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// GetOrdersOptions configures a GetOrders request.
type GetOrdersOptions struct {
	After   string // ISO 8601, orders created strictly after
	Status  string // comma separated, empty for any
	Page    int
	PerPage int
	OrderBy string // date, id, ...
	Order   string // asc or desc
}
