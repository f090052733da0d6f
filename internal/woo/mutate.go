package woo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/woo-sync/internal/model"
)

// UpdateProduct sends cmd as a single PUT and returns the product as stored.
// There is no read-back verification.
func (c *Client) UpdateProduct(ctx context.Context, id int64, cmd model.UpdateCommand) (*APIProduct, error) {
	var product APIProduct
	if err := c.put(ctx, productPath(id), cmd, &product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	c.logger.Debug("product updated", "product_id", id, "fields", len(cmd))
	return &product, nil
}

// UpdatePrice sets price and regular_price, and sale_price when sale is non-nil
// and non-zero.
func (c *Client) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal, sale *decimal.Decimal) (*APIProduct, error) {
	return c.UpdateProduct(ctx, id, model.PriceUpdate(price, sale))
}

// UpdateStock sets stock_quantity and turns on stock management.
func (c *Client) UpdateStock(ctx context.Context, id int64, quantity int) (*APIProduct, error) {
	return c.UpdateProduct(ctx, id, model.StockUpdate(quantity))
}
