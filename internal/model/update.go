package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Remote product field names written by update commands.
const (
	FieldPrice         = "price"
	FieldRegularPrice  = "regular_price"
	FieldSalePrice     = "sale_price"
	FieldStockQuantity = "stock_quantity"
	FieldManageStock   = "manage_stock"
)

// UpdateCommand maps remote product fields to their new values.
// Build it with PriceUpdate or StockUpdate.
type UpdateCommand map[string]any

// PriceUpdate sets price and regular_price to the same value, the store treats
// them as must-match duplicates. sale_price is only included when sale is
// non-nil and non-zero; a zero sale is treated as no sale.
func PriceUpdate(price decimal.Decimal, sale *decimal.Decimal) UpdateCommand {
	p := FormatPrice(price)
	cmd := UpdateCommand{
		FieldPrice:        p,
		FieldRegularPrice: p,
	}
	if sale != nil && !sale.IsZero() {
		cmd[FieldSalePrice] = FormatPrice(*sale)
	}
	return cmd
}

// StockUpdate sets stock_quantity and always enables stock management.
func StockUpdate(quantity int) UpdateCommand {
	return UpdateCommand{
		FieldStockQuantity: quantity,
		FieldManageStock:   true,
	}
}

// FormatPrice renders a price the way the store has always received it:
// whole amounts keep one decimal place ("15.0"), others are unpadded ("19.99").
func FormatPrice(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
