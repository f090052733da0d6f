package woo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rickgao/woo-sync/internal/model"
)

// ToModel converts an APIOrder to model.Order.
//
// A missing billing block gives an empty customer name. A missing line_items
// field is a malformed order and returns *model.DataShapeError; it never
// degrades to an empty product list.
func (o *APIOrder) ToModel() (model.Order, error) {
	order := model.Order{
		ID:         o.ID,
		Status:     o.Status,
		CreatedAt:  o.DateCreated,
		CustomerID: o.CustomerID,
	}

	name, err := o.customerName()
	if err != nil {
		return model.Order{}, err
	}
	order.CustomerName = name

	if o.LineItems == nil {
		return model.Order{}, o.shapeError("line_items")
	}

	order.LineItems = make([]model.LineItem, 0, len(o.LineItems))
	for i, li := range o.LineItems {
		if li.ProductID == nil {
			return model.Order{}, o.shapeError(fmt.Sprintf("line_items[%d].product_id", i))
		}
		if li.Quantity == nil {
			return model.Order{}, o.shapeError(fmt.Sprintf("line_items[%d].quantity", i))
		}
		order.LineItems = append(order.LineItems, model.LineItem{
			ProductID: *li.ProductID,
			Quantity:  *li.Quantity,
		})
	}

	return order, nil
}

func (o *APIOrder) customerName() (string, error) {
	b := o.Billing
	if b == nil || (b.FirstName == nil && b.LastName == nil) {
		return "", nil
	}
	if b.FirstName == nil {
		return "", o.shapeError("billing.first_name")
	}
	if b.LastName == nil {
		return "", o.shapeError("billing.last_name")
	}
	return *b.FirstName + " " + *b.LastName, nil
}

func (o *APIOrder) shapeError(field string) *model.DataShapeError {
	return &model.DataShapeError{Record: "order", ID: o.ID, Field: field}
}

// ToSummary converts an APIProduct to model.ProductSummary.
// The price prefers a non-empty regular_price over price.
func (p *APIProduct) ToSummary() (model.ProductSummary, error) {
	field, raw := "regular_price", p.RegularPrice
	if raw == "" {
		field, raw = "price", p.Price
	}
	if raw == "" {
		return model.ProductSummary{}, &model.DataShapeError{Record: "product", ID: p.ID, Field: "price", Reason: "empty"}
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return model.ProductSummary{}, &model.DataShapeError{
			Record: "product",
			ID:     p.ID,
			Field:  field,
			Reason: fmt.Sprintf("not a decimal: %q", raw),
		}
	}

	return model.ProductSummary{
		ID:            p.ID,
		StockQuantity: p.StockQuantity,
		Price:         price,
	}, nil
}
