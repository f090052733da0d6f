package woo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/woo-sync/internal/model"
)

// GetOrders fetches a page of orders.
func (c *Client) GetOrders(ctx context.Context, opts GetOrdersOptions) ([]APIOrder, error) {
	query := url.Values{}

	if opts.After != "" {
		query.Set("after", opts.After)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.OrderBy != "" {
		query.Set("orderby", opts.OrderBy)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}

	var orders []APIOrder
	if err := c.get(ctx, "/orders", query, &orders); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}

	return orders, nil
}

// GetOrdersAfter fetches every order created after the given timestamp,
// oldest first, walking pages until an empty one.
func (c *Client) GetOrdersAfter(ctx context.Context, after string) ([]APIOrder, error) {
	var all []APIOrder
	opts := GetOrdersOptions{
		After:   after,
		PerPage: c.pageSize,
		OrderBy: "date",
		Order:   "asc",
	}

	for page := 1; ; page++ {
		opts.Page = page
		orders, err := c.GetOrders(ctx, opts)
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			break
		}
		all = append(all, orders...)
	}

	return all, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id int64) (*APIOrder, error) {
	var order APIOrder
	if err := c.get(ctx, "/orders/"+strconv.FormatInt(id, 10), nil, &order); err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &order, nil
}

// GetNormalizedOrder fetches a single order and converts it to its canonical form.
func (c *Client) GetNormalizedOrder(ctx context.Context, id int64) (model.Order, error) {
	raw, err := c.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	return raw.ToModel()
}
