package woo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rickgao/woo-sync/internal/model"
)

// GetProducts fetches one page of products.
func (c *Client) GetProducts(ctx context.Context, page, perPage int) ([]APIProduct, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var products []APIProduct
	if err := c.get(ctx, "/products", query, &products); err != nil {
		return nil, fmt.Errorf("get products page %d: %w", page, err)
	}

	return products, nil
}

// WalkProducts calls fn for every product, page by page starting at 1.
// Only an empty page ends the walk; a short page does not.
func (c *Client) WalkProducts(ctx context.Context, fn func(APIProduct) error) error {
	for page := 1; ; page++ {
		products, err := c.GetProducts(ctx, page, c.pageSize)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		for _, p := range products {
			if err := fn(p); err != nil {
				return err
			}
		}
	}
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]APIProduct, error) {
	var all []APIProduct
	err := c.WalkProducts(ctx, func(p APIProduct) error {
		all = append(all, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// ListProductSummaries fetches the catalog as (id, stock, price) summaries.
func (c *Client) ListProductSummaries(ctx context.Context) ([]model.ProductSummary, error) {
	var all []model.ProductSummary
	err := c.WalkProducts(ctx, func(p APIProduct) error {
		s, err := p.ToSummary()
		if err != nil {
			return err
		}
		all = append(all, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*APIProduct, error) {
	var product APIProduct
	if err := c.get(ctx, productPath(id), nil, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &product, nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
