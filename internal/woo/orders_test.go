package woo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rickgao/woo-sync/internal/model"
)

func TestGetOrdersAfter(t *testing.T) {
	var pages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("Path = %q, want /orders", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("after") != "2024-01-01T00:00:00" {
			t.Errorf("after = %q", q.Get("after"))
		}
		if q.Get("orderby") != "date" || q.Get("order") != "asc" {
			t.Errorf("ordering = %q/%q, want date/asc", q.Get("orderby"), q.Get("order"))
		}
		if q.Get("per_page") != "2" {
			t.Errorf("per_page = %q, want 2", q.Get("per_page"))
		}

		page := q.Get("page")
		pages = append(pages, page)
		switch page {
		case "1":
			fmt.Fprint(w, `[{"id": 1, "status": "pending", "date_created": "2024-02-01T00:00:00", "line_items": []},
				{"id": 2, "status": "completed", "date_created": "2024-02-02T00:00:00", "line_items": []}]`)
		case "2":
			fmt.Fprint(w, `[{"id": 3, "status": "on-hold", "date_created": "2024-02-03T00:00:00", "line_items": []}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, WithPageSize(2))
	orders, err := c.GetOrdersAfter(context.Background(), "2024-01-01T00:00:00")
	if err != nil {
		t.Fatalf("GetOrdersAfter failed: %v", err)
	}

	if len(orders) != 3 {
		t.Fatalf("len(orders) = %d, want 3", len(orders))
	}
	for i, o := range orders {
		if o.ID != int64(i+1) {
			t.Errorf("orders[%d].ID = %d, want %d", i, o.ID, i+1)
		}
	}
	if len(pages) != 3 || pages[0] != "1" || pages[2] != "3" {
		t.Errorf("pages requested = %v, want [1 2 3]", pages)
	}
}

func TestGetOrders_OmitsEmptyOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "status=completed" {
			t.Errorf("RawQuery = %q, want status=completed", r.URL.RawQuery)
		}
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	if _, err := c.GetOrders(context.Background(), GetOrdersOptions{Status: "completed"}); err != nil {
		t.Fatalf("GetOrders failed: %v", err)
	}
}

func TestGetNormalizedOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders/10":
			fmt.Fprint(w, `{"id": 10, "status": "completed", "date_created": "2024-03-01T12:00:00",
				"customer_id": 3, "billing": {"first_name": "Grace", "last_name": "Hopper"},
				"line_items": [{"product_id": 42, "quantity": 1}]}`)
		case "/orders/11":
			fmt.Fprint(w, `{"id": 11, "status": "completed"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"code": "woocommerce_rest_shop_order_invalid_id", "message": "Invalid ID."}`)
		}
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)

	t.Run("normalized", func(t *testing.T) {
		order, err := c.GetNormalizedOrder(context.Background(), 10)
		if err != nil {
			t.Fatalf("GetNormalizedOrder failed: %v", err)
		}
		if order.CustomerName != "Grace Hopper" {
			t.Errorf("CustomerName = %q", order.CustomerName)
		}
		if len(order.LineItems) != 1 || order.LineItems[0] != (model.LineItem{ProductID: 42, Quantity: 1}) {
			t.Errorf("LineItems = %+v", order.LineItems)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := c.GetNormalizedOrder(context.Background(), 11)
		var shapeErr *model.DataShapeError
		if !errors.As(err, &shapeErr) {
			t.Fatalf("expected *model.DataShapeError, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetNormalizedOrder(context.Background(), 99)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "woocommerce_rest_shop_order_invalid_id" {
			t.Errorf("APIError = %+v", apiErr)
		}
	})
}
