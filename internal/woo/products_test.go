package woo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rickgao/woo-sync/internal/model"
)

// pagedProducts serves product pages of the given sizes, then empty pages.
func pagedProducts(t *testing.T, sizes []int, requests *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(requests, 1)
		if r.URL.Path != "/products" {
			t.Errorf("Path = %q, want /products", r.URL.Path)
		}
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q, want 100", r.URL.Query().Get("per_page"))
		}

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		products := []map[string]any{}
		if page >= 1 && page <= len(sizes) {
			for i := 0; i < sizes[page-1]; i++ {
				id := page*1000 + i
				products = append(products, map[string]any{
					"id":             id,
					"price":          "24.99",
					"regular_price":  "19.99",
					"stock_quantity": i,
				})
			}
		}
		json.NewEncoder(w).Encode(products)
	}))
}

func TestListProducts_Pagination(t *testing.T) {
	var requests int32
	server := pagedProducts(t, []int{100, 100, 37, 0}, &requests)
	defer server.Close()

	c := NewClient(server.URL, nil)
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	if len(products) != 237 {
		t.Errorf("len(products) = %d, want 237", len(products))
	}
	if requests != 4 {
		t.Errorf("requests = %d, want 4", requests)
	}

	// Page order, then in-page order.
	if products[0].ID != 1000 || products[99].ID != 1099 || products[100].ID != 2000 || products[236].ID != 3036 {
		t.Errorf("order not preserved: first=%d p1-last=%d p2-first=%d last=%d",
			products[0].ID, products[99].ID, products[100].ID, products[236].ID)
	}
	if len(products[0].Raw) == 0 {
		t.Error("full records should keep their raw JSON")
	}
}

func TestListProducts_ShortPageDoesNotStop(t *testing.T) {
	var requests int32
	server := pagedProducts(t, []int{3, 100, 1}, &requests)
	defer server.Close()

	c := NewClient(server.URL, nil)
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}

	if len(products) != 104 {
		t.Errorf("len(products) = %d, want 104", len(products))
	}
	if requests != 4 {
		t.Errorf("requests = %d, want 4", requests)
	}
}

func TestListProducts_EmptyCatalog(t *testing.T) {
	var requests int32
	server := pagedProducts(t, nil, &requests)
	defer server.Close()

	c := NewClient(server.URL, nil)
	products, err := c.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("len(products) = %d, want 0", len(products))
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestListProductSummaries(t *testing.T) {
	var requests int32
	server := pagedProducts(t, []int{2, 1}, &requests)
	defer server.Close()

	c := NewClient(server.URL, nil)
	summaries, err := c.ListProductSummaries(context.Background())
	if err != nil {
		t.Fatalf("ListProductSummaries failed: %v", err)
	}

	if len(summaries) != 3 {
		t.Fatalf("len(summaries) = %d, want 3", len(summaries))
	}
	for _, s := range summaries {
		if !s.Price.Equal(decimal.RequireFromString("19.99")) {
			t.Errorf("product %d price = %s, want 19.99", s.ID, s.Price)
		}
	}
	if summaries[1].StockQuantity == nil || *summaries[1].StockQuantity != 1 {
		t.Errorf("summaries[1].StockQuantity = %v, want 1", summaries[1].StockQuantity)
	}
}

func TestListProductSummaries_MalformedPriceStops(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`[{"id": 1, "price": "", "regular_price": ""}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	_, err := c.ListProductSummaries(context.Background())

	var shapeErr *model.DataShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected *model.DataShapeError, got %v", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestListProducts_ErrorMidway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`[{"id": 1, "price": "1"}]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	products, err := c.ListProducts(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if products != nil {
		t.Errorf("products = %v, want nil on error", products)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 APIError, got %v", err)
	}
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/42" {
			t.Errorf("Path = %q, want /products/42", r.URL.Path)
		}
		fmt.Fprint(w, `{"id": 42, "name": "Mug", "price": "9.50", "stock_quantity": null}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	p, err := c.GetProduct(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if p.ID != 42 || p.Name != "Mug" || p.Price != "9.50" {
		t.Errorf("product = %+v", p)
	}
	if p.StockQuantity != nil {
		t.Errorf("StockQuantity = %v, want nil", *p.StockQuantity)
	}
}
