// Package woo provides the WooCommerce REST API client.
//
// All calls go to the versioned namespace under {store}/wp-json, normally wc/v3:
//   - GET /orders?after=...    orders created after the sync cursor
//   - GET /orders/{id}         single order
//   - GET /products?page=N     paged product listing (100 per page)
//   - GET /products/{id}       single product
//   - PUT /products/{id}       price and stock updates
//
// Raw records are decoded into the API* types in types.go and converted to
// package model shapes in convert.go.
package woo
