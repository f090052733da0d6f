// Package model defines shared data types used across the order sync service.
//
// Types here are the canonical shapes produced from WooCommerce records; wire
// formats live in package woo.
//
// Conventions:
//   - Prices: decimal.Decimal, never float
//   - Timestamps: ISO 8601 strings as sent by the store (site-local, no zone)
//   - IDs: int64 as assigned by WooCommerce
package model
