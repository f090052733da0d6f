// Package metrics provides Prometheus metrics for the order sync.
//
// Key metrics:
//   - Poll iterations and their duration, by result
//   - Orders seen, by outcome (accepted, declined, filtered)
//   - The current cursor as a Unix timestamp
//
// Metrics live on a private registry served by Handler.
package metrics
