// Package poller implements the order sync loop.
//
// Each iteration:
//   - Reads the last_order_time cursor and fetches every order created after it
//   - Drops orders whose status is not in the allowed set
//   - Normalizes each remaining order and hands it to the OrderHandler
//   - Advances the cursor to the order's creation time when the handler accepts it
//
// Delivery is at-least-once. A crash between a successful action and the
// cursor write replays that order on the next run. Orders dropped by the
// status filter are not remembered; if the cursor later moves past them they
// are never seen again.
//
// Failed iterations are retried with exponential backoff. Transport errors
// (5xx, 429, network) are retried; malformed records, cursor storage failures
// and action errors stop the poller.
package poller
