// Package sink provides the downstream actions run for each new order.
//
// Every sink implements poller.OrderHandler. A sink returns true once the
// order is durably handed off; Multi chains sinks so the cursor only moves
// past an order every sink has taken.
//
// Delivery is at-least-once, so sinks must tolerate the same order twice:
//   - PostgresSink inserts with ON CONFLICT DO NOTHING
//   - KafkaSink keys messages by order ID for downstream compaction
//   - WebSocketSink and LogSink simply repeat themselves
package sink
