// Package cursor persists the sync watermark.
//
// A Store maps a small set of named keys to string values. The only key the
// poller uses is KeyLastOrderTime, the creation timestamp of the newest order
// that has been fully acted on. Three backends are provided:
//   - FileStore: a JSON object on local disk, replaced atomically on every write
//   - RedisStore: one Redis string per key
//   - PostgresStore: rows in a sync_cursors table
//
// Stores assume a single writer. FileStore serializes calls within a process
// but takes no lock against other processes.
package cursor
