// Package database opens the PostgreSQL pool shared by the postgres cursor
// backend and the postgres order sink.
package database
