package cursor

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
)

// Cursor keys and defaults.
const (
	KeyLastOrderTime     = "last_order_time"
	DefaultLastOrderTime = "2024-01-01T00:00:00"
)

// ErrKeyNotFound is returned when a key has neither a stored value nor a default.
var ErrKeyNotFound = errors.New("cursor key not found")

// Store reads and writes named cursor values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Defaults returns the default values seeded into a new store.
func Defaults() map[string]string {
	return map[string]string{KeyLastOrderTime: DefaultLastOrderTime}
}

// PersistenceError wraps a storage failure. It is never swallowed: the poller
// treats it as fatal.
type PersistenceError struct {
	Op   string // read, decode, write, get, set, seed
	Path string // file path, redis key or table
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cursor %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// MemoryStore keeps values in a map. Nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string
}

// NewMemoryStore creates a MemoryStore seeded with defaults.
func NewMemoryStore(defaults map[string]string) *MemoryStore {
	return &MemoryStore{
		values:   maps.Clone(defaults),
		defaults: maps.Clone(defaults),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.values[key]; ok {
		return v, nil
	}
	if v, ok := s.defaults[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

func lookupDefault(defaults map[string]string, key string) (string, error) {
	if v, ok := defaults[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}
