package sink

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB records batches and answers each queued statement in turn.
type fakeDB struct {
	execs   []string
	batches []*pgx.Batch
	tags    []pgconn.CommandTag
	err     error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, sql)
	return pgconn.CommandTag{}, f.err
}

func (f *fakeDB) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return &fakeResults{tags: f.tags, err: f.err}
}

type fakeResults struct {
	tags   []pgconn.CommandTag
	err    error
	next   int
	closed bool
}

func (r *fakeResults) Exec() (pgconn.CommandTag, error) {
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	tag := pgconn.NewCommandTag("INSERT 0 1")
	if r.next < len(r.tags) {
		tag = r.tags[r.next]
	}
	r.next++
	return tag, nil
}

func (r *fakeResults) Query() (pgx.Rows, error) { return nil, errors.New("not supported") }
func (r *fakeResults) QueryRow() pgx.Row        { return nil }
func (r *fakeResults) Close() error {
	r.closed = true
	return nil
}

func TestPostgresSink_HandleOrder(t *testing.T) {
	db := &fakeDB{}
	s := NewPostgresSink(db, nil)

	ok, err := s.HandleOrder(context.Background(), testOrder())
	if err != nil || !ok {
		t.Fatalf("HandleOrder = %v, %v, want true, nil", ok, err)
	}

	if len(db.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(db.batches))
	}
	b := db.batches[0]
	if b.Len() != 3 {
		t.Fatalf("batch len = %d, want 3", b.Len())
	}

	head := b.QueuedQueries[0]
	if !strings.Contains(head.SQL, "INSERT INTO synced_orders") || !strings.Contains(head.SQL, "ON CONFLICT (order_id) DO NOTHING") {
		t.Errorf("order statement = %q", head.SQL)
	}
	if head.Arguments[0] != int64(1001) {
		t.Errorf("order_id = %v, want 1001", head.Arguments[0])
	}

	for i, q := range b.QueuedQueries[1:] {
		if !strings.Contains(q.SQL, "INSERT INTO synced_order_items") {
			t.Errorf("item statement %d = %q", i, q.SQL)
		}
		if q.Arguments[1] != i {
			t.Errorf("item %d position = %v", i, q.Arguments[1])
		}
	}
	if got := b.QueuedQueries[1].Arguments; got[2] != int64(42) || got[3] != 2 {
		t.Errorf("first item args = %v, want product 42 quantity 2", got)
	}
}

func TestPostgresSink_ReplayIsAccepted(t *testing.T) {
	conflict := pgconn.NewCommandTag("INSERT 0 0")
	db := &fakeDB{tags: []pgconn.CommandTag{conflict, conflict, conflict}}
	s := NewPostgresSink(db, nil)

	ok, err := s.HandleOrder(context.Background(), testOrder())
	if err != nil || !ok {
		t.Errorf("HandleOrder = %v, %v, want true, nil", ok, err)
	}
}

func TestPostgresSink_Error(t *testing.T) {
	db := &fakeDB{err: errors.New("connection reset")}
	s := NewPostgresSink(db, nil)

	ok, err := s.HandleOrder(context.Background(), testOrder())
	if err == nil {
		t.Error("expected error, got nil")
	}
	if ok {
		t.Error("failed write should not be accepted")
	}
}

func TestPostgresSink_EnsureSchema(t *testing.T) {
	db := &fakeDB{}
	s := NewPostgresSink(db, nil)

	if err := s.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if len(db.execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(db.execs))
	}
	if !strings.Contains(db.execs[0], "synced_orders") || !strings.Contains(db.execs[0], "synced_order_items") {
		t.Errorf("schema statement = %q", db.execs[0])
	}
}
