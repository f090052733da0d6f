package app

import (
	"context"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rickgao/woo-sync/internal/config"
	"github.com/rickgao/woo-sync/internal/cursor"
)

func testConfig(t *testing.T) *config.SyncConfig {
	t.Helper()
	return &config.SyncConfig{
		Instance: config.InstanceConfig{ID: "test"},
		API: config.APIConfig{
			URL:            "https://shop.example.com",
			ConsumerKey:    "ck_test",
			ConsumerSecret: "cs_test",
			Version:        "wc/v3",
			Timeout:        5 * time.Second,
			MaxRetries:     2,
			RetryBackoff:   time.Second,
		},
		Poller: config.PollerConfig{
			Interval:               30 * time.Second,
			Statuses:               []string{"completed"},
			MaxConsecutiveFailures: 4,
			RetryInitialInterval:   time.Second,
			RetryMaxInterval:       time.Minute,
		},
		Cursor: config.CursorConfig{
			Backend:              config.CursorBackendFile,
			Path:                 filepath.Join(t.TempDir(), "app-data.json"),
			DefaultLastOrderTime: "2023-06-01T00:00:00",
		},
	}
}

func TestCursorStore_File(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	res, err := Open(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer res.Close()
	if err := res.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	store, err := CursorStore(ctx, cfg, res)
	if err != nil {
		t.Fatalf("CursorStore failed: %v", err)
	}

	v, err := store.Get(ctx, cursor.KeyLastOrderTime)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "2023-06-01T00:00:00" {
		t.Errorf("cursor = %q, want configured default 2023-06-01T00:00:00", v)
	}
}

func TestClient(t *testing.T) {
	cfg := testConfig(t)

	client, err := Client(cfg, nil)
	if err != nil {
		t.Fatalf("Client failed: %v", err)
	}
	if client == nil {
		t.Fatal("Client returned nil")
	}

	cfg.API.ConsumerKey = ""
	if _, err := Client(cfg, nil); err == nil {
		t.Error("expected error for missing consumer key")
	}
}

func TestSinks(t *testing.T) {
	ctx := context.Background()

	t.Run("log sink by default", func(t *testing.T) {
		chain, err := Sinks(ctx, testConfig(t), &Resources{}, nil)
		if err != nil {
			t.Fatalf("Sinks failed: %v", err)
		}
		if chain.Len() != 1 {
			t.Errorf("Len = %d, want 1", chain.Len())
		}
	})

	t.Run("kafka and websocket", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Sinks.Kafka = config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "orders"}
		cfg.Sinks.WebSocket = config.WebSocketConfig{URL: "ws://localhost:9999/notify"}

		chain, err := Sinks(ctx, cfg, &Resources{}, nil)
		if err != nil {
			t.Fatalf("Sinks failed: %v", err)
		}
		if chain.Len() != 2 {
			t.Errorf("Len = %d, want 2", chain.Len())
		}
		if err := chain.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
}

func TestPollerConfig(t *testing.T) {
	pc := PollerConfig(testConfig(t))

	if pc.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", pc.Interval)
	}
	if !slices.Equal(pc.Statuses, []string{"completed"}) {
		t.Errorf("Statuses = %v, want [completed]", pc.Statuses)
	}
	if pc.CursorKey != cursor.KeyLastOrderTime {
		t.Errorf("CursorKey = %q, want %q", pc.CursorKey, cursor.KeyLastOrderTime)
	}
	if pc.MaxConsecutiveFailures != 4 {
		t.Errorf("MaxConsecutiveFailures = %d, want 4", pc.MaxConsecutiveFailures)
	}
}
