package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/woo-sync/internal/app"
	"github.com/rickgao/woo-sync/internal/config"
	"github.com/rickgao/woo-sync/internal/cursor"
	"github.com/rickgao/woo-sync/internal/metrics"
	"github.com/rickgao/woo-sync/internal/poller"
	"github.com/rickgao/woo-sync/internal/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting woosync",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"store_url", cfg.API.URL,
		"cursor_backend", cfg.Cursor.Backend,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("woosync stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("woosync stopped")
}

func run(ctx context.Context, cfg *config.SyncConfig, logger *slog.Logger) error {
	res, err := app.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer res.Close()

	store, err := app.CursorStore(ctx, cfg, res)
	if err != nil {
		return fmt.Errorf("open cursor store: %w", err)
	}

	client, err := app.Client(cfg, logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	sinks, err := app.Sinks(ctx, cfg, res, logger)
	if err != nil {
		return fmt.Errorf("create sinks: %w", err)
	}
	defer sinks.Close()

	m := metrics.New(cfg.Instance.ID)
	p := poller.New(app.PollerConfig(cfg), client, store, sinks, logger, poller.WithRecorder(m))

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: createHealthHandler(cfg, res, store, m, logger),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Metrics.Port)
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return healthServer.Shutdown(shutdownCtx)
	})

	// Run returns nil on cancellation, after the in-flight iteration finishes.
	g.Go(func() error {
		if err := p.Run(gctx); err != nil {
			return fmt.Errorf("poller: %w", err)
		}
		return nil
	})

	logger.Info("woosync running",
		"instance_id", cfg.Instance.ID,
		"interval", cfg.Poller.Interval,
		"sinks", sinks.Len(),
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Metrics.Port),
	)

	return g.Wait()
}

// createHealthHandler creates the HTTP handler for health checks and metrics.
func createHealthHandler(cfg *config.SyncConfig, res *app.Resources, store cursor.Store, m *metrics.SyncMetrics, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Version    string         `json:"version"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Version:    version.String(),
			Components: make(map[string]any),
		}

		// Check databases
		if err := res.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["database"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		}

		// Check cursor
		if v, err := store.Get(ctx, cursor.KeyLastOrderTime); err != nil {
			health.Status = "unhealthy"
			health.Components["cursor"] = map[string]string{
				"backend": cfg.Cursor.Backend,
				"error":   err.Error(),
			}
		} else {
			health.Components["cursor"] = map[string]string{
				"backend":         cfg.Cursor.Backend,
				"last_order_time": v,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		if err := json.NewEncoder(w).Encode(health); err != nil {
			logger.Debug("write health response", "error", err)
		}
	})

	mux.HandleFunc("/debug/cursor", func(w http.ResponseWriter, r *http.Request) {
		v, err := store.Get(r.Context(), cursor.KeyLastOrderTime)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			cursor.KeyLastOrderTime: v,
		})
	})

	mux.Handle(cfg.Metrics.Path, m.Handler())

	return mux
}
