package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rickgao/woo-sync/internal/auth"
	"github.com/rickgao/woo-sync/internal/config"
	"github.com/rickgao/woo-sync/internal/cursor"
	"github.com/rickgao/woo-sync/internal/database"
	"github.com/rickgao/woo-sync/internal/poller"
	"github.com/rickgao/woo-sync/internal/sink"
	"github.com/rickgao/woo-sync/internal/woo"
)

// Resources holds connections opened for the configured backends.
type Resources struct {
	Postgres *pgxpool.Pool
	Redis    *redis.Client
}

// Open connects to the databases the config asks for.
func Open(ctx context.Context, cfg *config.SyncConfig, logger *slog.Logger) (*Resources, error) {
	if logger == nil {
		logger = slog.Default()
	}
	res := &Resources{}

	if cfg.UsesPostgres() {
		logger.Info("connecting to database",
			"host", cfg.Database.Postgres.Host,
			"port", cfg.Database.Postgres.Port,
			"database", cfg.Database.Postgres.Name,
		)
		pool, err := database.Connect(ctx, cfg.Database.Postgres, cfg.Instance.ID)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		res.Postgres = pool
	}

	if cfg.Cursor.Backend == config.CursorBackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cursor.Redis.Addr,
			Password: cfg.Cursor.Redis.Password,
			DB:       cfg.Cursor.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			res.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Cursor.Redis.Addr, err)
		}
		res.Redis = client
	}

	return res, nil
}

// Ping checks every open connection.
func (r *Resources) Ping(ctx context.Context) error {
	if r.Postgres != nil {
		if err := r.Postgres.Ping(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
	}
	if r.Redis != nil {
		if err := r.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
	}
	return nil
}

// Close closes every open connection.
func (r *Resources) Close() {
	if r.Postgres != nil {
		r.Postgres.Close()
	}
	if r.Redis != nil {
		r.Redis.Close()
	}
}

// CursorStore opens the configured cursor backend.
func CursorStore(ctx context.Context, cfg *config.SyncConfig, res *Resources) (cursor.Store, error) {
	defaults := map[string]string{cursor.KeyLastOrderTime: cfg.Cursor.DefaultLastOrderTime}

	switch cfg.Cursor.Backend {
	case config.CursorBackendRedis:
		return cursor.NewRedisStore(ctx, res.Redis, cfg.Cursor.Redis.KeyPrefix, defaults)
	case config.CursorBackendPostgres:
		return cursor.NewPostgresStore(ctx, res.Postgres, defaults)
	default:
		return cursor.NewFileStore(cfg.Cursor.Path, defaults)
	}
}

// Client creates the WooCommerce client.
func Client(cfg *config.SyncConfig, logger *slog.Logger) (*woo.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	creds, err := auth.NewCredentials(cfg.API.ConsumerKey, cfg.API.ConsumerSecret)
	if err != nil {
		return nil, err
	}

	return woo.NewClient(
		woo.BaseURL(cfg.API.URL, cfg.API.Version),
		creds,
		woo.WithLogger(logger),
		woo.WithTimeout(cfg.API.Timeout),
		woo.WithRetries(cfg.API.MaxRetries, cfg.API.RetryBackoff),
		woo.WithRateLimit(cfg.API.RateLimit, cfg.API.RateBurst),
	), nil
}

// Sinks builds the sink chain. With nothing configured, orders are logged.
func Sinks(ctx context.Context, cfg *config.SyncConfig, res *Resources, logger *slog.Logger) (*sink.Chain, error) {
	var sinks []sink.Sink

	if cfg.Sinks.Postgres.Enabled {
		pg := sink.NewPostgresSink(res.Postgres, logger)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		sinks = append(sinks, pg)
	}
	if cfg.Sinks.Kafka.Topic != "" {
		sinks = append(sinks, sink.NewKafkaSink(cfg.Sinks.Kafka.Brokers, cfg.Sinks.Kafka.Topic, cfg.Sinks.Kafka.WriteTimeout, logger))
	}
	if cfg.Sinks.WebSocket.URL != "" {
		sinks = append(sinks, sink.NewWebSocketSink(cfg.Sinks.WebSocket.URL, cfg.Sinks.WebSocket.WriteTimeout, logger))
	}
	if cfg.Sinks.Log || len(sinks) == 0 {
		sinks = append(sinks, sink.NewLogSink(logger))
	}

	return sink.Multi(sinks...), nil
}

// PollerConfig maps the poller section onto poller.Config.
func PollerConfig(cfg *config.SyncConfig) poller.Config {
	return poller.Config{
		Interval:               cfg.Poller.Interval,
		Statuses:               cfg.Poller.Statuses,
		CursorKey:              cursor.KeyLastOrderTime,
		MaxConsecutiveFailures: cfg.Poller.MaxConsecutiveFailures,
		RetryInitialInterval:   cfg.Poller.RetryInitialInterval,
		RetryMaxInterval:       cfg.Poller.RetryMaxInterval,
	}
}
