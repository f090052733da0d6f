package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *SyncConfig) Validate() error {
	if c.API.URL == "" {
		return errors.New("api.url is required")
	}
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.url must be an absolute URL, got %q", c.API.URL)
	}
	if c.API.ConsumerKey == "" {
		return errors.New("api.consumer_key is required")
	}
	if c.API.ConsumerSecret == "" {
		return errors.New("api.consumer_secret is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0, got %v", c.API.Timeout)
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.RetryBackoff <= 0 {
		return fmt.Errorf("api.retry_backoff must be > 0, got %v", c.API.RetryBackoff)
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must be >= 0")
	}

	if c.Poller.Interval < time.Second {
		return fmt.Errorf("poller.interval must be >= 1s, got %v", c.Poller.Interval)
	}
	if c.Poller.MaxConsecutiveFailures < 1 {
		return errors.New("poller.max_consecutive_failures must be >= 1")
	}
	if c.Poller.RetryMaxInterval < c.Poller.RetryInitialInterval {
		return fmt.Errorf("poller.retry_max_interval (%v) cannot be below retry_initial_interval (%v)",
			c.Poller.RetryMaxInterval, c.Poller.RetryInitialInterval)
	}

	switch c.Cursor.Backend {
	case CursorBackendFile:
		if c.Cursor.Path == "" {
			return errors.New("cursor.path is required for the file backend")
		}
	case CursorBackendRedis:
		if c.Cursor.Redis.Addr == "" {
			return errors.New("cursor.redis.addr is required for the redis backend")
		}
	case CursorBackendPostgres:
	default:
		return fmt.Errorf("cursor.backend must be one of file, redis, postgres, got %q", c.Cursor.Backend)
	}

	if c.UsesPostgres() {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	if c.Sinks.Kafka.Topic != "" && len(c.Sinks.Kafka.Brokers) == 0 {
		return errors.New("sinks.kafka.brokers is required when sinks.kafka.topic is set")
	}
	if c.Sinks.WebSocket.URL != "" {
		u, err := url.Parse(c.Sinks.WebSocket.URL)
		if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
			return fmt.Errorf("sinks.websocket.url must be a ws:// or wss:// URL, got %q", c.Sinks.WebSocket.URL)
		}
	}

	if c.Metrics.Port < 1 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
