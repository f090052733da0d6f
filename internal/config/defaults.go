package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultInstanceID             = "woosync"
	DefaultAPIVersion             = "wc/v3"
	DefaultAPITimeout             = 30 * time.Second
	DefaultMaxRetries             = 3
	DefaultRetryBackoff           = 1 * time.Second
	DefaultRateBurst              = 1
	DefaultPollInterval           = 20 * time.Second
	DefaultMaxConsecutiveFailures = 5
	DefaultRetryInitialInterval   = 1 * time.Second
	DefaultRetryMaxInterval       = 1 * time.Minute
	DefaultCursorBackend          = CursorBackendFile
	DefaultCursorPath             = "app-data.json"
	DefaultLastOrderTime          = "2024-01-01T00:00:00"
	DefaultRedisKeyPrefix         = "woosync:cursor:"
	DefaultDBPort                 = 5432
	DefaultDBSSLMode              = "prefer"
	DefaultMaxConns               = 4
	DefaultMinConns               = 1
	DefaultKafkaWriteTimeout      = 10 * time.Second
	DefaultWSWriteTimeout         = 10 * time.Second
	DefaultMetricsPort            = 9090
	DefaultMetricsPath            = "/metrics"
)

// DefaultStatuses are the order statuses reported to sinks.
var DefaultStatuses = []string{"on-hold", "completed"}

func (c *SyncConfig) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}

	// Legacy flat keys only fill what the nested sections leave empty.
	if c.API.URL == "" {
		c.API.URL = c.LegacyURL
	}
	if c.API.ConsumerKey == "" {
		c.API.ConsumerKey = c.LegacyConsumerKey
	}
	if c.API.ConsumerSecret == "" {
		c.API.ConsumerSecret = c.LegacyConsumerSecret
	}
	if c.Poller.Interval == 0 && c.LegacyInterval > 0 {
		c.Poller.Interval = time.Duration(c.LegacyInterval) * time.Second
	}

	// API defaults
	if c.API.Version == "" {
		c.API.Version = DefaultAPIVersion
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.RateLimit > 0 && c.API.RateBurst == 0 {
		c.API.RateBurst = DefaultRateBurst
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if len(c.Poller.Statuses) == 0 {
		c.Poller.Statuses = append([]string(nil), DefaultStatuses...)
	}
	if c.Poller.MaxConsecutiveFailures == 0 {
		c.Poller.MaxConsecutiveFailures = DefaultMaxConsecutiveFailures
	}
	if c.Poller.RetryInitialInterval == 0 {
		c.Poller.RetryInitialInterval = DefaultRetryInitialInterval
	}
	if c.Poller.RetryMaxInterval == 0 {
		c.Poller.RetryMaxInterval = DefaultRetryMaxInterval
	}

	// Cursor defaults
	if c.Cursor.Backend == "" {
		c.Cursor.Backend = DefaultCursorBackend
	}
	if c.Cursor.Path == "" {
		c.Cursor.Path = DefaultCursorPath
	}
	if c.Cursor.DefaultLastOrderTime == "" {
		c.Cursor.DefaultLastOrderTime = DefaultLastOrderTime
	}
	if c.Cursor.Redis.KeyPrefix == "" {
		c.Cursor.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Sink defaults
	if c.Sinks.Kafka.WriteTimeout == 0 {
		c.Sinks.Kafka.WriteTimeout = DefaultKafkaWriteTimeout
	}
	if c.Sinks.WebSocket.WriteTimeout == 0 {
		c.Sinks.WebSocket.WriteTimeout = DefaultWSWriteTimeout
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}

// UsesPostgres reports whether any component needs database.postgres.
func (c *SyncConfig) UsesPostgres() bool {
	return c.Cursor.Backend == CursorBackendPostgres || c.Sinks.Postgres.Enabled
}
