package config

import "time"

// SyncConfig is the root configuration for a sync instance.
type SyncConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	API      APIConfig      `yaml:"api"`
	Poller   PollerConfig   `yaml:"poller"`
	Cursor   CursorConfig   `yaml:"cursor"`
	Database DatabaseConfig `yaml:"database"`
	Sinks    SinksConfig    `yaml:"sinks"`
	Metrics  MetricsConfig  `yaml:"metrics"`

	// Flat keys from the legacy config.json, folded into API/Poller by applyDefaults.
	LegacyURL            string `yaml:"url"`
	LegacyConsumerKey    string `yaml:"consumer_key"`
	LegacyConsumerSecret string `yaml:"consumer_secret"`
	LegacyInterval       int    `yaml:"interval"` // seconds
}

// InstanceConfig identifies this sync process.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds WooCommerce REST API settings.
type APIConfig struct {
	URL            string        `yaml:"url"`             // Store root, e.g. https://shop.example.com
	ConsumerKey    string        `yaml:"consumer_key"`    // ck_...
	ConsumerSecret string        `yaml:"consumer_secret"` // cs_...
	Version        string        `yaml:"version"`         // REST namespace, e.g. wc/v3
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst      int           `yaml:"rate_burst"`
}

// PollerConfig holds order poller settings.
type PollerConfig struct {
	Interval               time.Duration `yaml:"interval"`
	Statuses               []string      `yaml:"statuses"`
	MaxConsecutiveFailures int           `yaml:"max_consecutive_failures"`
	RetryInitialInterval   time.Duration `yaml:"retry_initial_interval"`
	RetryMaxInterval       time.Duration `yaml:"retry_max_interval"`
}

// Cursor backends.
const (
	CursorBackendFile     = "file"
	CursorBackendRedis    = "redis"
	CursorBackendPostgres = "postgres"
)

// CursorConfig selects where the order watermark is persisted.
type CursorConfig struct {
	Backend              string      `yaml:"backend"`
	Path                 string      `yaml:"path"` // file backend
	DefaultLastOrderTime string      `yaml:"default_last_order_time"`
	Redis                RedisConfig `yaml:"redis"`
}

// RedisConfig holds a Redis connection.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// DatabaseConfig holds the PostgreSQL connection used by the postgres cursor
// backend and the postgres sink.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SinksConfig selects the downstream actions run for each new order.
// Every enabled sink must accept an order before the cursor moves past it.
type SinksConfig struct {
	Log       bool            `yaml:"log"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Postgres  PostgresSink    `yaml:"postgres"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// KafkaConfig holds the order topic publisher settings.
type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	Topic        string        `yaml:"topic"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PostgresSink enables the order ledger in database.postgres.
type PostgresSink struct {
	Enabled bool `yaml:"enabled"`
}

// WebSocketConfig holds the notification endpoint settings.
type WebSocketConfig struct {
	URL          string        `yaml:"url"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// MetricsConfig holds Prometheus metrics and health server settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
