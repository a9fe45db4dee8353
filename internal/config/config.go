// Package config provides environment-driven configuration for the graph kernel.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	Backend        string
	DatabaseURL    Secret
	DBMaxConns     int
	BadgerPath     string
	BadgerInMemory bool

	Port        string
	ListenHost  string
	MetricsPort string
	CORSOrigins []string
	LogLevel    string

	// OTelEndpoint is the OTLP gRPC collector. Empty disables span export.
	OTelEndpoint string

	PathMaxDepth      int
	PathMaxResults    int
	PathSearchTimeout time.Duration
	PathMaxStreams    int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Backend:        strings.ToLower(envOrDefault("STORAGE_BACKEND", BackendBadger)),
		DatabaseURL:    Secret(envOrDefault("DATABASE_URL", "")),
		BadgerPath:     envOrDefault("BADGER_PATH", "./data/graph"),
		BadgerInMemory: envOrDefault("BADGER_IN_MEMORY", "false") == "true",
		Port:           envOrDefault("PORT", "3030"),
		ListenHost:     envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:    envOrDefault("METRICS_PORT", "9091"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		OTelEndpoint:   envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	var err error

	if cfg.DBMaxConns, err = envInt("DB_MAX_CONNS", 20, 2, 200); err != nil {
		return nil, err
	}

	if cfg.PathMaxDepth, err = envInt("PATH_MAX_DEPTH", 12, 0, 64); err != nil {
		return nil, err
	}

	if cfg.PathMaxResults, err = envInt("PATH_MAX_RESULTS", 1000, 1, 100000); err != nil {
		return nil, err
	}

	if cfg.PathMaxStreams, err = envInt("PATH_MAX_STREAMS", 64, 1, 10000); err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(envOrDefault("PATH_SEARCH_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("PATH_SEARCH_TIMEOUT must be a positive duration such as 30s")
	}
	cfg.PathSearchTimeout = timeout

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the metrics listen address in host:port format.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// envInt reads an integer in [lo, hi].
func envInt(key string, fallback, lo, hi int) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return v, nil
}
