// Package config provides configuration persistence for the system.
//
// Config describes the desired deployment shape: where to listen, where the
// store lives, and the engine tunables. It is control-plane state, loaded
// once at startup; changes are not hot-reloaded.
package config

import (
	"fmt"
	"log/slog"
)

// Store types.
const (
	StoreTypeFile   = "file"
	StoreTypeMemory = "memory"
)

// Compression modes for the file store.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Config describes the desired deployment shape.
type Config struct {
	// Addr is the listen address (host:port).
	Addr string `json:"addr"`

	// DataDir is the store directory for the file store type.
	DataDir string `json:"data_dir"`

	// StoreType selects the persistence backend: "file" or "memory".
	StoreType string `json:"store_type"`

	// CacheSize is the maximum number of chunks simultaneously resident.
	CacheSize int `json:"cache_size"`

	// SnapshotEvery is the number of mutations between snapshots. 1 means
	// snapshot after every write; higher values trade durability
	// granularity for throughput.
	SnapshotEvery int `json:"snapshot_every"`

	// Compression selects chunk and mapping file compression: "none" or
	// "zstd". Ignored by the memory store.
	Compression string `json:"compression"`

	// LogLevel is the default log level: "debug", "info", "warn", "error".
	LogLevel string `json:"log_level"`
}

// Default returns the default configuration. The engine's own tunable
// defaults are conservative; deployments get a larger resident set.
func Default() *Config {
	return &Config{
		Addr:          ":50051",
		DataDir:       "data",
		StoreType:     StoreTypeFile,
		CacheSize:     64,
		SnapshotEvery: 1,
		Compression:   CompressionNone,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	switch c.StoreType {
	case StoreTypeFile:
		if c.DataDir == "" {
			return fmt.Errorf("data_dir is required for the file store")
		}
	case StoreTypeMemory:
	default:
		return fmt.Errorf("unknown store_type %q", c.StoreType)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}
	if c.SnapshotEvery <= 0 {
		return fmt.Errorf("snapshot_every must be positive, got %d", c.SnapshotEvery)
	}
	switch c.Compression {
	case CompressionNone, CompressionZstd:
	default:
		return fmt.Errorf("unknown compression %q", c.Compression)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config log level string to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log_level %q", level)
	}
}
