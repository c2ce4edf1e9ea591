package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the full skilltrack configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Seed    bool          `mapstructure:"seed"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StoreConfig selects and configures the key-value backend
type StoreConfig struct {
	Backend  string         `mapstructure:"backend"` // file, memory, redis, postgres
	Path     string         `mapstructure:"path"`    // file backend only
	Timeout  string         `mapstructure:"timeout"` // per-call bound for remote backends
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Addr           string `mapstructure:"addr"`
	Password       string `mapstructure:"password"`
	PasswordSecret string `mapstructure:"password_secret"` // Secret Manager path, overrides Password
	DB             int    `mapstructure:"db"`
	Prefix         string `mapstructure:"prefix"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	DSN            string `mapstructure:"dsn"`
	PasswordSecret string `mapstructure:"password_secret"` // Secret Manager path, overrides the DSN password
	Table          string `mapstructure:"table"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // console, json
}

// MetricsConfig controls metric export
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // node_exporter textfile path, empty disables
}

// Backend names
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// Load loads configuration from file and environment
func Load() (*Config, error) {
	viper.SetDefault("seed", true)

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults
	applyDefaults(cfg)

	return cfg, nil
}

// DefaultStorePath returns ~/.skilltrack/store.json, or a path relative to
// the working directory when the home directory is unknown.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".skilltrack", "store.json")
	}
	return filepath.Join(home, ".skilltrack", "store.json")
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendFile
	}

	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath()
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)

	if cfg.Store.Timeout == "" {
		cfg.Store.Timeout = "5s"
	}

	if cfg.Store.Redis.Addr == "" {
		cfg.Store.Redis.Addr = "localhost:6379"
	}

	if cfg.Store.Redis.Prefix == "" {
		cfg.Store.Redis.Prefix = "skilltrack:"
	}

	if cfg.Store.Postgres.Table == "" {
		cfg.Store.Postgres.Table = "skilltrack_kv"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// StoreTimeout returns the parsed store timeout.
func (c *Config) StoreTimeout() time.Duration {
	d, err := time.ParseDuration(c.Store.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validBackends := map[string]bool{
		BackendFile:     true,
		BackendMemory:   true,
		BackendRedis:    true,
		BackendPostgres: true,
	}
	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("invalid store backend: %s (must be file, memory, redis, or postgres)", c.Store.Backend)
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("store path is required for the file backend")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for the redis backend")
		}
		if c.Store.Redis.DB < 0 {
			return fmt.Errorf("invalid redis db: %d", c.Store.Redis.DB)
		}
	case BackendPostgres:
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("postgres dsn is required for the postgres backend")
		}
		if !tableNamePattern.MatchString(c.Store.Postgres.Table) {
			return fmt.Errorf("invalid postgres table: %q", c.Store.Postgres.Table)
		}
	}

	if c.Store.Timeout != "" {
		d, err := time.ParseDuration(c.Store.Timeout)
		if err != nil {
			return fmt.Errorf("invalid store timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("store timeout must be positive")
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	validFormats := map[string]bool{"console": true, "json": true}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Log.Format)
	}

	return nil
}

// NeedsSecrets reports whether any backend password must be fetched from
// Secret Manager.
func (c *Config) NeedsSecrets() bool {
	switch c.Store.Backend {
	case BackendRedis:
		return c.Store.Redis.PasswordSecret != ""
	case BackendPostgres:
		return c.Store.Postgres.PasswordSecret != ""
	}
	return false
}
