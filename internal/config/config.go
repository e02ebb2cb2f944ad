// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Listings      ListingsConfig      `yaml:"listings"`
	PricingStore  PricingStoreConfig  `yaml:"pricing_store"`
	Pricing       pricing.Config      `yaml:"pricing"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// ListingsConfig controls how hard a pricing pass leans on the listing store.
type ListingsConfig struct {
	Concurrency  int             `yaml:"concurrency"`
	QueryTimeout time.Duration   `yaml:"query_timeout"`
	QueryLimit   int             `yaml:"query_limit"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines listing store query throttling.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// PricingStoreConfig selects where the dealer's pricing configuration is
// persisted.
type PricingStoreConfig struct {
	Backend string       `yaml:"backend"` // memory, sqlite, redis
	Key     string       `yaml:"key"`
	SQLite  SQLiteConfig `yaml:"sqlite"`
	Redis   RedisConfig  `yaml:"redis"`
}

// SQLiteConfig defines the local pricing store file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig defines the shared pricing store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ScheduleConfig defines cron intervals. A zero RecomputeInterval disables
// scheduled passes.
type ScheduleConfig struct {
	RecomputeInterval time.Duration `yaml:"recompute_interval"`
	RecomputeOnStart  bool          `yaml:"recompute_on_start"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// TelemetryConfig defines OpenTelemetry export. An empty Endpoint disables
// export.
type TelemetryConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	Insecure       bool          `yaml:"insecure"`
	ServiceName    string        `yaml:"service_name"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	MetricInterval time.Duration `yaml:"metric_interval"`
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config file, if any,
// is loaded first; variables already set in the environment win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	// Pricing starts from the built-in defaults so the file only needs the
	// values it changes.
	cfg := &Config{Pricing: pricing.DefaultConfig()}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyListingsDefaults(&cfg.Listings)
	applyPricingStoreDefaults(&cfg.PricingStore)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 2 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyListingsDefaults(l *ListingsConfig) {
	if l.Concurrency == 0 {
		l.Concurrency = 8
	}
	if l.QueryTimeout == 0 {
		l.QueryTimeout = 10 * time.Second
	}
	if l.QueryLimit == 0 {
		l.QueryLimit = 200
	}
	if l.RateLimit.PerSecond == 0 {
		l.RateLimit.PerSecond = 50
	}
	if l.RateLimit.Burst == 0 {
		l.RateLimit.Burst = 10
	}
}

func applyPricingStoreDefaults(p *PricingStoreConfig) {
	if p.Backend == "" {
		p.Backend = "sqlite"
	}
	if p.SQLite.Path == "" {
		p.SQLite.Path = "data/pricing.db"
	}
	if p.Redis.Addr == "" {
		p.Redis.Addr = "localhost:6379"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "pricing-engine"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
	}
	if t.MetricInterval == 0 {
		t.MetricInterval = 30 * time.Second
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Listings.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("listings.concurrency must be at least 1"))
	}
	if cfg.Listings.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("listings.rate_limit.per_second must not be negative"))
	}

	switch cfg.PricingStore.Backend {
	case "memory", "redis":
	case "sqlite":
		if cfg.PricingStore.SQLite.Path == "" {
			errs = append(errs, fmt.Errorf("pricing_store.sqlite.path is required when backend is sqlite"))
		}
	default:
		errs = append(
			errs,
			fmt.Errorf(
				"pricing_store.backend must be one of: memory, sqlite, redis (got %q)",
				cfg.PricingStore.Backend,
			),
		)
	}

	if err := cfg.Pricing.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("pricing: %w", err))
	}

	if cfg.Schedule.RecomputeInterval < 0 {
		errs = append(errs, fmt.Errorf("schedule.recompute_interval must not be negative"))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("telemetry.sample_ratio must be in [0, 1]"))
	}

	return errors.Join(errs...)
}
