// Package config loads and validates service configuration from a YAML
// file with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultReadTimeout is the default HTTP read timeout.
	DefaultReadTimeout = 10 * time.Second
	// DefaultWriteTimeout is the default HTTP write timeout.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultShutdownTimeout is the default graceful shutdown timeout.
	DefaultShutdownTimeout = 30 * time.Second
	// DefaultSendTimeout bounds a single notification delivery attempt.
	DefaultSendTimeout = 10 * time.Second
	// DefaultMaxConcurrentSends bounds the fan-out worker pool.
	DefaultMaxConcurrentSends = 8
	// DefaultRefDataTTL is the reference-data cache TTL.
	DefaultRefDataTTL = time.Hour
)

// Config is the root service configuration.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	Notify    NotifyConfig    `yaml:"notify"`
	RefData   RefDataConfig   `yaml:"refdata"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address      string        `yaml:"address"` // e.g. ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig configures the Redis connection used by the reference-data
// cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// WebhookConfig guards the callback endpoint.
type WebhookConfig struct {
	APIKey string `yaml:"api_key"`
}

// ReconcileConfig tunes the reconciliation engine.
type ReconcileConfig struct {
	// AllowFailedReprocess permits a SUCCESS callback to reprocess a
	// content item that previously FAILED, treating it like
	// COMPLETED -> COMPLETED reprocessing. Off by default.
	AllowFailedReprocess bool `yaml:"allow_failed_reprocess"`
}

// NotifyConfig configures the push-delivery fan-out.
type NotifyConfig struct {
	GatewayURL    string        `yaml:"gateway_url"`
	APIKey        string        `yaml:"api_key"`
	SendTimeout   time.Duration `yaml:"send_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
}

// RefDataConfig configures the read-through reference-data cache.
type RefDataConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// Load reads the YAML file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Webhook.APIKey == "" {
		return errors.New("webhook.api_key is required")
	}
	if c.Notify.GatewayURL == "" {
		return errors.New("notify.gateway_url is required")
	}
	if c.Notify.MaxConcurrent <= 0 {
		return fmt.Errorf("notify.max_concurrent must be positive, got %d", c.Notify.MaxConcurrent)
	}
	if c.Notify.SendTimeout <= 0 {
		return fmt.Errorf("notify.send_timeout must be positive, got %v", c.Notify.SendTimeout)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Notify.SendTimeout == 0 {
		cfg.Notify.SendTimeout = DefaultSendTimeout
	}
	if cfg.Notify.MaxConcurrent == 0 {
		cfg.Notify.MaxConcurrent = DefaultMaxConcurrentSends
	}
	if cfg.RefData.TTL == 0 {
		cfg.RefData.TTL = DefaultRefDataTTL
	}
}

func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("CALLBACK_API_KEY"); v != "" {
		cfg.Webhook.APIKey = v
	}
	if v := os.Getenv("PUSH_GATEWAY_URL"); v != "" {
		cfg.Notify.GatewayURL = v
	}
	if v := os.Getenv("PUSH_GATEWAY_API_KEY"); v != "" {
		cfg.Notify.APIKey = v
	}
	if v := os.Getenv("PLACESYNC_PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("NOTIFY_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Notify.MaxConcurrent = n
		}
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
}

// parseBool accepts the common truthy spellings: "true", "1", "yes".
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
