package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port               int    `mapstructure:"PORT"`
	Env                string `mapstructure:"APP_ENV"` // development | production
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Persistent store. Empty means local-only mode.
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	RemoteTimeoutMS int    `mapstructure:"REMOTE_TIMEOUT_MS"`

	// Breaker around the persistent store
	BreakerFailureThreshold int `mapstructure:"BREAKER_FAILURE_THRESHOLD"`
	BreakerOpenSeconds      int `mapstructure:"BREAKER_OPEN_SECONDS"`

	// Fallback store and job queues
	RedisURL          string `mapstructure:"REDIS_URL"`
	FallbackKeyPrefix string `mapstructure:"FALLBACK_KEY_PREFIX"`
	SeedOnStart       bool   `mapstructure:"SEED_ON_START"`

	// Workers
	WorkerPoolSize    int `mapstructure:"WORKER_POOL_SIZE"`
	AlertSweepSeconds int `mapstructure:"ALERT_SWEEP_SECONDS"`

	// Optional bearer identity. Empty disables token parsing.
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Every key needs a default so Unmarshal sees it through AutomaticEnv.
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 300)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REMOTE_TIMEOUT_MS", 3000)
	v.SetDefault("BREAKER_FAILURE_THRESHOLD", 5)
	v.SetDefault("BREAKER_OPEN_SECONDS", 30)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("FALLBACK_KEY_PREFIX", "autoparts_")
	v.SetDefault("SEED_ON_START", true)
	v.SetDefault("WORKER_POOL_SIZE", 3)
	v.SetDefault("ALERT_SWEEP_SECONDS", 300)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")

	// Optional .env file for local development; missing is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: PORT out of range: %d", c.Port)
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		return fmt.Errorf("config: REDIS_URL is required")
	}
	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("config: WORKER_POOL_SIZE must not be negative")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// LocalOnly reports whether the persistent store is disabled.
func (c *Config) LocalOnly() bool { return strings.TrimSpace(c.DatabaseURL) == "" }

func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.RemoteTimeoutMS) * time.Millisecond
}

func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}

func (c *Config) AlertSweepInterval() time.Duration {
	return time.Duration(c.AlertSweepSeconds) * time.Second
}

// MailEnabled reports whether an SMTP host was configured.
func (c *Config) MailEnabled() bool { return c.SMTPHost != "" }
