package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Sentry   SentryConfig
	Cache    CacheConfig
	Worker   WorkerConfig
	CORS     CORSConfig
	Webhook  WebhookConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// JWTConfig holds bearer token verification settings
type JWTConfig struct {
	Secret string
	Issuer string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
}

// CacheConfig holds snapshot cache settings
type CacheConfig struct {
	TierTTL time.Duration
}

// WorkerConfig holds background worker settings
type WorkerConfig struct {
	Concurrency int
	BatchSize   int
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// WebhookConfig holds payment provider webhook verification settings
type WebhookConfig struct {
	Secret       string
	AllowedCIDRs []string
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// .env file is optional for production (env vars are used)
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := fromViper(v)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server_port"),
			ReadTimeout:     v.GetDuration("server_read_timeout"),
			WriteTimeout:    v.GetDuration("server_write_timeout"),
			ShutdownTimeout: v.GetDuration("server_shutdown_timeout"),
		},
		Database: DatabaseConfig{
			URL:              v.GetString("database_url"),
			MaxConnections:   v.GetInt("db_max_connections"),
			MinConnections:   v.GetInt("db_min_connections"),
			MaxLifetime:      v.GetDuration("db_max_lifetime"),
			MaxIdleTime:      v.GetDuration("db_max_idle_time"),
			HealthCheck:      v.GetDuration("db_health_check"),
			ApplicationName:  v.GetString("db_application_name"),
			StatementTimeout: v.GetDuration("db_statement_timeout"),
			TxMaxAttempts:    v.GetInt("db_tx_max_attempts"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("redis_url"),
			PoolSize:     v.GetInt("redis_pool_size"),
			MinIdleConns: v.GetInt("redis_min_idle_conns"),
			DialTimeout:  v.GetDuration("redis_dial_timeout"),
			ReadTimeout:  v.GetDuration("redis_read_timeout"),
			WriteTimeout: v.GetDuration("redis_write_timeout"),
			PoolTimeout:  v.GetDuration("redis_pool_timeout"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt_secret"),
			Issuer: v.GetString("jwt_issuer"),
		},
		Sentry: SentryConfig{
			DSN:         v.GetString("sentry_dsn"),
			Environment: v.GetString("app_env"),
			Release:     v.GetString("sentry_release"),
		},
		Cache: CacheConfig{
			TierTTL: v.GetDuration("cache_tier_ttl"),
		},
		Worker: WorkerConfig{
			Concurrency: v.GetInt("worker_concurrency"),
			BatchSize:   v.GetInt("worker_batch_size"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		},
		Webhook: WebhookConfig{
			Secret:       v.GetString("webhook_secret"),
			AllowedCIDRs: splitList(v.GetString("webhook_allowed_cidrs")),
		},
	}
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_read_timeout", 10*time.Second)
	v.SetDefault("server_write_timeout", 10*time.Second)
	v.SetDefault("server_shutdown_timeout", 30*time.Second)

	// Database defaults
	def := DefaultDatabaseConfig()
	v.SetDefault("db_max_connections", def.MaxConnections)
	v.SetDefault("db_min_connections", def.MinConnections)
	v.SetDefault("db_max_lifetime", def.MaxLifetime)
	v.SetDefault("db_max_idle_time", def.MaxIdleTime)
	v.SetDefault("db_health_check", def.HealthCheck)
	v.SetDefault("db_application_name", def.ApplicationName)
	v.SetDefault("db_statement_timeout", def.StatementTimeout)
	v.SetDefault("db_tx_max_attempts", def.TxMaxAttempts)

	// JWT defaults
	v.SetDefault("jwt_issuer", "creatorhub")

	// Redis defaults
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_min_idle_conns", 3)
	v.SetDefault("redis_dial_timeout", 5*time.Second)
	v.SetDefault("redis_read_timeout", 3*time.Second)
	v.SetDefault("redis_write_timeout", 3*time.Second)
	v.SetDefault("redis_pool_timeout", 4*time.Second)

	v.SetDefault("app_env", "development")
	v.SetDefault("cache_tier_ttl", 5*time.Minute)
	v.SetDefault("worker_concurrency", 10)
	v.SetDefault("worker_batch_size", 500)
	v.SetDefault("cors_allowed_origins", "*")
}

func validate(cfg *Config) error {
	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if !cfg.IsDevelopment() && cfg.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required outside development")
	}
	if cfg.Database.TxMaxAttempts < 1 {
		return fmt.Errorf("DB_TX_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsDevelopment reports whether the app runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Sentry.Environment == "development"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
