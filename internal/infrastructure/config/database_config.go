package config

import (
	"time"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MinConnections int
	MaxLifetime    time.Duration
	MaxIdleTime    time.Duration
	HealthCheck    time.Duration

	// ApplicationName tags sessions in pg_stat_activity
	ApplicationName string
	// StatementTimeout aborts any single statement running longer; 0 disables it
	StatementTimeout time.Duration
	// TxMaxAttempts bounds retries of a transaction after a serialization failure or deadlock
	TxMaxAttempts int
}

// DefaultDatabaseConfig returns default database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		MaxConnections:   25,
		MinConnections:   5,
		MaxLifetime:      1 * time.Hour,
		MaxIdleTime:      30 * time.Minute,
		HealthCheck:      30 * time.Second,
		ApplicationName:  "creatorhub",
		StatementTimeout: 15 * time.Second,
		TxMaxAttempts:    3,
	}
}
