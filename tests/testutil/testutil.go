package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/bivex/creatorhub/internal/infrastructure/persistence/migrator"
)

// TestDB is a migrated PostgreSQL container
type TestDB struct {
	Pool       *pgxpool.Pool
	ConnString string
	container  *postgres.PostgresContainer
}

// SetupTestDB starts a PostgreSQL container and applies every migration
func SetupTestDB(ctx context.Context) (*TestDB, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("creatorhub_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}
	db := &TestDB{container: pgContainer}

	db.ConnString, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	if err := migrator.Up(db.ConnString); err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	db.Pool, err = pgxpool.New(ctx, db.ConnString)
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return db, nil
}

// Terminate closes the pool and removes the container
func (db *TestDB) Terminate(ctx context.Context) {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.container != nil {
		_ = testcontainers.TerminateContainer(db.container)
	}
}

// tables in dependency order, children first
var tables = []string{
	"content_access", "payments", "subscriptions", "content",
	"subscription_tiers", "creator_profiles", "users",
}

// TruncateAll empties every table
func (db *TestDB) TruncateAll(t *testing.T, ctx context.Context) {
	t.Helper()
	_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	require.NoError(t, err)
}

// AssertDBCount asserts the expected count of rows in a table
func (db *TestDB) AssertDBCount(t *testing.T, ctx context.Context, table string, expected int) {
	t.Helper()
	var count int
	err := db.Pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count)
	require.NoError(t, err, "count rows in %s", table)
	require.Equal(t, expected, count, "rows in %s", table)
}
