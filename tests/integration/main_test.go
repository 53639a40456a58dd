//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/app"
	"github.com/bivex/creatorhub/internal/infrastructure/config"
	"github.com/bivex/creatorhub/tests/testutil"
)

var (
	testDB    *testutil.TestDB
	testRedis *testutil.TestRedis
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testutil.SetupTestDB(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "postgres: %v\n", err)
		os.Exit(1)
	}
	testRedis, err = testutil.SetupTestRedis(ctx)
	if err != nil {
		testDB.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "redis: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	testRedis.Terminate(ctx)
	testDB.Terminate(ctx)
	os.Exit(code)
}

func newServices(t *testing.T) *app.Services {
	t.Helper()
	cfg := &config.Config{
		Database: config.DatabaseConfig{TxMaxAttempts: 3},
		Cache:    config.CacheConfig{TierTTL: time.Minute},
	}
	return app.NewServices(cfg, testDB.Pool, testRedis.Client, zap.NewNop())
}

func reset(t *testing.T) (context.Context, *testutil.Factory) {
	t.Helper()
	ctx := context.Background()
	testDB.TruncateAll(t, ctx)
	testRedis.Client.FlushDB(ctx)
	return ctx, testutil.NewFactory(testDB.Pool)
}
