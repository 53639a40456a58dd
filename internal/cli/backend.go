package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/app"
	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/infrastructure/config"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/pool"
)

// serviceOperations runs CLI actions as the system actor
type serviceOperations struct {
	services *app.Services
}

func (o *serviceOperations) TierRevenue(ctx context.Context, tierID uuid.UUID) (*entitlement.Revenue, *entity.SubscriptionTier, error) {
	return o.services.Entitlements.TierRevenue(ctx, service.SystemActor, tierID)
}

func (o *serviceOperations) Reconcile(ctx context.Context) (*service.ReconcileReport, error) {
	return o.services.Creators.Reconcile(ctx)
}

func (o *serviceOperations) ExpireSubscriptions(ctx context.Context, limit int) (int, error) {
	return o.services.Subscriptions.ExpireLapsed(ctx, limit)
}

func (o *serviceOperations) ExpireGrants(ctx context.Context, limit int) (int64, error) {
	return o.services.Grants.ExpireLapsed(ctx, limit)
}

// OpenServices loads configuration and connects to postgres. Redis is
// optional; when it is unreachable tier snapshots are not invalidated.
func OpenServices(ctx context.Context, opts *RootOptions) (Operations, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := zap.NewNop()
	if opts.Verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}

	db, err := app.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := app.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without tier cache", zap.Error(err))
		redisClient = nil
	}

	closeFn := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		pool.Close(db)
		_ = logger.Sync()
	}
	return &serviceOperations{services: app.NewServices(cfg, db, redisClient, logger)}, closeFn, nil
}
