// Package app wires repositories and services for the binaries.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/infrastructure/cache"
	"github.com/bivex/creatorhub/internal/infrastructure/config"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/pool"
	"github.com/bivex/creatorhub/internal/infrastructure/persistence/repository"
)

// Services holds the application services over one database
type Services struct {
	Entitlements  *service.EntitlementService
	Tiers         *service.TierService
	Subscriptions *service.SubscriptionService
	Payments      *service.PaymentService
	Creators      *service.CreatorProfileService
	Grants        *service.AccessGrantService
	Content       *service.ContentService
	TierCache     *cache.RedisTierCache
}

// NewServices builds every service. redisClient may be nil, which disables
// the tier snapshot cache.
func NewServices(cfg *config.Config, db *pgxpool.Pool, redisClient *redis.Client, logger *zap.Logger) *Services {
	clock := entitlement.SystemClock{}
	engine := entitlement.NewEngine(clock)
	tx := repository.NewTxManager(db, cfg.Database.TxMaxAttempts, logger.Named("tx"))

	users := repository.NewUserRepository(db)
	profiles := repository.NewCreatorProfileRepository(db)
	tiers := repository.NewSubscriptionTierRepository(db)
	subs := repository.NewSubscriptionRepository(db)
	payments := repository.NewPaymentRepository(db)
	content := repository.NewContentRepository(db)
	grants := repository.NewContentAccessRepository(db)

	s := &Services{}
	var tierCache service.TierCache
	if redisClient != nil {
		s.TierCache = cache.NewRedisTierCache(redisClient, cfg.Cache.TierTTL, logger.Named("cache"))
		tierCache = s.TierCache
	}

	s.Entitlements = service.NewEntitlementService(engine, tx, users, content, grants, subs, tiers, profiles, tierCache, logger.Named("entitlement"))
	s.Tiers = service.NewTierService(clock, tiers, profiles, tierCache, logger.Named("tier"))
	s.Subscriptions = service.NewSubscriptionService(engine, tx, users, tiers, profiles, subs, payments, tierCache, logger.Named("subscription"))
	s.Creators = service.NewCreatorProfileService(clock, tx, profiles, tiers, tierCache, logger.Named("creator"))
	s.Payments = service.NewPaymentService(engine, tx, users, payments, subs, tiers, s.Subscriptions, s.Creators, tierCache, logger.Named("payment"))
	s.Grants = service.NewAccessGrantService(clock, tx, users, content, tiers, grants, logger.Named("grant"))
	s.Content = service.NewContentService(clock, tx, content, profiles, tiers, logger.Named("content"))
	return s
}

// OpenDatabase creates the pool and checks connectivity
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	db, err := pool.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := pool.Ping(ctx, db); err != nil {
		pool.Close(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// OpenRedis creates the client and checks connectivity
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	opts.PoolTimeout = cfg.PoolTimeout

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}
