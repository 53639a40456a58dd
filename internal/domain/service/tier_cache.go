package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// ErrCacheMiss is returned by TierCache.Get when no snapshot is cached
var ErrCacheMiss = errors.New("cache miss")

// TierCache holds read-only tier snapshots for the pricing and revenue paths.
// Transactions never read through it.
type TierCache interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error)
	Set(ctx context.Context, tier *entity.SubscriptionTier) error
	Invalidate(ctx context.Context, ids ...uuid.UUID) error
}

type noopTierCache struct{}

func (noopTierCache) Get(context.Context, uuid.UUID) (*entity.SubscriptionTier, error) {
	return nil, ErrCacheMiss
}

func (noopTierCache) Set(context.Context, *entity.SubscriptionTier) error { return nil }

func (noopTierCache) Invalidate(context.Context, ...uuid.UUID) error { return nil }
