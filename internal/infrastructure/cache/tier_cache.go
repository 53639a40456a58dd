package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/service"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// KeyTier is the key of a cached tier snapshot
const KeyTier = "tier:%s"

// DefaultTierTTL bounds how stale a tier snapshot may get when an
// invalidation is missed
const DefaultTierTTL = 5 * time.Minute

// RedisTierCache stores tier snapshots in Redis for the pricing and revenue reads
type RedisTierCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisTierCache creates a new Redis-backed tier cache
func NewRedisTierCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisTierCache {
	if ttl <= 0 {
		ttl = DefaultTierTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTierCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

var _ service.TierCache = (*RedisTierCache)(nil)

// tierSnapshot is the cached format of a subscription tier
type tierSnapshot struct {
	ID                 uuid.UUID                `json:"id"`
	CreatorProfileID   uuid.UUID                `json:"creator_profile_id"`
	Name               string                   `json:"name"`
	Description        string                   `json:"description,omitempty"`
	Price              decimal.Decimal          `json:"price"`
	BillingCycle       valueobject.BillingCycle `json:"billing_cycle"`
	MaxSubscribers     int                      `json:"max_subscribers"`
	CurrentSubscribers int                      `json:"current_subscribers"`
	Status             entity.TierStatus        `json:"status"`
	IsPopular          bool                     `json:"is_popular"`
	DiscountPercentage *decimal.Decimal         `json:"discount_percentage,omitempty"`
	DiscountValidUntil *time.Time               `json:"discount_valid_until,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

func tierKey(id uuid.UUID) string {
	return fmt.Sprintf(KeyTier, id.String())
}

// Get returns the cached snapshot or service.ErrCacheMiss
func (c *RedisTierCache) Get(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error) {
	data, err := c.client.Get(ctx, tierKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get tier: %w", err)
	}

	var s tierSnapshot
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Warn("Dropping unreadable tier snapshot", zap.String("tier_id", id.String()), zap.Error(err))
		c.client.Del(ctx, tierKey(id))
		return nil, service.ErrCacheMiss
	}

	return &entity.SubscriptionTier{
		ID:                 s.ID,
		CreatorProfileID:   s.CreatorProfileID,
		Name:               s.Name,
		Description:        s.Description,
		Price:              s.Price,
		BillingCycle:       s.BillingCycle,
		MaxSubscribers:     s.MaxSubscribers,
		CurrentSubscribers: s.CurrentSubscribers,
		Status:             s.Status,
		IsPopular:          s.IsPopular,
		DiscountPercentage: s.DiscountPercentage,
		DiscountValidUntil: s.DiscountValidUntil,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}, nil
}

// Set stores a tier snapshot with the configured TTL
func (c *RedisTierCache) Set(ctx context.Context, tier *entity.SubscriptionTier) error {
	data, err := json.Marshal(tierSnapshot{
		ID:                 tier.ID,
		CreatorProfileID:   tier.CreatorProfileID,
		Name:               tier.Name,
		Description:        tier.Description,
		Price:              tier.Price,
		BillingCycle:       tier.BillingCycle,
		MaxSubscribers:     tier.MaxSubscribers,
		CurrentSubscribers: tier.CurrentSubscribers,
		Status:             tier.Status,
		IsPopular:          tier.IsPopular,
		DiscountPercentage: tier.DiscountPercentage,
		DiscountValidUntil: tier.DiscountValidUntil,
		CreatedAt:          tier.CreatedAt,
		UpdatedAt:          tier.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal tier: %w", err)
	}

	if err := c.client.Set(ctx, tierKey(tier.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set tier: %w", err)
	}

	c.logger.Debug("Cached tier", zap.String("tier_id", tier.ID.String()))
	return nil
}

// Invalidate drops the snapshots of the given tiers
func (c *RedisTierCache) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = tierKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate tiers: %w", err)
	}
	return nil
}

// Ping checks if the Redis cache is accessible
func (c *RedisTierCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
