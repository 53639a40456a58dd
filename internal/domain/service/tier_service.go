package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bivex/creatorhub/internal/domain/entitlement"
	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
	"github.com/bivex/creatorhub/internal/domain/valueobject"
)

// CreateTierParams describes a new subscription tier
type CreateTierParams struct {
	Name               string
	Description        string
	Price              decimal.Decimal
	BillingCycle       valueobject.BillingCycle
	MaxSubscribers     int
	IsPopular          bool
	DiscountPercentage *decimal.Decimal
	DiscountValidUntil *time.Time
}

// TierService manages the lifecycle of subscription tiers
type TierService struct {
	clock    entitlement.Clock
	tiers    repository.SubscriptionTierRepository
	profiles repository.CreatorProfileRepository
	cache    TierCache
	logger   *zap.Logger
}

// NewTierService creates a new tier service
func NewTierService(
	clock entitlement.Clock,
	tiers repository.SubscriptionTierRepository,
	profiles repository.CreatorProfileRepository,
	cache TierCache,
	logger *zap.Logger,
) *TierService {
	if clock == nil {
		clock = entitlement.SystemClock{}
	}
	if cache == nil {
		cache = noopTierCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TierService{clock: clock, tiers: tiers, profiles: profiles, cache: cache, logger: logger}
}

// Create validates params and stores a tier owned by the actor's creator profile
func (s *TierService) Create(ctx context.Context, actor Actor, params CreateTierParams) (*entity.SubscriptionTier, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, domainErrors.NewValidationError("name", "name is required")
	}
	if !params.BillingCycle.IsValid() {
		return nil, domainErrors.ErrInvalidBillingCycle
	}
	if params.Price.IsNegative() {
		return nil, domainErrors.NewInvalidStateError("subscription_tier", "price", domainErrors.ErrNegativePrice)
	}
	if params.MaxSubscribers < 0 {
		return nil, domainErrors.NewInvalidStateError("subscription_tier", "max_subscribers", domainErrors.ErrInvalidCapacity)
	}

	profile, err := creatorProfileOf(ctx, s.profiles, actor)
	if err != nil {
		return nil, err
	}

	tier := entity.NewSubscriptionTier(profile.ID, strings.TrimSpace(params.Name), valueobject.RoundMoney(params.Price), params.BillingCycle, params.MaxSubscribers)
	tier.Description = params.Description
	tier.IsPopular = params.IsPopular

	switch {
	case params.DiscountPercentage == nil && params.DiscountValidUntil == nil:
	case params.DiscountPercentage == nil || params.DiscountValidUntil == nil:
		return nil, domainErrors.NewInvalidStateError("subscription_tier", "discount", domainErrors.ErrIncompleteDiscount)
	default:
		d, err := valueobject.NewDiscount(*params.DiscountPercentage, *params.DiscountValidUntil)
		if err != nil {
			return nil, domainErrors.NewInvalidStateError("subscription_tier", "discount", err)
		}
		tier.SetDiscount(*d)
	}

	if err := s.tiers.Create(ctx, tier); err != nil {
		return nil, err
	}

	s.logger.Info("tier created",
		zap.String("tier_id", tier.ID.String()),
		zap.String("creator_profile_id", profile.ID.String()),
		zap.String("price", tier.Price.StringFixed(valueobject.MoneyScale)),
	)
	return tier, nil
}

// AddDiscount sets a percentage discount valid until validUntil
func (s *TierService) AddDiscount(ctx context.Context, actor Actor, tierID uuid.UUID, percentage decimal.Decimal, validUntil time.Time) (*entity.SubscriptionTier, error) {
	d, err := valueobject.NewDiscount(percentage, validUntil)
	if err != nil {
		return nil, domainErrors.NewInvalidStateError("subscription_tier", "discount", err)
	}
	return s.mutate(ctx, actor, tierID, func(tier *entity.SubscriptionTier) error {
		tier.SetDiscount(*d)
		return nil
	})
}

// RemoveDiscount clears any discount on the tier
func (s *TierService) RemoveDiscount(ctx context.Context, actor Actor, tierID uuid.UUID) (*entity.SubscriptionTier, error) {
	return s.mutate(ctx, actor, tierID, func(tier *entity.SubscriptionTier) error {
		tier.ClearDiscount()
		return nil
	})
}

// Archive hides the tier from new subscribers; existing subscriptions are kept
func (s *TierService) Archive(ctx context.Context, actor Actor, tierID uuid.UUID) (*entity.SubscriptionTier, error) {
	return s.mutate(ctx, actor, tierID, func(tier *entity.SubscriptionTier) error {
		if tier.Status == entity.TierStatusArchived {
			return domainErrors.NewInvalidStateError("subscription_tier", "already archived", domainErrors.ErrInvalidTransition)
		}
		tier.Status = entity.TierStatusArchived
		return nil
	})
}

// Delete removes a tier that has no subscribers
func (s *TierService) Delete(ctx context.Context, actor Actor, tierID uuid.UUID) error {
	tier, err := s.tiers.GetByID(ctx, tierID)
	if err != nil {
		return err
	}
	if err := authorizeTierOwner(ctx, actor, tier, s.profiles); err != nil {
		return err
	}
	if tier.CurrentSubscribers > 0 {
		return domainErrors.NewInvalidStateError("subscription_tier", tierID.String(), domainErrors.ErrTierHasSubscribers)
	}
	if err := s.tiers.Delete(ctx, tierID); err != nil {
		return err
	}
	s.invalidate(ctx, tierID)
	return nil
}

func (s *TierService) mutate(ctx context.Context, actor Actor, tierID uuid.UUID, fn func(*entity.SubscriptionTier) error) (*entity.SubscriptionTier, error) {
	tier, err := s.tiers.GetByID(ctx, tierID)
	if err != nil {
		return nil, err
	}
	if err := authorizeTierOwner(ctx, actor, tier, s.profiles); err != nil {
		return nil, err
	}
	if err := fn(tier); err != nil {
		return nil, err
	}
	tier.UpdatedAt = s.clock.Now()
	if err := s.tiers.Update(ctx, tier); err != nil {
		return nil, err
	}
	s.invalidate(ctx, tierID)
	return tier, nil
}

func (s *TierService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if err := s.cache.Invalidate(ctx, ids...); err != nil {
		s.logger.Warn("tier cache invalidation failed", zap.Error(err))
	}
}
