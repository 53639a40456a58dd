package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// TierCounterDrift is a tier whose CurrentSubscribers disagrees with its active subscriptions
type TierCounterDrift struct {
	TierID uuid.UUID `json:"tier_id"`
	Stored int       `json:"stored"`
	Actual int       `json:"actual"`
}

// SubscriptionTierRepository defines the interface for tier data access
type SubscriptionTierRepository interface {
	Create(ctx context.Context, tier *entity.SubscriptionTier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error)
	ListByCreator(ctx context.Context, profileID uuid.UUID) ([]*entity.SubscriptionTier, error)

	// Update writes the mutable fields: name, description, price, status, popularity and discount
	Update(ctx context.Context, tier *entity.SubscriptionTier) error

	// Delete removes a tier without subscribers. Returns ErrTierHasSubscribers otherwise.
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustSubscribers atomically adds delta to CurrentSubscribers, refusing
	// negative results (ErrCounterUnderflow) and overfilled capped tiers (ErrTierFull).
	AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error

	FindSubscriberDrift(ctx context.Context) ([]TierCounterDrift, error)
	SetSubscribers(ctx context.Context, id uuid.UUID, count int) error
}
