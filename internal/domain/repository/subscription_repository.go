package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// Create creates a new subscription
	Create(ctx context.Context, subscription *entity.Subscription) error

	// GetByID retrieves a subscription by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// GetLatestByUserAndTier retrieves the most recent subscription of a user to a tier
	GetLatestByUserAndTier(ctx context.Context, userID, tierID uuid.UUID) (*entity.Subscription, error)

	// GetLatestByUserAndCreator retrieves the most recent subscription of a user to any tier of a creator profile
	GetLatestByUserAndCreator(ctx context.Context, userID, profileID uuid.UUID) (*entity.Subscription, error)

	// Update writes status, period, billing and cancellation fields
	Update(ctx context.Context, subscription *entity.Subscription) error

	// ListLapsed returns up to limit active subscriptions whose EndDate is before now
	ListLapsed(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error)
}
