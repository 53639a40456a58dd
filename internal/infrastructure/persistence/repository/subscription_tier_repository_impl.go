package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

const tierColumns = `id, creator_profile_id, name, description, price, billing_cycle, max_subscribers,
	current_subscribers, status, is_popular, discount_percentage, discount_valid_until, created_at, updated_at`

type subscriptionTierRepositoryImpl struct {
	conn
}

// NewSubscriptionTierRepository creates a new tier repository
func NewSubscriptionTierRepository(pool *pgxpool.Pool) repository.SubscriptionTierRepository {
	return &subscriptionTierRepositoryImpl{conn{pool: pool}}
}

func scanTier(row pgx.Row) (*entity.SubscriptionTier, error) {
	t := &entity.SubscriptionTier{}
	err := row.Scan(
		&t.ID,
		&t.CreatorProfileID,
		&t.Name,
		&t.Description,
		&t.Price,
		&t.BillingCycle,
		&t.MaxSubscribers,
		&t.CurrentSubscribers,
		&t.Status,
		&t.IsPopular,
		&t.DiscountPercentage,
		&t.DiscountValidUntil,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *subscriptionTierRepositoryImpl) Create(ctx context.Context, t *entity.SubscriptionTier) error {
	query := `
		INSERT INTO subscription_tiers (` + tierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		t.ID,
		t.CreatorProfileID,
		t.Name,
		t.Description,
		t.Price,
		t.BillingCycle,
		t.MaxSubscribers,
		t.CurrentSubscribers,
		t.Status,
		t.IsPopular,
		t.DiscountPercentage,
		t.DiscountValidUntil,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tier: %w", mapError(err))
	}
	return nil
}

func (r *subscriptionTierRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error) {
	query := `SELECT ` + tierColumns + ` FROM subscription_tiers WHERE id = $1`

	t, err := scanTier(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get tier: %w", notFound(err, domainErrors.ErrTierNotFound))
	}
	return t, nil
}

func (r *subscriptionTierRepositoryImpl) ListByCreator(ctx context.Context, profileID uuid.UUID) ([]*entity.SubscriptionTier, error) {
	query := `SELECT ` + tierColumns + ` FROM subscription_tiers WHERE creator_profile_id = $1 ORDER BY price, created_at`

	rows, err := r.db(ctx).Query(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiers: %w", mapError(err))
	}
	defer rows.Close()

	var tiers []*entity.SubscriptionTier
	for rows.Next() {
		t, err := scanTier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *subscriptionTierRepositoryImpl) Update(ctx context.Context, t *entity.SubscriptionTier) error {
	query := `
		UPDATE subscription_tiers
		SET name = $2, description = $3, price = $4, status = $5, is_popular = $6,
		    discount_percentage = $7, discount_valid_until = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.Price,
		t.Status,
		t.IsPopular,
		t.DiscountPercentage,
		t.DiscountValidUntil,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tier: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTierNotFound
	}
	return nil
}

func (r *subscriptionTierRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM subscription_tiers WHERE id = $1 AND current_subscribers = 0`, id,
	)
	if err != nil {
		// subscription history still references the tier
		if isPgCode(err, codeForeignKeyViolation) {
			return domainErrors.NewInvalidStateError("subscription_tier", id.String(), domainErrors.ErrTierHasSubscribers)
		}
		return fmt.Errorf("failed to delete tier: %w", mapError(err))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domainErrors.NewInvalidStateError("subscription_tier", id.String(), domainErrors.ErrTierHasSubscribers)
}

func (r *subscriptionTierRepositoryImpl) AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE subscription_tiers
		SET current_subscribers = current_subscribers + $2, updated_at = now()
		WHERE id = $1
		  AND current_subscribers + $2 >= 0
		  AND (max_subscribers = 0 OR $2 <= 0 OR current_subscribers + $2 <= max_subscribers)
	`
	tag, err := r.db(ctx).Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust tier subscribers: %w", mapError(err))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.CurrentSubscribers+delta < 0 {
		return domainErrors.NewInvalidStateError("subscription_tier", "current_subscribers", domainErrors.ErrCounterUnderflow)
	}
	return domainErrors.NewInvalidStateError("subscription_tier", id.String(), domainErrors.ErrTierFull)
}

func (r *subscriptionTierRepositoryImpl) FindSubscriberDrift(ctx context.Context) ([]repository.TierCounterDrift, error) {
	query := `
		SELECT t.id, t.current_subscribers, count(s.id)::int AS actual
		  FROM subscription_tiers t
		  LEFT JOIN subscriptions s ON s.tier_id = t.id AND s.status = 'active'
		 GROUP BY t.id, t.current_subscribers
		HAVING t.current_subscribers <> count(s.id)
		 ORDER BY t.id
	`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find tier drift: %w", mapError(err))
	}
	defer rows.Close()

	var drift []repository.TierCounterDrift
	for rows.Next() {
		var d repository.TierCounterDrift
		if err := rows.Scan(&d.TierID, &d.Stored, &d.Actual); err != nil {
			return nil, fmt.Errorf("failed to scan tier drift: %w", err)
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}

func (r *subscriptionTierRepositoryImpl) SetSubscribers(ctx context.Context, id uuid.UUID, count int) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE subscription_tiers SET current_subscribers = $2, updated_at = now() WHERE id = $1`,
		id, count,
	)
	if err != nil {
		return fmt.Errorf("failed to set tier subscribers: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrTierNotFound
	}
	return nil
}
