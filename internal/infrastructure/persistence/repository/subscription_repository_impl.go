package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

const subscriptionColumns = `id, subscriber_id, tier_id, status, start_date, end_date, next_billing_date,
	cancelled_at, cancellation_reason, cancellation_note, auto_renew, amount, discount_amount, final_amount,
	is_gift, created_at, updated_at`

type subscriptionRepositoryImpl struct {
	conn
}

// NewSubscriptionRepository creates a new subscription repository implementation
func NewSubscriptionRepository(pool *pgxpool.Pool) repository.SubscriptionRepository {
	return &subscriptionRepositoryImpl{conn{pool: pool}}
}

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	s := &entity.Subscription{}
	err := row.Scan(
		&s.ID,
		&s.SubscriberID,
		&s.TierID,
		&s.Status,
		&s.StartDate,
		&s.EndDate,
		&s.NextBillingDate,
		&s.CancelledAt,
		&s.CancellationReason,
		&s.CancellationNote,
		&s.AutoRenew,
		&s.Amount,
		&s.DiscountAmount,
		&s.FinalAmount,
		&s.IsGift,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (r *subscriptionRepositoryImpl) Create(ctx context.Context, s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		s.ID,
		s.SubscriberID,
		s.TierID,
		s.Status,
		s.StartDate,
		s.EndDate,
		s.NextBillingDate,
		s.CancelledAt,
		s.CancellationReason,
		s.CancellationNote,
		s.AutoRenew,
		s.Amount,
		s.DiscountAmount,
		s.FinalAmount,
		s.IsGift,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", mapError(err))
	}
	return nil
}

func (r *subscriptionRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	s, err := scanSubscription(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", notFound(err, domainErrors.ErrSubscriptionNotFound))
	}
	return s, nil
}

func (r *subscriptionRepositoryImpl) GetLatestByUserAndTier(ctx context.Context, userID, tierID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscriber_id = $1 AND tier_id = $2
		ORDER BY (status = 'active') DESC, created_at DESC
		LIMIT 1
	`

	s, err := scanSubscription(r.db(ctx).QueryRow(ctx, query, userID, tierID))
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", notFound(err, domainErrors.ErrSubscriptionNotFound))
	}
	return s, nil
}

func (r *subscriptionRepositoryImpl) GetLatestByUserAndCreator(ctx context.Context, userID, profileID uuid.UUID) (*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscriber_id = $1
		  AND tier_id IN (SELECT id FROM subscription_tiers WHERE creator_profile_id = $2)
		ORDER BY (status = 'active') DESC, end_date DESC, created_at DESC
		LIMIT 1
	`

	s, err := scanSubscription(r.db(ctx).QueryRow(ctx, query, userID, profileID))
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", notFound(err, domainErrors.ErrSubscriptionNotFound))
	}
	return s, nil
}

func (r *subscriptionRepositoryImpl) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET status = $2, start_date = $3, end_date = $4, next_billing_date = $5, cancelled_at = $6,
		    cancellation_reason = $7, cancellation_note = $8, auto_renew = $9, updated_at = $10
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		s.ID,
		s.Status,
		s.StartDate,
		s.EndDate,
		s.NextBillingDate,
		s.CancelledAt,
		s.CancellationReason,
		s.CancellationNote,
		s.AutoRenew,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *subscriptionRepositoryImpl) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE status = 'active' AND end_date < $1
		ORDER BY end_date
		LIMIT $2
	`
	rows, err := r.db(ctx).Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list lapsed subscriptions: %w", mapError(err))
	}
	defer rows.Close()

	var subs []*entity.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
