package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

const profileColumns = `id, user_id, category, bio, is_verified, verification_status, total_earnings,
	monthly_earnings, total_subscribers, total_content, is_active, deactivation_reason, created_at, updated_at`

type creatorProfileRepositoryImpl struct {
	conn
}

// NewCreatorProfileRepository creates a new creator profile repository
func NewCreatorProfileRepository(pool *pgxpool.Pool) repository.CreatorProfileRepository {
	return &creatorProfileRepositoryImpl{conn{pool: pool}}
}

func scanProfile(row pgx.Row) (*entity.CreatorProfile, error) {
	p := &entity.CreatorProfile{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Category,
		&p.Bio,
		&p.IsVerified,
		&p.VerificationStatus,
		&p.TotalEarnings,
		&p.MonthlyEarnings,
		&p.TotalSubscribers,
		&p.TotalContent,
		&p.IsActive,
		&p.DeactivationReason,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *creatorProfileRepositoryImpl) Create(ctx context.Context, p *entity.CreatorProfile) error {
	query := `
		INSERT INTO creator_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Category,
		p.Bio,
		p.IsVerified,
		p.VerificationStatus,
		p.TotalEarnings,
		p.MonthlyEarnings,
		p.TotalSubscribers,
		p.TotalContent,
		p.IsActive,
		p.DeactivationReason,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create creator profile: %w", mapError(err))
	}
	return nil
}

func (r *creatorProfileRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.CreatorProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM creator_profiles WHERE id = $1`

	p, err := scanProfile(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get creator profile: %w", notFound(err, domainErrors.ErrCreatorProfileNotFound))
	}
	return p, nil
}

func (r *creatorProfileRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreatorProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM creator_profiles WHERE user_id = $1`

	p, err := scanProfile(r.db(ctx).QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get creator profile: %w", notFound(err, domainErrors.ErrCreatorProfileNotFound))
	}
	return p, nil
}

func (r *creatorProfileRepositoryImpl) UpdateStatus(ctx context.Context, p *entity.CreatorProfile) error {
	query := `
		UPDATE creator_profiles
		SET is_active = $2, deactivation_reason = $3, is_verified = $4, verification_status = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		p.ID,
		p.IsActive,
		p.DeactivationReason,
		p.IsVerified,
		p.VerificationStatus,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update creator profile: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCreatorProfileNotFound
	}
	return nil
}

func (r *creatorProfileRepositoryImpl) AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error {
	return r.adjust(ctx, id, "total_subscribers", delta)
}

func (r *creatorProfileRepositoryImpl) AdjustContent(ctx context.Context, id uuid.UUID, delta int) error {
	return r.adjust(ctx, id, "total_content", delta)
}

// adjust applies a guarded increment; column is one of the fixed counter names above
func (r *creatorProfileRepositoryImpl) adjust(ctx context.Context, id uuid.UUID, column string, delta int) error {
	query := fmt.Sprintf(`
		UPDATE creator_profiles
		SET %[1]s = %[1]s + $2, updated_at = now()
		WHERE id = $1 AND %[1]s + $2 >= 0
	`, column)

	tag, err := r.db(ctx).Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust %s: %w", column, mapError(err))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domainErrors.NewInvalidStateError("creator_profile", column, domainErrors.ErrCounterUnderflow)
}

func (r *creatorProfileRepositoryImpl) ApplyEarnings(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*entity.CreatorProfile, error) {
	query := `
		UPDATE creator_profiles
		SET total_earnings = total_earnings + $2,
		    monthly_earnings = GREATEST(monthly_earnings + $2, 0),
		    updated_at = now()
		WHERE id = $1 AND total_earnings + $2 >= 0
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db(ctx).QueryRow(ctx, query, id, delta))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to apply earnings: %w", mapError(err))
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, domainErrors.NewInvalidStateError("creator_profile", id.String(), domainErrors.ErrNegativeEarnings)
}

func (r *creatorProfileRepositoryImpl) ResetMonthlyEarnings(ctx context.Context) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE creator_profiles SET monthly_earnings = 0, updated_at = now() WHERE monthly_earnings <> 0`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reset monthly earnings: %w", mapError(err))
	}
	return tag.RowsAffected(), nil
}

func (r *creatorProfileRepositoryImpl) FindCounterDrift(ctx context.Context) ([]repository.ProfileCounterDrift, error) {
	query := `
		WITH counted AS (
			SELECT p.id,
			       p.total_subscribers AS stored_subscribers,
			       (SELECT count(*)
			          FROM subscriptions s
			          JOIN subscription_tiers t ON t.id = s.tier_id
			         WHERE t.creator_profile_id = p.id AND s.status = 'active')::int AS actual_subscribers,
			       p.total_content AS stored_content,
			       (SELECT count(*)
			          FROM content c
			         WHERE c.creator_profile_id = p.id AND c.status <> 'deleted')::int AS actual_content
			  FROM creator_profiles p
		)
		SELECT id, stored_subscribers, actual_subscribers, stored_content, actual_content
		  FROM counted
		 WHERE stored_subscribers <> actual_subscribers OR stored_content <> actual_content
		 ORDER BY id
	`

	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile drift: %w", mapError(err))
	}
	defer rows.Close()

	var drift []repository.ProfileCounterDrift
	for rows.Next() {
		var d repository.ProfileCounterDrift
		if err := rows.Scan(&d.ProfileID, &d.StoredSubscribers, &d.ActualSubscribers, &d.StoredContent, &d.ActualContent); err != nil {
			return nil, fmt.Errorf("failed to scan profile drift: %w", err)
		}
		drift = append(drift, d)
	}
	return drift, rows.Err()
}

func (r *creatorProfileRepositoryImpl) SetCounters(ctx context.Context, id uuid.UUID, subscribers, content int) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE creator_profiles SET total_subscribers = $2, total_content = $3, updated_at = now() WHERE id = $1`,
		id, subscribers, content,
	)
	if err != nil {
		return fmt.Errorf("failed to set profile counters: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCreatorProfileNotFound
	}
	return nil
}
