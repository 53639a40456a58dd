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

const grantColumns = `id, user_id, content_id, subscription_tier_id, access_type, status, granted_at, expires_at,
	revoked_at, revoke_reason, is_unlimited, access_count, last_accessed_at, created_at, updated_at`

type contentAccessRepositoryImpl struct {
	conn
}

// NewContentAccessRepository creates a new access grant repository
func NewContentAccessRepository(pool *pgxpool.Pool) repository.ContentAccessRepository {
	return &contentAccessRepositoryImpl{conn{pool: pool}}
}

func scanGrant(row pgx.Row) (*entity.ContentAccess, error) {
	g := &entity.ContentAccess{}
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.ContentID,
		&g.SubscriptionTierID,
		&g.AccessType,
		&g.Status,
		&g.GrantedAt,
		&g.ExpiresAt,
		&g.RevokedAt,
		&g.RevokeReason,
		&g.IsUnlimited,
		&g.AccessCount,
		&g.LastAccessedAt,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func (r *contentAccessRepositoryImpl) Create(ctx context.Context, g *entity.ContentAccess) error {
	query := `
		INSERT INTO content_access (` + grantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		g.ID,
		g.UserID,
		g.ContentID,
		g.SubscriptionTierID,
		g.AccessType,
		g.Status,
		g.GrantedAt,
		g.ExpiresAt,
		g.RevokedAt,
		g.RevokeReason,
		g.IsUnlimited,
		g.AccessCount,
		g.LastAccessedAt,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create grant: %w", mapError(err))
	}
	return nil
}

func (r *contentAccessRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.ContentAccess, error) {
	query := `SELECT ` + grantColumns + ` FROM content_access WHERE id = $1`

	g, err := scanGrant(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get grant: %w", notFound(err, domainErrors.ErrGrantNotFound))
	}
	return g, nil
}

func (r *contentAccessRepositoryImpl) GetForUserContent(ctx context.Context, userID, contentID uuid.UUID) (*entity.ContentAccess, error) {
	query := `
		SELECT ` + grantColumns + `
		FROM content_access
		WHERE user_id = $1 AND content_id = $2
		ORDER BY (status = 'active') DESC, created_at DESC
		LIMIT 1
	`

	g, err := scanGrant(r.db(ctx).QueryRow(ctx, query, userID, contentID))
	if err != nil {
		return nil, fmt.Errorf("failed to get grant: %w", notFound(err, domainErrors.ErrGrantNotFound))
	}
	return g, nil
}

func (r *contentAccessRepositoryImpl) RecordAccess(ctx context.Context, id uuid.UUID, at time.Time) (int, error) {
	query := `
		UPDATE content_access
		SET access_count = access_count + 1, last_accessed_at = $2, updated_at = $2
		WHERE id = $1
		RETURNING access_count
	`
	var count int
	if err := r.db(ctx).QueryRow(ctx, query, id, at).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to record access: %w", notFound(err, domainErrors.ErrGrantNotFound))
	}
	return count, nil
}

func (r *contentAccessRepositoryImpl) UpdateStatus(ctx context.Context, g *entity.ContentAccess) error {
	query := `
		UPDATE content_access
		SET status = $2, revoked_at = $3, revoke_reason = $4, updated_at = $5
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query, g.ID, g.Status, g.RevokedAt, g.RevokeReason, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update grant: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrGrantNotFound
	}
	return nil
}

func (r *contentAccessRepositoryImpl) ExpireLapsed(ctx context.Context, now time.Time, limit int) (int64, error) {
	query := `
		WITH lapsed AS (
			SELECT id FROM content_access
			WHERE status = 'active' AND is_unlimited = false
			  AND expires_at IS NOT NULL AND expires_at < $1
			ORDER BY expires_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		UPDATE content_access ca
		SET status = 'expired', updated_at = $1
		FROM lapsed
		WHERE ca.id = lapsed.id
	`
	tag, err := r.db(ctx).Exec(ctx, query, now, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to expire grants: %w", mapError(err))
	}
	return tag.RowsAffected(), nil
}
