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

const contentColumns = `id, creator_id, creator_profile_id, title, type, status, visibility, required_tier_id,
	published_at, view_count, like_count, comment_count, share_count, created_at, updated_at`

type contentRepositoryImpl struct {
	conn
}

// NewContentRepository creates a new content repository
func NewContentRepository(pool *pgxpool.Pool) repository.ContentRepository {
	return &contentRepositoryImpl{conn{pool: pool}}
}

func scanContent(row pgx.Row) (*entity.Content, error) {
	c := &entity.Content{}
	err := row.Scan(
		&c.ID,
		&c.CreatorID,
		&c.CreatorProfileID,
		&c.Title,
		&c.Type,
		&c.Status,
		&c.Visibility,
		&c.RequiredTierID,
		&c.PublishedAt,
		&c.ViewCount,
		&c.LikeCount,
		&c.CommentCount,
		&c.ShareCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *contentRepositoryImpl) Create(ctx context.Context, c *entity.Content) error {
	query := `
		INSERT INTO content (` + contentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db(ctx).Exec(ctx, query,
		c.ID,
		c.CreatorID,
		c.CreatorProfileID,
		c.Title,
		c.Type,
		c.Status,
		c.Visibility,
		c.RequiredTierID,
		c.PublishedAt,
		c.ViewCount,
		c.LikeCount,
		c.CommentCount,
		c.ShareCount,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", mapError(err))
	}
	return nil
}

func (r *contentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entity.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM content WHERE id = $1`

	c, err := scanContent(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", notFound(err, domainErrors.ErrContentNotFound))
	}
	return c, nil
}

func (r *contentRepositoryImpl) Update(ctx context.Context, c *entity.Content) error {
	query := `
		UPDATE content
		SET title = $2, status = $3, visibility = $4, published_at = $5, updated_at = $6
		WHERE id = $1
	`
	tag, err := r.db(ctx).Exec(ctx, query, c.ID, c.Title, c.Status, c.Visibility, c.PublishedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrContentNotFound
	}
	return nil
}
