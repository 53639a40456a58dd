package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// ContentRepository defines the interface for content data access
type ContentRepository interface {
	Create(ctx context.Context, content *entity.Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Content, error)

	// Update writes title, status, visibility and publication time
	Update(ctx context.Context, content *entity.Content) error
}
