package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// ContentAccessRepository defines the interface for access grant data access.
// Grants are never deleted.
type ContentAccessRepository interface {
	Create(ctx context.Context, grant *entity.ContentAccess) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ContentAccess, error)

	// GetForUserContent returns the grant deciding access of a user to content:
	// the newest active grant, or the newest grant of any status when none is active.
	GetForUserContent(ctx context.Context, userID, contentID uuid.UUID) (*entity.ContentAccess, error)

	// RecordAccess atomically increments AccessCount and stamps LastAccessedAt
	RecordAccess(ctx context.Context, id uuid.UUID, at time.Time) (int, error)

	// UpdateStatus writes status and revocation fields
	UpdateStatus(ctx context.Context, grant *entity.ContentAccess) error

	// ExpireLapsed moves active, limited grants past ExpiresAt to expired
	ExpireLapsed(ctx context.Context, now time.Time, limit int) (int64, error)
}
