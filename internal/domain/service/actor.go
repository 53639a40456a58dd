package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
	domainErrors "github.com/bivex/creatorhub/internal/domain/errors"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Role   entity.UserRole
}

// IsAdmin returns true for platform administrators
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// SystemActor is used by scheduled jobs and operator tooling
var SystemActor = Actor{Role: entity.RoleAdmin}

// creatorProfileOf resolves the creator profile of the actor
func creatorProfileOf(ctx context.Context, profiles repository.CreatorProfileRepository, actor Actor) (*entity.CreatorProfile, error) {
	profile, err := profiles.GetByUserID(ctx, actor.UserID)
	if errors.Is(err, domainErrors.ErrCreatorProfileNotFound) {
		return nil, domainErrors.ErrNotCreator
	}
	return profile, err
}
