package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateStatus changes the account status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) error
}
