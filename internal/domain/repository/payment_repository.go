package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*entity.Payment, error)

	// Update writes status, refund and processing fields
	Update(ctx context.Context, payment *entity.Payment) error
}
