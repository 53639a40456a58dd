package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// ProfileCounterDrift is a creator profile whose cached counters disagree with the rows they count
type ProfileCounterDrift struct {
	ProfileID         uuid.UUID `json:"profile_id"`
	StoredSubscribers int       `json:"stored_subscribers"`
	ActualSubscribers int       `json:"actual_subscribers"`
	StoredContent     int       `json:"stored_content"`
	ActualContent     int       `json:"actual_content"`
}

// CreatorProfileRepository defines the interface for creator profile data access
type CreatorProfileRepository interface {
	Create(ctx context.Context, profile *entity.CreatorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CreatorProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreatorProfile, error)

	// UpdateStatus writes the activity and verification fields
	UpdateStatus(ctx context.Context, profile *entity.CreatorProfile) error

	// AdjustSubscribers atomically adds delta to TotalSubscribers.
	// Returns ErrCounterUnderflow when the result would be negative.
	AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error

	// AdjustContent atomically adds delta to TotalContent
	AdjustContent(ctx context.Context, id uuid.UUID, delta int) error

	// ApplyEarnings atomically adds delta to total and monthly earnings.
	// Returns ErrNegativeEarnings when either would drop below zero.
	ApplyEarnings(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*entity.CreatorProfile, error)

	// ResetMonthlyEarnings zeroes MonthlyEarnings on every profile
	ResetMonthlyEarnings(ctx context.Context) (int64, error)

	// FindCounterDrift lists profiles whose counters disagree with active subscriptions and live content
	FindCounterDrift(ctx context.Context) ([]ProfileCounterDrift, error)

	// SetCounters overwrites both counters
	SetCounters(ctx context.Context, id uuid.UUID, subscribers, content int) error
}
