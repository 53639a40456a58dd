package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// MockSubscriptionTierRepository is a mock implementation of SubscriptionTierRepository
type MockSubscriptionTierRepository struct {
	mock.Mock
}

// NewMockSubscriptionTierRepository creates a new mock tier repository
func NewMockSubscriptionTierRepository() *MockSubscriptionTierRepository {
	return &MockSubscriptionTierRepository{}
}

func (m *MockSubscriptionTierRepository) Create(ctx context.Context, tier *entity.SubscriptionTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockSubscriptionTierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionTier), args.Error(1)
}

func (m *MockSubscriptionTierRepository) ListByCreator(ctx context.Context, profileID uuid.UUID) ([]*entity.SubscriptionTier, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SubscriptionTier), args.Error(1)
}

func (m *MockSubscriptionTierRepository) Update(ctx context.Context, tier *entity.SubscriptionTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockSubscriptionTierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionTierRepository) AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockSubscriptionTierRepository) FindSubscriberDrift(ctx context.Context) ([]repository.TierCounterDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TierCounterDrift), args.Error(1)
}

func (m *MockSubscriptionTierRepository) SetSubscribers(ctx context.Context, id uuid.UUID, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}
