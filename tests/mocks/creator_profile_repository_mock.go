package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/creatorhub/internal/domain/entity"
	"github.com/bivex/creatorhub/internal/domain/repository"
)

// MockCreatorProfileRepository is a mock implementation of CreatorProfileRepository
type MockCreatorProfileRepository struct {
	mock.Mock
}

// NewMockCreatorProfileRepository creates a new mock creator profile repository
func NewMockCreatorProfileRepository() *MockCreatorProfileRepository {
	return &MockCreatorProfileRepository{}
}

func (m *MockCreatorProfileRepository) Create(ctx context.Context, profile *entity.CreatorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCreatorProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CreatorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockCreatorProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.CreatorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockCreatorProfileRepository) UpdateStatus(ctx context.Context, profile *entity.CreatorProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCreatorProfileRepository) AdjustSubscribers(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockCreatorProfileRepository) AdjustContent(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockCreatorProfileRepository) ApplyEarnings(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*entity.CreatorProfile, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorProfile), args.Error(1)
}

func (m *MockCreatorProfileRepository) ResetMonthlyEarnings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreatorProfileRepository) FindCounterDrift(ctx context.Context) ([]repository.ProfileCounterDrift, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ProfileCounterDrift), args.Error(1)
}

func (m *MockCreatorProfileRepository) SetCounters(ctx context.Context, id uuid.UUID, subscribers, content int) error {
	args := m.Called(ctx, id, subscribers, content)
	return args.Error(0)
}
