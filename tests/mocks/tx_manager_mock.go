package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// TxManagerStub runs the unit of work directly and counts the calls
type TxManagerStub struct {
	Calls int
}

func (s *TxManagerStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.Calls++
	return fn(ctx)
}

// MockTierCache is a mock implementation of service.TierCache
type MockTierCache struct {
	mock.Mock
}

func (m *MockTierCache) Get(ctx context.Context, id uuid.UUID) (*entity.SubscriptionTier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubscriptionTier), args.Error(1)
}

func (m *MockTierCache) Set(ctx context.Context, tier *entity.SubscriptionTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockTierCache) Invalidate(ctx context.Context, ids ...uuid.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}
