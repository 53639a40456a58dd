package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bivex/creatorhub/internal/domain/entity"
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	mock.Mock
}

// NewMockContentRepository creates a new mock content repository
func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{}
}

func (m *MockContentRepository) Create(ctx context.Context, content *entity.Content) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockContentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Content), args.Error(1)
}

func (m *MockContentRepository) Update(ctx context.Context, content *entity.Content) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

// MockContentAccessRepository is a mock implementation of ContentAccessRepository
type MockContentAccessRepository struct {
	mock.Mock
}

// NewMockContentAccessRepository creates a new mock grant repository
func NewMockContentAccessRepository() *MockContentAccessRepository {
	return &MockContentAccessRepository{}
}

func (m *MockContentAccessRepository) Create(ctx context.Context, grant *entity.ContentAccess) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockContentAccessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ContentAccess, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContentAccess), args.Error(1)
}

func (m *MockContentAccessRepository) GetForUserContent(ctx context.Context, userID, contentID uuid.UUID) (*entity.ContentAccess, error) {
	args := m.Called(ctx, userID, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ContentAccess), args.Error(1)
}

func (m *MockContentAccessRepository) RecordAccess(ctx context.Context, id uuid.UUID, at time.Time) (int, error) {
	args := m.Called(ctx, id, at)
	return args.Int(0), args.Error(1)
}

func (m *MockContentAccessRepository) UpdateStatus(ctx context.Context, grant *entity.ContentAccess) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

func (m *MockContentAccessRepository) ExpireLapsed(ctx context.Context, now time.Time, limit int) (int64, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).(int64), args.Error(1)
}
