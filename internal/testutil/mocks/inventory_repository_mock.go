package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockInventoryRepository is a mock implementation of repository.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Count(ctx context.Context, profileID int64, pack, cardID string) (int, error) {
	args := m.Called(ctx, profileID, pack, cardID)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryRepository) Add(ctx context.Context, profileID int64, pack, cardID string, delta int) error {
	args := m.Called(ctx, profileID, pack, cardID, delta)
	return args.Error(0)
}

func (m *MockInventoryRepository) Remove(ctx context.Context, profileID int64, pack, cardID string) error {
	args := m.Called(ctx, profileID, pack, cardID)
	return args.Error(0)
}

func (m *MockInventoryRepository) Counts(ctx context.Context, profileID int64, pack string) (map[string]int, error) {
	args := m.Called(ctx, profileID, pack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockInventoryRepository) UniquePerPack(ctx context.Context, profileID int64) (map[string]int, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockInventoryRepository) TotalUnique(ctx context.Context, profileID int64) (int, error) {
	args := m.Called(ctx, profileID)
	return args.Int(0), args.Error(1)
}
