package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/packdex/internal/models"
)

// MockRemoteStore is a mock implementation of remote.StoreInterface
type MockRemoteStore struct {
	mock.Mock
}

func (m *MockRemoteStore) SaveProfile(ctx context.Context, snap models.ProfileSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockRemoteStore) TopPlayers(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockRemoteStore) PutListing(ctx context.Context, l models.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockRemoteStore) DeleteListing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemoteStore) Listings(ctx context.Context) ([]models.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}
