package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of catalog.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
