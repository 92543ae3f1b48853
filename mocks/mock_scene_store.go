package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adcheck/internal/domain"
)

// MockSceneStore is a mock implementation of port.SceneStore.
type MockSceneStore struct {
	mock.Mock
}

func (m *MockSceneStore) Load(ctx context.Context) ([]domain.Scene, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scene), args.Error(1)
}

func (m *MockSceneStore) Save(ctx context.Context, scenes []domain.Scene) error {
	args := m.Called(ctx, scenes)
	return args.Error(0)
}
