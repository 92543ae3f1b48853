package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adcheck/internal/domain"
)

// MockSceneService is a mock implementation of service.SceneService.
type MockSceneService struct {
	mock.Mock
}

func (m *MockSceneService) List(ctx context.Context) ([]domain.Scene, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scene), args.Error(1)
}

func (m *MockSceneService) Replace(ctx context.Context, scenes []domain.Scene) ([]domain.Scene, error) {
	args := m.Called(ctx, scenes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scene), args.Error(1)
}
