package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"adcheck/internal/domain"
)

// MockChecklistCatalog is a mock implementation of port.ChecklistCatalog.
type MockChecklistCatalog struct {
	mock.Mock
}

func (m *MockChecklistCatalog) ListAdTypes(ctx context.Context) ([]domain.AdType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AdType), args.Error(1)
}

func (m *MockChecklistCatalog) ListChecklist(ctx context.Context, adType domain.AdType) ([]domain.ChecklistItem, error) {
	args := m.Called(ctx, adType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChecklistItem), args.Error(1)
}

func (m *MockChecklistCatalog) ListScenes(ctx context.Context, adType domain.AdType) ([]domain.Scene, error) {
	args := m.Called(ctx, adType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scene), args.Error(1)
}
