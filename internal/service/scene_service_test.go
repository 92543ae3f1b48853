package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adcheck/internal/domain"
	"adcheck/internal/service"
	"adcheck/mocks"
)

func TestSceneService_List(t *testing.T) {
	store := new(mocks.MockSceneStore)
	store.On("Load", mock.Anything).Return(domain.DefaultScenes(), nil)

	svc := service.NewSceneService(store)
	scenes, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, scenes, 4)
}

func TestSceneService_Replace_FillsIDsAndTimestamps(t *testing.T) {
	store := new(mocks.MockSceneStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewSceneService(store)
	saved, err := svc.Replace(context.Background(), []domain.Scene{
		{Name: "屋上", Criteria: "防水状態が確認できるか"},
	})

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, domain.SceneKindSimple, saved[0].Kind)
	assert.NotEmpty(t, saved[0].ID)
	assert.False(t, saved[0].CreatedAt.IsZero())
}

func TestSceneService_Replace_RequiresName(t *testing.T) {
	store := new(mocks.MockSceneStore)

	svc := service.NewSceneService(store)
	_, err := svc.Replace(context.Background(), []domain.Scene{
		{Kind: domain.SceneKindSimple, Name: "  "},
	})

	assert.ErrorIs(t, err, domain.ErrMissingField)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSceneService_Replace_KeepsExistingIDs(t *testing.T) {
	store := new(mocks.MockSceneStore)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewSceneService(store)
	saved, err := svc.Replace(context.Background(), []domain.Scene{
		{ID: "keep-me", Name: "外観"},
	})

	require.NoError(t, err)
	assert.Equal(t, "keep-me", saved[0].ID)
}
