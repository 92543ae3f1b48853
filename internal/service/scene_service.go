package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"adcheck/internal/domain"
	"adcheck/internal/port"
)

// SceneService manages the user-defined scene set.
type SceneService interface {
	List(ctx context.Context) ([]domain.Scene, error)
	Replace(ctx context.Context, scenes []domain.Scene) ([]domain.Scene, error)
}

type sceneService struct {
	store port.SceneStore
}

// NewSceneService creates a SceneService.
func NewSceneService(store port.SceneStore) SceneService {
	return &sceneService{store: store}
}

func (s *sceneService) List(ctx context.Context) ([]domain.Scene, error) {
	return s.store.Load(ctx)
}

// Replace saves the whole set at once, the way the settings panel edits it.
// Simple scenes need a name; IDs and timestamps are filled in when missing.
func (s *sceneService) Replace(ctx context.Context, scenes []domain.Scene) ([]domain.Scene, error) {
	now := time.Now().UTC()
	for i := range scenes {
		sc := &scenes[i]
		if sc.Kind == "" {
			sc.Kind = domain.SceneKindSimple
		}
		if sc.Kind == domain.SceneKindSimple && strings.TrimSpace(sc.Name) == "" {
			return nil, domain.ErrMissingField
		}
		if sc.ID == "" {
			sc.ID = uuid.New().String()
		}
		if sc.CreatedAt.IsZero() {
			sc.CreatedAt = now
		}
	}
	if err := s.store.Save(ctx, scenes); err != nil {
		return nil, err
	}
	return scenes, nil
}
