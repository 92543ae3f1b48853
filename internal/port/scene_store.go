package port

import (
	"context"

	"adcheck/internal/domain"
)

// SceneStore persists the user-defined scene set. Reads are best-effort:
// implementations fall back to a built-in default set instead of failing
// when the stored data is missing or unreadable.
type SceneStore interface {
	Load(ctx context.Context) ([]domain.Scene, error)
	Save(ctx context.Context, scenes []domain.Scene) error
}

// HistoryRepository records completed judgment runs.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}
