package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"

	"adcheck/internal/domain"
	"adcheck/internal/port"
)

type historyRepo struct {
	db *sqlx.DB
}

// NewHistoryRepo creates a SQLite-backed HistoryRepository.
func NewHistoryRepo(db *sqlx.DB) port.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO history (id, session_id, track, file_name, ad_type, total, passed, failed, needs_review, completed_at)
		 VALUES (:id, :session_id, :track, :file_name, :ad_type, :total, :passed, :failed, :needs_review, :completed_at)`,
		entry)
	return err
}

func (r *historyRepo) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var entries []domain.HistoryEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, session_id, track, file_name, ad_type, total, passed, failed, needs_review, completed_at
		 FROM history
		 ORDER BY completed_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
