package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"adcheck/internal/domain"
	"adcheck/internal/port"
)

// sceneSetName is the fixed key the user-defined scene set is stored under.
const sceneSetName = "realestate-scenes"

type sceneRepo struct {
	db       *sqlx.DB
	defaults []domain.Scene
}

// NewSceneRepo creates a SQLite-backed SceneStore. Reads are best-effort:
// a missing or unreadable stored set falls back to defaults instead of
// failing the session.
func NewSceneRepo(db *sqlx.DB, defaults []domain.Scene) port.SceneStore {
	return &sceneRepo{db: db, defaults: defaults}
}

func (r *sceneRepo) Load(ctx context.Context) ([]domain.Scene, error) {
	var payload string
	err := r.db.GetContext(ctx, &payload,
		`SELECT payload FROM scene_sets WHERE name = ?`, sceneSetName)
	if errors.Is(err, sql.ErrNoRows) {
		return r.defaults, nil
	}
	if err != nil {
		log.Printf("sceneRepo.Load: read failed, falling back to defaults: %v", err)
		return r.defaults, nil
	}

	var scenes []domain.Scene
	if err := json.Unmarshal([]byte(payload), &scenes); err != nil {
		log.Printf("sceneRepo.Load: stored payload unreadable, falling back to defaults: %v", err)
		return r.defaults, nil
	}
	return scenes, nil
}

func (r *sceneRepo) Save(ctx context.Context, scenes []domain.Scene) error {
	payload, err := json.Marshal(scenes)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO scene_sets (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		sceneSetName, string(payload), time.Now().UTC())
	return err
}
