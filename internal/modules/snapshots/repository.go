// Package snapshots persists the most recent computed dashboard view so the
// presentation layer can read the last result without forcing a recompute.
// Views are msgpack-encoded blobs in cache.db; only the latest is kept.
package snapshots

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Repository handles dashboard snapshot storage.
type Repository struct {
	db  *sql.DB // cache.db - dashboard_snapshots table
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "snapshots").Logger(),
	}
}

// Store replaces the stored snapshot with the given view.
func (r *Repository) Store(view interface{}) error {
	data, err := msgpack.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	now := time.Now().Unix()
	_, err = r.db.Exec(`
		INSERT INTO dashboard_snapshots (id, data, created_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			created_at = excluded.created_at
	`, data, now)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	return nil
}

// Load decodes the stored snapshot into out.
// Returns found=false (not an error) when no snapshot has been stored yet.
func (r *Repository) Load(out interface{}) (found bool, createdAt time.Time, err error) {
	var data []byte
	var created int64
	scanErr := r.db.QueryRow(
		"SELECT data, created_at FROM dashboard_snapshots WHERE id = 1",
	).Scan(&data, &created)
	if scanErr == sql.ErrNoRows {
		return false, time.Time{}, nil
	}
	if scanErr != nil {
		return false, time.Time{}, fmt.Errorf("failed to load snapshot: %w", scanErr)
	}

	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return true, time.Unix(created, 0), nil
}
