package positions

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RepositoryInterface defines the contract for position data access
type RepositoryInterface interface {
	GetByBucket(bucket int) ([]Position, error)
	GetByID(id string) (*Position, error)
	Create(pos Position) error
	Update(pos Position) error
	Delete(id string) error
}

// Repository handles position database operations for buckets 1 and 3.
// Only raw position fields are stored; the schema has no columns for
// derived values, so write-back strips them structurally.
type Repository struct {
	db  *sql.DB // portfolio.db - positions table
	log zerolog.Logger
}

// NewRepository creates a new position repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "positions").Logger(),
	}
}

// GetByBucket returns all positions in a bucket, oldest first.
func (r *Repository) GetByBucket(bucket int) ([]Position, error) {
	rows, err := r.db.Query(`
		SELECT id, bucket, ticker, instrument_type, quantity, total_cost,
			manual_market_value, notes
		FROM positions
		WHERE bucket = ?
		ORDER BY created_at, id
	`, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions for bucket %d: %w", bucket, err)
	}
	defer rows.Close()

	var list []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(
			&pos.ID, &pos.Bucket, &pos.Ticker, &pos.InstrumentType,
			&pos.Quantity, &pos.TotalCost, &pos.ManualMarketValue, &pos.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		list = append(list, pos)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return list, nil
}

// GetByID returns a single position, or nil if it doesn't exist.
func (r *Repository) GetByID(id string) (*Position, error) {
	var pos Position
	err := r.db.QueryRow(`
		SELECT id, bucket, ticker, instrument_type, quantity, total_cost,
			manual_market_value, notes
		FROM positions
		WHERE id = ?
	`, id).Scan(
		&pos.ID, &pos.Bucket, &pos.Ticker, &pos.InstrumentType,
		&pos.Quantity, &pos.TotalCost, &pos.ManualMarketValue, &pos.Notes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get position %s: %w", id, err)
	}
	return &pos, nil
}

// Create inserts a new position.
func (r *Repository) Create(pos Position) error {
	now := time.Now().Unix()
	_, err := r.db.Exec(`
		INSERT INTO positions (id, bucket, ticker, instrument_type, quantity,
			total_cost, manual_market_value, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pos.ID, pos.Bucket, pos.Ticker, pos.InstrumentType, pos.Quantity,
		pos.TotalCost, pos.ManualMarketValue, pos.Notes, now, now)
	if err != nil {
		return fmt.Errorf("failed to create position: %w", err)
	}
	return nil
}

// Update replaces the raw fields of an existing position.
func (r *Repository) Update(pos Position) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(`
		UPDATE positions
		SET ticker = ?, instrument_type = ?, quantity = ?, total_cost = ?,
			manual_market_value = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, pos.Ticker, pos.InstrumentType, pos.Quantity, pos.TotalCost,
		pos.ManualMarketValue, pos.Notes, now, pos.ID)
	if err != nil {
		return fmt.Errorf("failed to update position %s: %w", pos.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("position %s not found", pos.ID)
	}
	return nil
}

// Delete removes a position.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM positions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete position %s: %w", id, err)
	}
	return nil
}
