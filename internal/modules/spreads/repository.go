package spreads

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// RepositoryInterface defines the contract for spread data access
type RepositoryInterface interface {
	GetAll() ([]Spread, error)
	GetByID(id string) (*Spread, error)
	Create(s Spread) error
	Update(s Spread) error
	Delete(id string) error
}

// Repository handles spread database operations for bucket 2.
// Expiration dates are stored as YYYY-MM-DD strings (nullable); derived
// fields are never stored.
type Repository struct {
	db  *sql.DB // portfolio.db - spreads table
	log zerolog.Logger
}

// NewRepository creates a new spread repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "spreads").Logger(),
	}
}

// GetAll returns all spreads, oldest first.
func (r *Repository) GetAll() ([]Spread, error) {
	rows, err := r.db.Query(`
		SELECT id, status, strategy, ticker, expiration_date, margin_used,
			premium_received, cost_to_close, estimated_cost_to_close, notes
		FROM spreads
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query spreads: %w", err)
	}
	defer rows.Close()

	var list []Spread
	for rows.Next() {
		s, err := scanSpread(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spreads: %w", err)
	}

	return list, nil
}

// GetByID returns a single spread, or nil if it doesn't exist.
func (r *Repository) GetByID(id string) (*Spread, error) {
	row := r.db.QueryRow(`
		SELECT id, status, strategy, ticker, expiration_date, margin_used,
			premium_received, cost_to_close, estimated_cost_to_close, notes
		FROM spreads
		WHERE id = ?
	`, id)

	s, err := scanSpread(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spread %s: %w", id, err)
	}
	return &s, nil
}

// scanSpread scans one spread row, converting the nullable date column.
func scanSpread(scan func(...interface{}) error) (Spread, error) {
	var s Spread
	var expiration sql.NullString
	err := scan(
		&s.ID, &s.Status, &s.Strategy, &s.Ticker, &expiration, &s.MarginUsed,
		&s.PremiumReceived, &s.CostToClose, &s.EstimatedCostToClose, &s.Notes,
	)
	if err == sql.ErrNoRows {
		return s, err
	}
	if err != nil {
		return s, fmt.Errorf("failed to scan spread: %w", err)
	}

	if expiration.Valid && expiration.String != "" {
		if t, parseErr := time.ParseInLocation(DateFormat, expiration.String, time.UTC); parseErr == nil {
			s.ExpirationDate = &t
		}
	}

	return s, nil
}

// expirationValue converts an optional expiration date to its storage form.
func expirationValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(DateFormat)
}

// Create inserts a new spread.
func (r *Repository) Create(s Spread) error {
	now := time.Now().Unix()
	_, err := r.db.Exec(`
		INSERT INTO spreads (id, status, strategy, ticker, expiration_date,
			margin_used, premium_received, cost_to_close,
			estimated_cost_to_close, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Status, s.Strategy, s.Ticker, expirationValue(s.ExpirationDate),
		s.MarginUsed, s.PremiumReceived, s.CostToClose, s.EstimatedCostToClose,
		s.Notes, now, now)
	if err != nil {
		return fmt.Errorf("failed to create spread: %w", err)
	}
	return nil
}

// Update replaces the raw fields of an existing spread.
func (r *Repository) Update(s Spread) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(`
		UPDATE spreads
		SET status = ?, strategy = ?, ticker = ?, expiration_date = ?,
			margin_used = ?, premium_received = ?, cost_to_close = ?,
			estimated_cost_to_close = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, s.Status, s.Strategy, s.Ticker, expirationValue(s.ExpirationDate),
		s.MarginUsed, s.PremiumReceived, s.CostToClose, s.EstimatedCostToClose,
		s.Notes, now, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update spread %s: %w", s.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("spread %s not found", s.ID)
	}
	return nil
}

// Delete removes a spread.
func (r *Repository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM spreads WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete spread %s: %w", id, err)
	}
	return nil
}
