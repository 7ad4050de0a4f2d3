// Package quotes provides live price resolution with persistent TTL caching.
// The resolver never returns an error to callers: any lookup failure degrades
// through the fallback chain (live price, previous daily close, stale cache)
// down to a zero price.
package quotes

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// TTLQuote bounds how long a resolved price is reused before a fresh lookup.
const TTLQuote = 5 * time.Minute

// CacheRepository provides ticker-keyed quote caching in cache.db.
// Data is stored as JSON blobs with expiration timestamps.
type CacheRepository struct {
	db *sql.DB
}

// NewCacheRepository creates a new quote cache repository
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Store saves data with expiration = now + ttl.
// Uses INSERT OR REPLACE to upsert data.
func (r *CacheRepository) Store(ticker string, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal quote data: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO quote_cache (ticker, data, expires_at) VALUES (?, ?, ?)",
		ticker, string(jsonData), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store quote for %s: %w", ticker, err)
	}

	return nil
}

// GetIfFresh returns data only if expires_at > now, nil otherwise.
// Returns nil, nil if the ticker doesn't exist or data is expired.
// Use Get() to retrieve stale data as a fallback when lookups fail.
func (r *CacheRepository) GetIfFresh(ticker string) (json.RawMessage, error) {
	now := time.Now().Unix()

	var data string
	err := r.db.QueryRow(
		"SELECT data FROM quote_cache WHERE ticker = ? AND expires_at > ?",
		ticker, now,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached quote for %s: %w", ticker, err)
	}

	return json.RawMessage(data), nil
}

// Get returns data regardless of expiration status.
// Use this as a fallback when lookups fail - stale data is better than no data.
// Returns nil, nil if the ticker doesn't exist.
func (r *CacheRepository) Get(ticker string) (json.RawMessage, error) {
	var data string
	err := r.db.QueryRow(
		"SELECT data FROM quote_cache WHERE ticker = ?",
		ticker,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached quote for %s: %w", ticker, err)
	}

	return json.RawMessage(data), nil
}

// Clear removes all cached quotes. Used by the manual refresh action so the
// next evaluation cycle re-issues live lookups for every ticker.
func (r *CacheRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM quote_cache")
	if err != nil {
		return fmt.Errorf("failed to clear quote cache: %w", err)
	}
	return nil
}
