package database

// schemas maps database names to their embedded schema definitions.
// All statements use IF NOT EXISTS so migration is idempotent.
var schemas = map[string]string{
	"portfolio": portfolioSchema,
	"config":    configSchema,
	"cache":     cacheSchema,
}

// portfolio.db - position tables for all three buckets.
// Derived fields (current_price, market_value, p_l, p_l_pct, days_to_expiration)
// are intentionally not columns: they are recomputed every evaluation cycle
// and must never be written back.
const portfolioSchema = `
CREATE TABLE IF NOT EXISTS positions (
	id TEXT PRIMARY KEY,
	bucket INTEGER NOT NULL CHECK (bucket IN (1, 3)),
	ticker TEXT NOT NULL DEFAULT '',
	instrument_type TEXT NOT NULL DEFAULT '',
	quantity REAL NOT NULL DEFAULT 0,
	total_cost REAL NOT NULL DEFAULT 0,
	manual_market_value REAL NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_positions_bucket ON positions(bucket);

CREATE TABLE IF NOT EXISTS spreads (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL DEFAULT 'Open',
	strategy TEXT NOT NULL DEFAULT '',
	ticker TEXT NOT NULL DEFAULT '',
	expiration_date TEXT,
	margin_used REAL NOT NULL DEFAULT 0,
	premium_received REAL NOT NULL DEFAULT 0,
	cost_to_close REAL NOT NULL DEFAULT 0,
	estimated_cost_to_close REAL NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_spreads_status ON spreads(status);
`

// config.db - key/value settings store.
const configSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	description TEXT,
	updated_at INTEGER NOT NULL
);
`

// cache.db - ephemeral quote cache and dashboard snapshots.
const cacheSchema = `
CREATE TABLE IF NOT EXISTS quote_cache (
	ticker TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS dashboard_snapshots (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`
