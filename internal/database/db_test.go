package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, name string, profile DatabaseProfile) *DB {
	t.Helper()

	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), name+".db"),
		Profile: profile,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_OpensAndPings(t *testing.T) {
	db := openTestDB(t, "portfolio", ProfileStandard)
	assert.Equal(t, "portfolio", db.Name())
	require.NoError(t, db.Conn().Ping())
}

func TestMigrate_CreatesTables(t *testing.T) {
	cases := map[string]string{
		"portfolio": "positions",
		"config":    "settings",
		"cache":     "quote_cache",
	}

	for name, table := range cases {
		db := openTestDB(t, name, ProfileStandard)
		require.NoError(t, db.Migrate())

		var count int
		err := db.Conn().QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "expected table %s in %s", table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t, "portfolio", ProfileStandard)
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Migrate())
}

func TestMigrate_UnknownNameIsNoop(t *testing.T) {
	db := openTestDB(t, "scratch", ProfileStandard)
	require.NoError(t, db.Migrate())
}

func TestWALModeEnabled(t *testing.T) {
	db := openTestDB(t, "portfolio", ProfileStandard)

	var mode string
	require.NoError(t, db.Conn().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
