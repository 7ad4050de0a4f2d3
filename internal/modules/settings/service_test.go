package settings

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/bucketboard/internal/database"
)

func setupTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "config.db"),
		Profile: database.ProfileStandard,
		Name:    "config",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	repo := NewRepository(db.Conn(), zerolog.Nop())
	return NewService(repo, zerolog.Nop()), repo
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	svc, _ := setupTestService(t)

	v, err := svc.Load()
	require.NoError(t, err)

	assert.Equal(t, 100000.0, v.TotalCapital)
	assert.Equal(t, 1500.0, v.MonthlyIncomeTarget)
	assert.Equal(t, -20.0, v.StopLossThresholdPct)
	assert.Equal(t, 21, v.DTEWarningDays)
	assert.Equal(t, 15, v.RefreshMinutes)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	svc, _ := setupTestService(t)

	saved := Values{
		TotalCapital:         250000,
		MonthlyIncomeTarget:  3000,
		StopLossThresholdPct: -15,
		DTEWarningDays:       14,
		RefreshMinutes:       5,
	}
	require.NoError(t, svc.Save(saved))

	v, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, v)
}

func TestLoad_MalformedValueFallsBackToDefault(t *testing.T) {
	svc, repo := setupTestService(t)

	require.NoError(t, repo.Set(KeyTotalCapital, "not-a-number", nil))

	v, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults[KeyTotalCapital], v.TotalCapital)
}

func TestLoad_NilRepoIsHardFailure(t *testing.T) {
	svc := NewService(nil, zerolog.Nop())

	_, err := svc.Load()
	assert.Error(t, err)
}

func TestEnsureDefaults(t *testing.T) {
	svc, repo := setupTestService(t)

	require.NoError(t, svc.EnsureDefaults())

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, len(Defaults))

	// Seeding again must not clobber existing values.
	require.NoError(t, repo.SetFloat(KeyTotalCapital, 77000))
	require.NoError(t, svc.EnsureDefaults())

	got, err := repo.GetFloat(KeyTotalCapital, 0)
	require.NoError(t, err)
	assert.Equal(t, 77000.0, got)
}

func TestRepository_TypedGetters(t *testing.T) {
	_, repo := setupTestService(t)

	// Missing key returns the default
	f, err := repo.GetFloat("missing", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)

	// Integer stored as "21.0" still parses
	require.NoError(t, repo.Set(KeyDTEWarningDays, "21.0", nil))
	i, err := repo.GetInt(KeyDTEWarningDays, 0)
	require.NoError(t, err)
	assert.Equal(t, 21, i)
}

func TestRepository_DeleteIdempotent(t *testing.T) {
	_, repo := setupTestService(t)

	require.NoError(t, repo.SetFloat("tmp", 1))
	require.NoError(t, repo.Delete("tmp"))
	require.NoError(t, repo.Delete("tmp"))

	got, err := repo.Get("tmp")
	require.NoError(t, err)
	assert.Nil(t, got)
}
