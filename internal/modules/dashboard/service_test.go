package dashboard

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/bucketboard/internal/database"
	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
)

// frozenQuotes is a deterministic QuoteResolver for repeatable cycles.
type frozenQuotes struct {
	prices    map[string]float64
	refreshes int
}

func (f *frozenQuotes) Resolve(ticker string) float64 {
	return f.prices[ticker]
}

func (f *frozenQuotes) Refresh() error {
	f.refreshes++
	return nil
}

func setupTestService(t *testing.T, quotes QuoteResolver) (*Service, *positions.Repository, *spreads.Repository, *settings.Service) {
	t.Helper()
	log := zerolog.Nop()
	tmpDir := t.TempDir()

	portfolioDB, err := database.New(database.Config{
		Path:    filepath.Join(tmpDir, "portfolio.db"),
		Profile: database.ProfileStandard,
		Name:    "portfolio",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = portfolioDB.Close() })
	require.NoError(t, portfolioDB.Migrate())

	configDB, err := database.New(database.Config{
		Path:    filepath.Join(tmpDir, "config.db"),
		Profile: database.ProfileStandard,
		Name:    "config",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = configDB.Close() })
	require.NoError(t, configDB.Migrate())

	positionRepo := positions.NewRepository(portfolioDB.Conn(), log)
	spreadRepo := spreads.NewRepository(portfolioDB.Conn(), log)
	settingsSvc := settings.NewService(settings.NewRepository(configDB.Conn(), log), log)

	svc := NewService(
		positionRepo,
		spreadRepo,
		settingsSvc,
		positions.NewValuator(log),
		spreads.NewLedger(log),
		quotes,
		nil,
		log,
	)

	return svc, positionRepo, spreadRepo, settingsSvc
}

func TestEvaluate_EmptyPortfolioUsesDefaults(t *testing.T) {
	svc, _, _, _ := setupTestService(t, &frozenQuotes{})

	view, err := svc.Evaluate(time.Now().UTC())
	require.NoError(t, err)

	assert.Empty(t, view.Bucket1)
	assert.Empty(t, view.Bucket3)
	assert.Equal(t, 100000.0, view.Settings.TotalCapital)
	assert.Equal(t, 100000.0, view.Totals.CashAvailable)
	assert.Equal(t, 0.0, view.Totals.TotalReturnPct)
}

func TestEvaluate_FullPipeline(t *testing.T) {
	quotes := &frozenQuotes{prices: map[string]float64{"VOO": 500}}
	svc, positionRepo, spreadRepo, _ := setupTestService(t, quotes)

	require.NoError(t, positionRepo.Create(positions.Position{
		ID:             "p1",
		Bucket:         positions.BucketCore,
		Ticker:         "VOO",
		InstrumentType: positions.TypeETF,
		Quantity:       20,
		TotalCost:      9000,
	}))
	require.NoError(t, positionRepo.Create(positions.Position{
		ID:             "p2",
		Bucket:         positions.BucketSpeculative,
		Ticker:         "MOON",
		InstrumentType: positions.TypeStock,
		Quantity:       100,
		TotalCost:      2000,
	}))

	exp := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	require.NoError(t, spreadRepo.Create(spreads.Spread{
		ID:                   "s1",
		Status:               spreads.StatusOpen,
		Strategy:             "Put Credit Spread",
		Ticker:               "SPY",
		ExpirationDate:       &exp,
		MarginUsed:           5000,
		PremiumReceived:      300,
		EstimatedCostToClose: 100,
	}))

	asOf := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	view, err := svc.Evaluate(asOf)
	require.NoError(t, err)

	require.Len(t, view.Bucket1, 1)
	assert.Equal(t, 10000.0, view.Bucket1[0].MarketValue)

	// MOON has no quote: market value zeroes out and P/L% hits -100.
	require.Len(t, view.Bucket3, 1)
	assert.Equal(t, 0.0, view.Bucket3[0].MarketValue)
	assert.Equal(t, -100.0, view.Bucket3[0].PLPct)

	require.Len(t, view.Bucket2.Open, 1)
	assert.Equal(t, 200.0, view.Bucket2.UnrealizedPL)
	require.NotNil(t, view.Bucket2.Open[0].DaysToExpiration)
	assert.Equal(t, 8, *view.Bucket2.Open[0].DaysToExpiration)

	// 9000 + 2000 + 5000 margin
	assert.Equal(t, 16000.0, view.Totals.TotalInvested)
	// 10000 + 0 + 5000 + 200
	assert.Equal(t, 15200.0, view.Totals.TotalPortfolioValue)

	// Warnings: MOON breached the -20% default stop-loss, the spread sits
	// inside the 21-day default expiration window.
	assert.Equal(t, 1, view.Warnings.StopLossCount)
	assert.Equal(t, "MOON", view.Warnings.StopLoss[0].Ticker)
	assert.Equal(t, 1, view.Warnings.ExpiringCount)
}

func TestEvaluate_Idempotent(t *testing.T) {
	quotes := &frozenQuotes{prices: map[string]float64{"VOO": 473.21}}
	svc, positionRepo, _, _ := setupTestService(t, quotes)

	require.NoError(t, positionRepo.Create(positions.Position{
		ID:             "p1",
		Bucket:         positions.BucketCore,
		Ticker:         "VOO",
		InstrumentType: positions.TypeETF,
		Quantity:       7,
		TotalCost:      3000,
	}))

	asOf := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	first, err := svc.Evaluate(asOf)
	require.NoError(t, err)
	second, err := svc.Evaluate(asOf)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_SeesEditsImmediately(t *testing.T) {
	svc, positionRepo, _, _ := setupTestService(t, &frozenQuotes{prices: map[string]float64{"VTI": 280}})

	pos := positions.Position{
		ID:             "p1",
		Bucket:         positions.BucketCore,
		Ticker:         "VTI",
		InstrumentType: positions.TypeETF,
		Quantity:       10,
		TotalCost:      2500,
	}
	require.NoError(t, positionRepo.Create(pos))

	view, err := svc.Evaluate(time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 2800.0, view.Bucket1[0].MarketValue)

	pos.Quantity = 20
	require.NoError(t, positionRepo.Update(pos))

	view, err = svc.Evaluate(time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 5600.0, view.Bucket1[0].MarketValue)
}

func TestRefresh_ClearsQuoteCache(t *testing.T) {
	quotes := &frozenQuotes{}
	svc, _, _, _ := setupTestService(t, quotes)

	_, err := svc.Refresh(time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, quotes.refreshes)
}

func TestCustomSettingsDriveThresholds(t *testing.T) {
	quotes := &frozenQuotes{prices: map[string]float64{"X": 9}}
	svc, positionRepo, _, settingsSvc := setupTestService(t, quotes)

	require.NoError(t, settingsSvc.Save(settings.Values{
		TotalCapital:         50000,
		MonthlyIncomeTarget:  1500,
		StopLossThresholdPct: -5,
		DTEWarningDays:       21,
		RefreshMinutes:       15,
	}))

	// -10% loss: inside the default threshold, beyond the custom one.
	require.NoError(t, positionRepo.Create(positions.Position{
		ID:             "p1",
		Bucket:         positions.BucketSpeculative,
		Ticker:         "X",
		InstrumentType: positions.TypeStock,
		Quantity:       100,
		TotalCost:      1000,
	}))

	view, err := svc.Evaluate(time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, 50000.0, view.Settings.TotalCapital)
	assert.Equal(t, 1, view.Warnings.StopLossCount)
}
