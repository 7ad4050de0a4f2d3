package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
)

func computedPosition(cost, marketValue float64) positions.ComputedPosition {
	return positions.ComputedPosition{
		Position:    positions.Position{TotalCost: cost},
		MarketValue: marketValue,
		PL:          marketValue - cost,
	}
}

func TestAggregate_AllBuckets(t *testing.T) {
	bucket1 := []positions.ComputedPosition{
		computedPosition(10000, 11000),
		computedPosition(5000, 4800),
	}
	bucket3 := []positions.ComputedPosition{
		computedPosition(2000, 2500),
	}
	bucket2 := spreads.LedgerResult{
		MarginInUse:    5000,
		RealizedIncome: 300,
		UnrealizedPL:   150,
		TotalPL:        450,
	}
	cfg := settings.Values{TotalCapital: 100000}

	totals := Aggregate(bucket1, bucket3, bucket2, cfg)

	assert.Equal(t, 15800.0, totals.TotalB1Value)
	assert.Equal(t, 2500.0, totals.TotalB3Value)
	assert.Equal(t, 22000.0, totals.TotalInvested)          // 15000 + 2000 + 5000
	assert.Equal(t, 23450.0, totals.TotalPortfolioValue)    // 15800 + 2500 + 5000 + 150
	assert.Equal(t, 78000.0, totals.CashAvailable)          // 100000 - 22000
	assert.Equal(t, 1750.0, totals.TotalPL)                 // 800 + 500 + 450
	assert.Equal(t, 7.95, totals.TotalReturnPct)            // 1750/22000
}

func TestAggregate_EmptyPortfolio(t *testing.T) {
	totals := Aggregate(nil, nil, spreads.LedgerResult{}, settings.Values{TotalCapital: 50000})

	assert.Equal(t, 0.0, totals.TotalInvested)
	assert.Equal(t, 0.0, totals.TotalPortfolioValue)
	assert.Equal(t, 50000.0, totals.CashAvailable)
	// Zero invested must not divide: return stays 0.
	assert.Equal(t, 0.0, totals.TotalReturnPct)
}

func TestAggregate_OverinvestedGoesNegative(t *testing.T) {
	bucket1 := []positions.ComputedPosition{computedPosition(80000, 82000)}
	bucket2 := spreads.LedgerResult{MarginInUse: 30000}

	totals := Aggregate(bucket1, nil, bucket2, settings.Values{TotalCapital: 100000})

	assert.Equal(t, 110000.0, totals.TotalInvested)
	assert.Equal(t, -10000.0, totals.CashAvailable)
}

func TestAggregate_Deterministic(t *testing.T) {
	bucket1 := []positions.ComputedPosition{computedPosition(1234.56, 2345.67)}
	bucket2 := spreads.LedgerResult{MarginInUse: 987.65, UnrealizedPL: 12.34, TotalPL: 12.34}
	cfg := settings.Values{TotalCapital: 100000}

	first := Aggregate(bucket1, nil, bucket2, cfg)
	second := Aggregate(bucket1, nil, bucket2, cfg)

	assert.Equal(t, first, second)
}
