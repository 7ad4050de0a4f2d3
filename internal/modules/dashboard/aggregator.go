package dashboard

import (
	"math"

	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
)

// Aggregate rolls bucket-level valuations up into portfolio totals.
//
// Pure arithmetic over already-computed inputs: no external calls, and
// deterministic given identical inputs. Open-spread margin counts as
// invested capital, and open-spread unrealized P/L contributes to total
// portfolio value.
func Aggregate(
	bucket1, bucket3 []positions.ComputedPosition,
	bucket2 spreads.LedgerResult,
	cfg settings.Values,
) Totals {
	var totals Totals

	var b1Cost, b3Cost, b1PL, b3PL float64
	for _, pos := range bucket1 {
		totals.TotalB1Value += pos.MarketValue
		b1Cost += pos.TotalCost
		b1PL += pos.PL
	}
	for _, pos := range bucket3 {
		totals.TotalB3Value += pos.MarketValue
		b3Cost += pos.TotalCost
		b3PL += pos.PL
	}

	totals.TotalInvested = b1Cost + b3Cost + bucket2.MarginInUse
	totals.TotalPortfolioValue = totals.TotalB1Value + totals.TotalB3Value +
		bucket2.MarginInUse + bucket2.UnrealizedPL
	totals.CashAvailable = cfg.TotalCapital - totals.TotalInvested
	totals.TotalPL = b1PL + b3PL + bucket2.TotalPL

	if totals.TotalInvested != 0 {
		totals.TotalReturnPct = round(totals.TotalPL/totals.TotalInvested*100, 2)
	}

	return totals
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
