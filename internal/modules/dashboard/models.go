// Package dashboard runs the full valuation pipeline and rolls bucket
// results up into portfolio totals and threshold warnings.
package dashboard

import (
	"time"

	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
)

// Totals is the portfolio-level roll-up of all three buckets.
type Totals struct {
	TotalB1Value        float64 `json:"total_b1_value"`
	TotalB3Value        float64 `json:"total_b3_value"`
	TotalInvested       float64 `json:"total_invested"`
	TotalPortfolioValue float64 `json:"total_portfolio_value"`
	CashAvailable       float64 `json:"cash_available"`
	TotalPL             float64 `json:"total_pl"`
	TotalReturnPct      float64 `json:"total_return_pct"`
}

// StopLossWarning flags a bucket-3 position whose P/L% breached the
// configured stop-loss threshold.
type StopLossWarning struct {
	ID     string  `json:"id"`
	Ticker string  `json:"ticker"`
	PLPct  float64 `json:"p_l_pct"`
}

// ExpirationWarning flags an open spread at or past the configured
// days-to-expiration threshold. Negative DTE means already expired.
type ExpirationWarning struct {
	ID               string `json:"id"`
	Ticker           string `json:"ticker"`
	Strategy         string `json:"strategy"`
	DaysToExpiration int    `json:"days_to_expiration"`
}

// Warnings is the threshold evaluation result. Rendering warning text is
// the presentation layer's job; the engine only reports the flagged sets.
type Warnings struct {
	StopLoss      []StopLossWarning   `json:"stop_loss"`
	StopLossCount int                 `json:"stop_loss_count"`
	Expiring      []ExpirationWarning `json:"expiring"`
	ExpiringCount int                 `json:"expiring_count"`

	// InconsistentStatusCount surfaces spread rows whose status was neither
	// Open nor Closed (counted, not dropped).
	InconsistentStatusCount int `json:"inconsistent_status_count"`
}

// View is the complete output of one evaluation cycle, handed as-is to the
// presentation layer.
type View struct {
	AsOf     time.Time                    `json:"as_of"`
	Bucket1  []positions.ComputedPosition `json:"bucket1"`
	Bucket2  spreads.LedgerResult         `json:"bucket2"`
	Bucket3  []positions.ComputedPosition `json:"bucket3"`
	Totals   Totals                       `json:"totals"`
	Warnings Warnings                     `json:"warnings"`
	Settings settings.Values              `json:"settings"`
}
