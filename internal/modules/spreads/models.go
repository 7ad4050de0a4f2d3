// Package spreads provides storage and ledger accounting for bucket 2, the
// income-generating option spreads.
package spreads

import (
	"time"

	"github.com/aristath/bucketboard/internal/utils"
)

// Spread status values. Exactly one of cost_to_close (Closed) and
// estimated_cost_to_close (Open) is the basis for P/L, selected by status.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// DateFormat is the storage and wire format for expiration dates.
const DateFormat = "2006-01-02"

// Spread is a single option-spread record as stored in portfolio.db.
type Spread struct {
	ID                   string     `json:"id"`
	Status               string     `json:"status"`
	Strategy             string     `json:"strategy"`
	Ticker               string     `json:"ticker"`
	ExpirationDate       *time.Time `json:"expiration_date"` // nil = no expiration recorded
	MarginUsed           float64    `json:"margin_used"`
	PremiumReceived      float64    `json:"premium_received"`
	CostToClose          float64    `json:"cost_to_close"`           // meaningful only when Closed
	EstimatedCostToClose float64    `json:"estimated_cost_to_close"` // meaningful only when Open
	Notes                string     `json:"notes"`
}

// ComputedSpread is a Spread enriched with derived fields for one evaluation
// cycle. DaysToExpiration is nil when no expiration date is recorded, which
// keeps "missing" distinguishable from "expires today".
type ComputedSpread struct {
	Spread
	DaysToExpiration *int    `json:"days_to_expiration"`
	PL               float64 `json:"p_l"`
}

// LedgerResult is the computed bucket 2 state: the open/closed partition and
// the aggregates the portfolio roll-up consumes.
type LedgerResult struct {
	Open   []ComputedSpread `json:"open"`
	Closed []ComputedSpread `json:"closed"`

	MarginInUse    float64 `json:"margin_in_use"`   // sum of margin_used, Open only
	RealizedIncome float64 `json:"realized_income"` // sum of p_l over Closed
	UnrealizedPL   float64 `json:"unrealized_pl"`   // sum of p_l over Open
	TotalPL        float64 `json:"total_pl"`

	// UnknownStatusCount counts rows whose status was neither Open nor
	// Closed. They are folded into the open partition conservatively, but
	// never silently: the monitor surfaces this count as a warning.
	UnknownStatusCount int `json:"unknown_status_count"`
}

// SpreadInput is the ingestion-boundary shape for create/update requests.
// Numeric fields coerce to 0 on malformed input; a malformed or empty
// expiration date becomes nil.
type SpreadInput struct {
	Status               string      `json:"status"`
	Strategy             string      `json:"strategy"`
	Ticker               string      `json:"ticker"`
	ExpirationDate       string      `json:"expiration_date"`
	MarginUsed           interface{} `json:"margin_used"`
	PremiumReceived      interface{} `json:"premium_received"`
	CostToClose          interface{} `json:"cost_to_close"`
	EstimatedCostToClose interface{} `json:"estimated_cost_to_close"`
	Notes                string      `json:"notes"`
}

// ToSpread converts the raw input into a clean Spread record.
func (in SpreadInput) ToSpread(id string) Spread {
	var expiration *time.Time
	if t, err := time.ParseInLocation(DateFormat, in.ExpirationDate, time.UTC); err == nil {
		expiration = &t
	}

	status := in.Status
	if status == "" {
		status = StatusOpen
	}

	return Spread{
		ID:                   id,
		Status:               status,
		Strategy:             in.Strategy,
		Ticker:               in.Ticker,
		ExpirationDate:       expiration,
		MarginUsed:           utils.CoerceFloat(in.MarginUsed),
		PremiumReceived:      utils.CoerceFloat(in.PremiumReceived),
		CostToClose:          utils.CoerceFloat(in.CostToClose),
		EstimatedCostToClose: utils.CoerceFloat(in.EstimatedCostToClose),
		Notes:                in.Notes,
	}
}
