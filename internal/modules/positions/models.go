// Package positions provides position storage and valuation for the priced
// buckets (bucket 1: core holdings, bucket 3: speculative trades).
package positions

import "github.com/aristath/bucketboard/internal/utils"

// Buckets holding Position records. Bucket 2 (option spreads) lives in the
// spreads package with its own record shape and valuation rules.
const (
	BucketCore        = 1
	BucketSpeculative = 3
)

// Instrument types that carry a live market quote. Anything else (option
// legs, LEAPs, placeholders) is valued by manual override or cost proxy.
const (
	TypeStock    = "Stock"
	TypeETF      = "ETF"
	TypeStockETF = "Stock/ETF"
)

// Position is a single bucket 1 or bucket 3 holding as stored in
// portfolio.db. Derived valuation fields are intentionally absent; they live
// on ComputedPosition and are recomputed every evaluation cycle.
type Position struct {
	ID                string  `json:"id"`
	Bucket            int     `json:"bucket"`
	Ticker            string  `json:"ticker"`
	InstrumentType    string  `json:"instrument_type"`
	Quantity          float64 `json:"quantity"`
	TotalCost         float64 `json:"total_cost"`
	ManualMarketValue float64 `json:"manual_market_value"` // 0 = unset
	Notes             string  `json:"notes"`
}

// IsPriced reports whether the instrument type trades with a live quote.
func (p Position) IsPriced() bool {
	switch p.InstrumentType {
	case TypeStock, TypeETF, TypeStockETF:
		return true
	}
	return false
}

// ComputedPosition is a Position enriched with the derived valuation fields
// for one evaluation cycle. Never persisted.
type ComputedPosition struct {
	Position
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	PL           float64 `json:"p_l"`
	PLPct        float64 `json:"p_l_pct"`
}

// PositionInput is the ingestion-boundary shape for create/update requests.
// Numeric fields are declared as interface{} so malformed spreadsheet-style
// input ("1,000", "", null) coerces to 0 instead of failing the request.
type PositionInput struct {
	Ticker            string      `json:"ticker"`
	InstrumentType    string      `json:"instrument_type"`
	Quantity          interface{} `json:"quantity"`
	TotalCost         interface{} `json:"total_cost"`
	ManualMarketValue interface{} `json:"manual_market_value"`
	Notes             string      `json:"notes"`
}

// ToPosition converts the raw input into a clean Position, coercing every
// numeric field. The arithmetic core can then assume valid numbers.
func (in PositionInput) ToPosition(id string, bucket int) Position {
	return Position{
		ID:                id,
		Bucket:            bucket,
		Ticker:            in.Ticker,
		InstrumentType:    in.InstrumentType,
		Quantity:          utils.CoerceFloat(in.Quantity),
		TotalCost:         utils.CoerceFloat(in.TotalCost),
		ManualMarketValue: utils.CoerceFloat(in.ManualMarketValue),
		Notes:             in.Notes,
	}
}
