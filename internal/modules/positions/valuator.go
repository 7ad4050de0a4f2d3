package positions

import (
	"math"

	"github.com/rs/zerolog"
)

// QuoteSource resolves a ticker to a current unit price.
// Implementations must return 0 rather than an error when no price is
// available, so valuation degrades instead of aborting.
type QuoteSource interface {
	Resolve(ticker string) float64
}

// Valuator computes market value and P/L for priced-asset positions.
//
// Valuation policy, in priority order:
//  1. manual_market_value > 0 wins (instruments without a tradable quote)
//  2. priced instrument types: quantity x resolved price
//  3. everything else: total cost as a proxy, flagging that no real
//     valuation exists
//
// current_price reflects market data availability, not valuation source: it
// is the resolved price for priced types even when a manual override wins,
// and 0 otherwise.
type Valuator struct {
	log zerolog.Logger
}

// NewValuator creates a new position valuator
func NewValuator(log zerolog.Logger) *Valuator {
	return &Valuator{
		log: log.With().Str("service", "valuator").Logger(),
	}
}

// Valuate computes the derived fields for a single position.
func (v *Valuator) Valuate(pos Position, quotes QuoteSource) ComputedPosition {
	price := 0.0
	if pos.IsPriced() {
		price = quotes.Resolve(pos.Ticker)
	}

	marketValue := pos.TotalCost // cost proxy when nothing better exists
	switch {
	case pos.ManualMarketValue > 0:
		marketValue = pos.ManualMarketValue
	case pos.IsPriced():
		marketValue = pos.Quantity * price
	}

	pl := marketValue - pos.TotalCost
	plPct := 0.0
	if pos.TotalCost != 0 {
		plPct = round(pl/pos.TotalCost*100, 2)
	}

	return ComputedPosition{
		Position:     pos,
		CurrentPrice: price,
		MarketValue:  marketValue,
		PL:           pl,
		PLPct:        plPct,
	}
}

// ValuateAll computes derived fields for a whole bucket, preserving order.
func (v *Valuator) ValuateAll(list []Position, quotes QuoteSource) []ComputedPosition {
	computed := make([]ComputedPosition, 0, len(list))
	for _, pos := range list {
		computed = append(computed, v.Valuate(pos, quotes))
	}
	return computed
}

// round rounds a float64 to n decimal places
func round(val float64, decimals int) float64 {
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(val*multiplier) / multiplier
}
