package spreads

import (
	"time"

	"github.com/rs/zerolog"
)

// Ledger computes days-to-expiration, realized/unrealized P/L, and the
// open/closed partition for bucket 2.
//
// P/L is keyed by status, not by which cost field happens to be populated:
// a Closed spread realizes premium_received - cost_to_close, an Open spread
// carries premium_received - estimated_cost_to_close. Rows with an
// unrecognized status are folded into the open partition conservatively and
// counted so the monitor can flag them.
type Ledger struct {
	log zerolog.Logger
}

// NewLedger creates a new spread ledger
func NewLedger(log zerolog.Logger) *Ledger {
	return &Ledger{
		log: log.With().Str("service", "ledger").Logger(),
	}
}

// Process computes the ledger for one evaluation cycle as of the given date.
func (l *Ledger) Process(list []Spread, asOf time.Time) LedgerResult {
	result := LedgerResult{
		Open:   []ComputedSpread{},
		Closed: []ComputedSpread{},
	}

	asOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)

	for _, s := range list {
		computed := ComputedSpread{Spread: s}

		if s.ExpirationDate != nil {
			exp := *s.ExpirationDate
			expDay := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
			days := int(expDay.Sub(asOfDay).Hours() / 24)
			computed.DaysToExpiration = &days
		}

		switch s.Status {
		case StatusClosed:
			computed.PL = s.PremiumReceived - s.CostToClose
			result.Closed = append(result.Closed, computed)
			result.RealizedIncome += computed.PL

		case StatusOpen:
			computed.PL = s.PremiumReceived - s.EstimatedCostToClose
			result.Open = append(result.Open, computed)
			result.MarginInUse += s.MarginUsed
			result.UnrealizedPL += computed.PL

		default:
			l.log.Warn().
				Str("id", s.ID).
				Str("ticker", s.Ticker).
				Str("status", s.Status).
				Msg("Unrecognized spread status, treating as open")
			result.UnknownStatusCount++
			computed.PL = s.PremiumReceived - s.EstimatedCostToClose
			result.Open = append(result.Open, computed)
			result.MarginInUse += s.MarginUsed
			result.UnrealizedPL += computed.PL
		}
	}

	result.TotalPL = result.RealizedIncome + result.UnrealizedPL

	return result
}
