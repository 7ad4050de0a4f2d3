package dashboard

import (
	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
)

// EvaluateWarnings applies the settings-driven threshold rules to the
// computed tables.
//
//   - Stop-loss: bucket-3 positions with p_l_pct below the (negative)
//     threshold.
//   - Expiration: open spreads with days-to-expiration below the threshold,
//     including already-expired (negative DTE). Spreads without an
//     expiration date cannot be evaluated and are never flagged.
func EvaluateWarnings(
	bucket3 []positions.ComputedPosition,
	bucket2 spreads.LedgerResult,
	cfg settings.Values,
) Warnings {
	warnings := Warnings{
		StopLoss:                []StopLossWarning{},
		Expiring:                []ExpirationWarning{},
		InconsistentStatusCount: bucket2.UnknownStatusCount,
	}

	for _, pos := range bucket3 {
		if pos.PLPct < cfg.StopLossThresholdPct {
			warnings.StopLoss = append(warnings.StopLoss, StopLossWarning{
				ID:     pos.ID,
				Ticker: pos.Ticker,
				PLPct:  pos.PLPct,
			})
		}
	}
	warnings.StopLossCount = len(warnings.StopLoss)

	for _, s := range bucket2.Open {
		if s.DaysToExpiration == nil {
			continue
		}
		if *s.DaysToExpiration < cfg.DTEWarningDays {
			warnings.Expiring = append(warnings.Expiring, ExpirationWarning{
				ID:               s.ID,
				Ticker:           s.Ticker,
				Strategy:         s.Strategy,
				DaysToExpiration: *s.DaysToExpiration,
			})
		}
	}
	warnings.ExpiringCount = len(warnings.Expiring)

	return warnings
}
