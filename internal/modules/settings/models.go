package settings

// Setting keys used by the valuation pipeline.
const (
	KeyTotalCapital         = "total_capital"
	KeyMonthlyIncomeTarget  = "monthly_income_target"
	KeyStopLossThresholdPct = "stop_loss_threshold_pct"
	KeyDTEWarningDays       = "dte_warning_threshold_days"
	KeyRefreshMinutes       = "refresh_interval_minutes"
)

// Defaults holds the fallback value for every configurable setting.
// Missing keys in the settings store resolve to these values, so a fresh
// database behaves identically to an explicitly configured one.
var Defaults = map[string]float64{
	KeyTotalCapital:         100000.0, // Total capital across all buckets
	KeyMonthlyIncomeTarget:  1500.0,   // Target monthly premium income (bucket 2)
	KeyStopLossThresholdPct: -20.0,    // Flag bucket-3 positions below this P/L% (negative)
	KeyDTEWarningDays:       21.0,     // Flag open spreads expiring within this many days
	KeyRefreshMinutes:       15.0,     // Background dashboard refresh interval
}

// Descriptions holds human-readable descriptions for all settings
var Descriptions = map[string]string{
	KeyTotalCapital:         "Total capital available across all three buckets, used for cash accounting",
	KeyMonthlyIncomeTarget:  "Target monthly premium income from bucket 2 option spreads",
	KeyStopLossThresholdPct: "Stop-loss threshold as a negative percentage (-20 = flag below -20% P/L)",
	KeyDTEWarningDays:       "Flag open spreads with fewer than this many days to expiration",
	KeyRefreshMinutes:       "Minutes between background dashboard refreshes",
}

// Values is the typed view of the settings store consumed by the
// valuation pipeline. Loaded once per evaluation cycle.
type Values struct {
	TotalCapital         float64 `json:"total_capital"`
	MonthlyIncomeTarget  float64 `json:"monthly_income_target"`
	StopLossThresholdPct float64 `json:"stop_loss_threshold_pct"`
	DTEWarningDays       int     `json:"dte_warning_threshold_days"`
	RefreshMinutes       int     `json:"refresh_interval_minutes"`
}

// DefaultValues returns Values populated entirely from Defaults.
func DefaultValues() Values {
	return Values{
		TotalCapital:         Defaults[KeyTotalCapital],
		MonthlyIncomeTarget:  Defaults[KeyMonthlyIncomeTarget],
		StopLossThresholdPct: Defaults[KeyStopLossThresholdPct],
		DTEWarningDays:       int(Defaults[KeyDTEWarningDays]),
		RefreshMinutes:       int(Defaults[KeyRefreshMinutes]),
	}
}
