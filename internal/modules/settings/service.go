package settings

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// Service exposes the typed settings view used by the valuation pipeline.
// A nil or unreachable settings store is the one configuration problem the
// engine surfaces as a hard failure; individual missing keys fall back to
// Defaults silently.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new settings service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "settings").Logger(),
	}
}

// EnsureDefaults seeds any missing setting keys with their default values
// and descriptions. Existing values are never touched.
func (s *Service) EnsureDefaults() error {
	if s.repo == nil {
		return fmt.Errorf("settings store not available")
	}

	for key, def := range Defaults {
		existing, err := s.repo.Get(key)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", key, err)
		}
		if existing != nil {
			continue
		}

		desc := Descriptions[key]
		value := strconv.FormatFloat(def, 'f', -1, 64)
		if err := s.repo.Set(key, value, &desc); err != nil {
			return fmt.Errorf("failed to seed %s: %w", key, err)
		}
		s.log.Debug().Str("key", key).Float64("value", def).Msg("Seeded default setting")
	}

	return nil
}

// Load reads all pipeline settings, applying defaults for missing keys.
func (s *Service) Load() (Values, error) {
	if s.repo == nil {
		return Values{}, fmt.Errorf("settings store not available")
	}

	totalCapital, err := s.repo.GetFloat(KeyTotalCapital, Defaults[KeyTotalCapital])
	if err != nil {
		return Values{}, fmt.Errorf("failed to load settings: %w", err)
	}
	incomeTarget, err := s.repo.GetFloat(KeyMonthlyIncomeTarget, Defaults[KeyMonthlyIncomeTarget])
	if err != nil {
		return Values{}, fmt.Errorf("failed to load settings: %w", err)
	}
	stopLoss, err := s.repo.GetFloat(KeyStopLossThresholdPct, Defaults[KeyStopLossThresholdPct])
	if err != nil {
		return Values{}, fmt.Errorf("failed to load settings: %w", err)
	}
	dteWarning, err := s.repo.GetInt(KeyDTEWarningDays, int(Defaults[KeyDTEWarningDays]))
	if err != nil {
		return Values{}, fmt.Errorf("failed to load settings: %w", err)
	}
	refreshMinutes, err := s.repo.GetInt(KeyRefreshMinutes, int(Defaults[KeyRefreshMinutes]))
	if err != nil {
		return Values{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return Values{
		TotalCapital:         totalCapital,
		MonthlyIncomeTarget:  incomeTarget,
		StopLossThresholdPct: stopLoss,
		DTEWarningDays:       dteWarning,
		RefreshMinutes:       refreshMinutes,
	}, nil
}

// Save persists all pipeline settings. This is the explicit save action;
// nothing else in the engine writes to the settings store.
func (s *Service) Save(v Values) error {
	if err := s.repo.SetFloat(KeyTotalCapital, v.TotalCapital); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyTotalCapital, err)
	}
	if err := s.repo.SetFloat(KeyMonthlyIncomeTarget, v.MonthlyIncomeTarget); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyMonthlyIncomeTarget, err)
	}
	if err := s.repo.SetFloat(KeyStopLossThresholdPct, v.StopLossThresholdPct); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyStopLossThresholdPct, err)
	}
	if err := s.repo.SetInt(KeyDTEWarningDays, v.DTEWarningDays); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyDTEWarningDays, err)
	}
	if err := s.repo.SetInt(KeyRefreshMinutes, v.RefreshMinutes); err != nil {
		return fmt.Errorf("failed to save %s: %w", KeyRefreshMinutes, err)
	}

	s.log.Info().
		Float64("total_capital", v.TotalCapital).
		Float64("stop_loss_threshold_pct", v.StopLossThresholdPct).
		Int("dte_warning_threshold_days", v.DTEWarningDays).
		Msg("Settings saved")

	return nil
}
