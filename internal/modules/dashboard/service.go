package dashboard

import (
	"fmt"
	"time"

	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/aristath/bucketboard/internal/modules/settings"
	"github.com/aristath/bucketboard/internal/modules/spreads"
	"github.com/rs/zerolog"
)

// QuoteResolver is the price source injected into each evaluation cycle.
// Refresh invalidates any cached prices.
type QuoteResolver interface {
	positions.QuoteSource
	Refresh() error
}

// SnapshotStore persists the most recent computed view.
type SnapshotStore interface {
	Store(view interface{}) error
}

// Service runs the full valuation pipeline: valuate buckets 1 and 3,
// process the bucket 2 ledger, aggregate totals, evaluate warnings.
//
// The service holds no state between cycles. Position tables and settings
// are read fresh from their repositories each time, so an edit followed by
// an evaluation always sees the edit, and two cycles over identical inputs
// (with a frozen resolver) produce identical views.
type Service struct {
	positionRepo positions.RepositoryInterface
	spreadRepo   spreads.RepositoryInterface
	settingsSvc  *settings.Service
	valuator     *positions.Valuator
	ledger       *spreads.Ledger
	quotes       QuoteResolver
	snapshots    SnapshotStore
	log          zerolog.Logger
}

// NewService creates a new dashboard service
func NewService(
	positionRepo positions.RepositoryInterface,
	spreadRepo spreads.RepositoryInterface,
	settingsSvc *settings.Service,
	valuator *positions.Valuator,
	ledger *spreads.Ledger,
	quotes QuoteResolver,
	snapshots SnapshotStore,
	log zerolog.Logger,
) *Service {
	return &Service{
		positionRepo: positionRepo,
		spreadRepo:   spreadRepo,
		settingsSvc:  settingsSvc,
		valuator:     valuator,
		ledger:       ledger,
		quotes:       quotes,
		snapshots:    snapshots,
		log:          log.With().Str("service", "dashboard").Logger(),
	}
}

// Evaluate runs one full evaluation cycle as of the given time.
// A missing settings store is the only hard failure; everything else
// degrades per the valuation rules.
func (s *Service) Evaluate(asOf time.Time) (View, error) {
	cfg, err := s.settingsSvc.Load()
	if err != nil {
		return View{}, fmt.Errorf("failed to load settings: %w", err)
	}

	bucket1, err := s.positionRepo.GetByBucket(positions.BucketCore)
	if err != nil {
		return View{}, fmt.Errorf("failed to load bucket 1: %w", err)
	}
	bucket3, err := s.positionRepo.GetByBucket(positions.BucketSpeculative)
	if err != nil {
		return View{}, fmt.Errorf("failed to load bucket 3: %w", err)
	}
	spreadList, err := s.spreadRepo.GetAll()
	if err != nil {
		return View{}, fmt.Errorf("failed to load bucket 2: %w", err)
	}

	computed1 := s.valuator.ValuateAll(bucket1, s.quotes)
	computed3 := s.valuator.ValuateAll(bucket3, s.quotes)
	ledgerResult := s.ledger.Process(spreadList, asOf)

	totals := Aggregate(computed1, computed3, ledgerResult, cfg)
	warnings := EvaluateWarnings(computed3, ledgerResult, cfg)

	s.log.Debug().
		Int("bucket1", len(computed1)).
		Int("bucket2_open", len(ledgerResult.Open)).
		Int("bucket2_closed", len(ledgerResult.Closed)).
		Int("bucket3", len(computed3)).
		Float64("total_portfolio_value", totals.TotalPortfolioValue).
		Int("warnings", warnings.StopLossCount+warnings.ExpiringCount).
		Msg("Evaluation cycle completed")

	return View{
		AsOf:     asOf,
		Bucket1:  computed1,
		Bucket2:  ledgerResult,
		Bucket3:  computed3,
		Totals:   totals,
		Warnings: warnings,
		Settings: cfg,
	}, nil
}

// Refresh invalidates cached prices and runs a fresh evaluation cycle.
func (s *Service) Refresh(asOf time.Time) (View, error) {
	if err := s.quotes.Refresh(); err != nil {
		// A failed cache clear only means some prices may be minutes old
		s.log.Warn().Err(err).Msg("Failed to clear quote cache")
	}
	return s.Evaluate(asOf)
}

// RefreshAndStore runs a refresh cycle and persists the resulting view.
// Used by the background refresh job.
func (s *Service) RefreshAndStore(asOf time.Time) error {
	view, err := s.Refresh(asOf)
	if err != nil {
		return err
	}

	if s.snapshots == nil {
		return nil
	}
	if err := s.snapshots.Store(view); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}
