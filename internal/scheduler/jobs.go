package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// DashboardRefresher evaluates the portfolio with fresh quotes and
// persists the resulting snapshot.
type DashboardRefresher interface {
	RefreshAndStore(asOf time.Time) error
}

// RefreshJob re-prices the portfolio on a fixed cadence so the stored
// snapshot never drifts far from live market prices.
type RefreshJob struct {
	refresher DashboardRefresher
	log       zerolog.Logger
}

// NewRefreshJob creates a dashboard refresh job
func NewRefreshJob(refresher DashboardRefresher, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		refresher: refresher,
		log:       log.With().Str("job", "dashboard_refresh").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "dashboard_refresh"
}

// Run refreshes quotes, re-evaluates the dashboard and stores the snapshot
func (j *RefreshJob) Run() error {
	start := time.Now()

	if err := j.refresher.RefreshAndStore(time.Now().UTC()); err != nil {
		return fmt.Errorf("dashboard refresh: %w", err)
	}

	j.log.Debug().
		Dur("duration", time.Since(start)).
		Msg("Dashboard snapshot refreshed")

	return nil
}
