package spreads

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger() *Ledger {
	return NewLedger(zerolog.Nop())
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.ParseInLocation(DateFormat, s, time.UTC)
	require.NoError(t, err)
	return &d
}

func TestProcess_OpenAndClosedPartition(t *testing.T) {
	l := newTestLedger()
	asOf := time.Date(2026, 8, 1, 14, 30, 0, 0, time.UTC)

	result := l.Process([]Spread{
		{
			ID:                   "s1",
			Status:               StatusOpen,
			Ticker:               "SPY",
			ExpirationDate:       datePtr(t, "2026-08-15"),
			MarginUsed:           5000,
			PremiumReceived:      300,
			EstimatedCostToClose: 100,
		},
		{
			ID:              "s2",
			Status:          StatusClosed,
			Ticker:          "QQQ",
			MarginUsed:      4000,
			PremiumReceived: 250,
			CostToClose:     90,
		},
	}, asOf)

	require.Len(t, result.Open, 1)
	require.Len(t, result.Closed, 1)

	assert.Equal(t, 200.0, result.Open[0].PL)
	assert.Equal(t, 160.0, result.Closed[0].PL)

	// Margin is tied up only while a spread is open.
	assert.Equal(t, 5000.0, result.MarginInUse)
	assert.Equal(t, 160.0, result.RealizedIncome)
	assert.Equal(t, 200.0, result.UnrealizedPL)
	assert.Equal(t, 360.0, result.TotalPL)
	assert.Equal(t, 0, result.UnknownStatusCount)
}

func TestProcess_StatusSelectsCostField(t *testing.T) {
	l := newTestLedger()
	asOf := time.Now().UTC()

	// Both cost fields populated: status decides which one counts.
	spread := Spread{
		PremiumReceived:      500,
		CostToClose:          100,
		EstimatedCostToClose: 400,
	}

	spread.Status = StatusClosed
	closed := l.Process([]Spread{spread}, asOf)
	assert.Equal(t, 400.0, closed.Closed[0].PL)

	spread.Status = StatusOpen
	open := l.Process([]Spread{spread}, asOf)
	assert.Equal(t, 100.0, open.Open[0].PL)
}

func TestProcess_DaysToExpiration(t *testing.T) {
	l := newTestLedger()
	// Late in the day: DTE must come from calendar-day difference, not
	// elapsed hours.
	asOf := time.Date(2026, 8, 1, 23, 59, 0, 0, time.UTC)

	result := l.Process([]Spread{
		{ID: "future", Status: StatusOpen, ExpirationDate: datePtr(t, "2026-08-22")},
		{ID: "today", Status: StatusOpen, ExpirationDate: datePtr(t, "2026-08-01")},
		{ID: "past", Status: StatusOpen, ExpirationDate: datePtr(t, "2026-07-25")},
		{ID: "none", Status: StatusOpen},
	}, asOf)

	require.Len(t, result.Open, 4)

	byID := map[string]ComputedSpread{}
	for _, s := range result.Open {
		byID[s.ID] = s
	}

	require.NotNil(t, byID["future"].DaysToExpiration)
	assert.Equal(t, 21, *byID["future"].DaysToExpiration)

	require.NotNil(t, byID["today"].DaysToExpiration)
	assert.Equal(t, 0, *byID["today"].DaysToExpiration)

	require.NotNil(t, byID["past"].DaysToExpiration)
	assert.Equal(t, -7, *byID["past"].DaysToExpiration)

	assert.Nil(t, byID["none"].DaysToExpiration)
}

func TestProcess_UnknownStatusTreatedAsOpen(t *testing.T) {
	l := newTestLedger()

	result := l.Process([]Spread{
		{
			ID:                   "s1",
			Status:               "Rolled",
			MarginUsed:           2000,
			PremiumReceived:      150,
			EstimatedCostToClose: 50,
		},
	}, time.Now().UTC())

	require.Len(t, result.Open, 1)
	assert.Empty(t, result.Closed)
	assert.Equal(t, 1, result.UnknownStatusCount)
	assert.Equal(t, 100.0, result.Open[0].PL)
	assert.Equal(t, 2000.0, result.MarginInUse)
	assert.Equal(t, 100.0, result.UnrealizedPL)
}

func TestProcess_EmptyInput(t *testing.T) {
	l := newTestLedger()

	result := l.Process(nil, time.Now().UTC())

	assert.Empty(t, result.Open)
	assert.Empty(t, result.Closed)
	assert.Equal(t, 0.0, result.MarginInUse)
	assert.Equal(t, 0.0, result.TotalPL)
}

func TestSpreadInput_ToSpread(t *testing.T) {
	in := SpreadInput{
		Strategy:             "Put Credit Spread",
		Ticker:               "SPY",
		ExpirationDate:       "2026-09-18",
		MarginUsed:           "5,000",
		PremiumReceived:      "$320",
		EstimatedCostToClose: nil,
	}

	s := in.ToSpread("id-1")
	assert.Equal(t, StatusOpen, s.Status) // empty status defaults to open
	require.NotNil(t, s.ExpirationDate)
	assert.Equal(t, "2026-09-18", s.ExpirationDate.Format(DateFormat))
	assert.Equal(t, 5000.0, s.MarginUsed)
	assert.Equal(t, 320.0, s.PremiumReceived)
	assert.Equal(t, 0.0, s.EstimatedCostToClose)
}

func TestSpreadInput_ToSpreadMalformedDate(t *testing.T) {
	assert.Nil(t, SpreadInput{ExpirationDate: ""}.ToSpread("a").ExpirationDate)
	assert.Nil(t, SpreadInput{ExpirationDate: "09/18/2026"}.ToSpread("b").ExpirationDate)
	assert.Nil(t, SpreadInput{ExpirationDate: "soon"}.ToSpread("c").ExpirationDate)
}
