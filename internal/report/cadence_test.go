package report

import (
	"testing"
	"time"

	"github.com/ejardin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInstantAdvances(t *testing.T) {
	from := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	for _, cadence := range []models.Cadence{
		models.CadenceDaily,
		models.CadenceWeekly,
		models.CadenceMonthly,
	} {
		next, err := NextInstant(from, cadence)
		require.NoError(t, err, "cadence %s", cadence)
		assert.True(t, next.After(from), "cadence %s must advance past from", cadence)
	}
}

func TestNextInstantUnits(t *testing.T) {
	from := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	daily, err := NextInstant(from, models.CadenceDaily)
	require.NoError(t, err)
	assert.Equal(t, from.AddDate(0, 0, 1), daily)

	weekly, err := NextInstant(from, models.CadenceWeekly)
	require.NoError(t, err)
	assert.Equal(t, from.AddDate(0, 0, 7), weekly)

	// Two daily steps land exactly one day past a single step.
	twice, err := NextInstant(daily, models.CadenceDaily)
	require.NoError(t, err)
	assert.Equal(t, daily.AddDate(0, 0, 1), twice)

	monthly, err := NextInstant(from, models.CadenceMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 15, 9, 30, 0, 0, time.UTC), monthly)
}

func TestNextInstantMonthlyNormalizes(t *testing.T) {
	from := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	next, err := NextInstant(from, models.CadenceMonthly)
	require.NoError(t, err)
	// 2024 is a leap year; Jan 31 + 1 month normalizes to Mar 2.
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), next)
}

func TestNextInstantInvalidCadence(t *testing.T) {
	_, err := NextInstant(time.Now(), models.Cadence("HOURLY"))
	assert.ErrorIs(t, err, ErrInvalidCadence)
}

func TestLookbackWindow(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	window, err := LookbackWindow(now, models.CadenceWeekly)
	require.NoError(t, err)
	assert.Equal(t, now, window.End)
	assert.Equal(t, now.AddDate(0, 0, -7), window.Start)

	// The lookback is the inverse of the next-instant step.
	next, err := NextInstant(window.Start, models.CadenceWeekly)
	require.NoError(t, err)
	assert.Equal(t, now, next)

	_, err = LookbackWindow(now, models.Cadence(""))
	assert.ErrorIs(t, err, ErrInvalidCadence)
}
