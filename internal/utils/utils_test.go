package utils

import (
	"testing"
	"time"

	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "4.761,50", FormatNumber(4761.5, 2))
	assert.Equal(t, "615,91", FormatNumber(615.91, 2))
	assert.Equal(t, "357", FormatNumber(357, 0))
	assert.Equal(t, "42,32 ml/kg/min", FormatUnit(42.32, 2, "ml/kg/min"))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"1990-03-25", "25/03/1990", "25/03/90"} {
		d, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, 1990, d.Year())
		assert.Equal(t, time.March, d.Month())
		assert.Equal(t, 25, d.Day())
	}

	_, err := ParseDate("March 25")
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	// 01:30 UTC is still the previous day in São Paulo.
	ts := time.Date(2024, 5, 10, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "09/05/2024", FormatDate(ts))
}

func TestSessionState(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.False(t, SessionExists())

	state := &models.IntervalDraft{
		SessionID:      "s1",
		EvaluateeID:    "e1",
		EvaluateeName:  "Ana",
		CooperDistance: 2400,
		BodyWeight:     62.5,
		StartTime:      time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
		Intervals: []calc.IntervalInput{
			{Mode: calc.ModeDistanceIntensity, DistanceMeters: 400, IntensityPercentage: calc.Float(80), Repetitions: 4, RestSeconds: 60},
			{Mode: calc.ModeDistanceTime, DistanceMeters: 1000, TimeMinutes: calc.Float(6)},
		},
	}
	require.NoError(t, SaveSessionState(state))
	assert.True(t, SessionExists())

	loaded, err := LoadSessionState()
	require.NoError(t, err)
	assert.Equal(t, "Ana", loaded.EvaluateeName)
	assert.Equal(t, 62.5, loaded.BodyWeight)
	assert.True(t, state.StartTime.Equal(loaded.StartTime))
	require.Len(t, loaded.Intervals, 2)
	require.NotNil(t, loaded.Intervals[0].IntensityPercentage)
	assert.Equal(t, 80.0, *loaded.Intervals[0].IntensityPercentage)
	assert.Nil(t, loaded.Intervals[0].TimeMinutes)
	assert.Equal(t, 6.0, *loaded.Intervals[1].TimeMinutes)

	require.NoError(t, ClearSessionState())
	assert.False(t, SessionExists())
}
