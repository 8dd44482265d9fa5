package calc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 0.011

func TestEvaluateIntervals_TwoModes(t *testing.T) {
	res, err := EvaluateIntervals(IntervalSessionInput{
		CooperDistance: 2400,
		BodyWeight:     70,
		Intervals: []IntervalInput{
			{
				Mode:                ModeDistanceIntensity,
				DistanceMeters:      400,
				IntensityPercentage: Float(80),
				Repetitions:         4,
				RestSeconds:         60,
			},
			{
				Mode:           ModeDistanceTime,
				DistanceMeters: 1000,
				TimeMinutes:    Float(6),
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Intervals, 2)

	assert.InDelta(t, 42.32, res.VO2Max, 1e-9)
	assert.InDelta(t, 12.09, res.MaxMET, 1e-9)

	a := res.Intervals[0]
	assert.InDelta(t, 80, a.IntensityPercentage, tolerance)
	assert.InDelta(t, 0.8, a.TrainingFraction, tolerance)
	assert.InDelta(t, 9.67, a.TrainingMET, tolerance)
	assert.InDelta(t, 151.78, a.VelocityMPerMin, tolerance)
	assert.InDelta(t, 9.11, a.VelocityKmPerHour, tolerance)
	assert.InDelta(t, 1600, a.TotalDistanceMeters, 1e-9)
	assert.InDelta(t, 14.54, a.TimeMinutes, tolerance)
	assert.InDelta(t, 2.37, a.O2PerMinuteLiters, tolerance)
	assert.InDelta(t, 34.46, a.TotalO2Liters, tolerance)
	assert.InDelta(t, 172.31, a.Kcal, tolerance)
	assert.InDelta(t, 22.29, a.WeightLossGrams, tolerance)

	b := res.Intervals[1]
	assert.InDelta(t, 85.87, b.IntensityPercentage, tolerance)
	assert.InDelta(t, 10.52, b.TrainingMET, tolerance)
	assert.InDelta(t, 166.67, b.VelocityMPerMin, tolerance)
	assert.InDelta(t, 10, b.VelocityKmPerHour, tolerance)
	assert.InDelta(t, 1000, b.TotalDistanceMeters, 1e-9)
	assert.InDelta(t, 6, b.TimeMinutes, tolerance)
	assert.InDelta(t, 15.26, b.TotalO2Liters, tolerance)
	assert.InDelta(t, 76.31, b.Kcal, tolerance)
	assert.InDelta(t, 9.87, b.WeightLossGrams, tolerance)

	s := res.Summary
	assert.InDelta(t, 2600, s.TotalDistanceMeters, 1e-9)
	assert.InDelta(t, a.TimeMinutes+b.TimeMinutes, s.TotalTimeMinutes, 0.001)
	assert.InDelta(t, a.TotalO2Liters+b.TotalO2Liters, s.TotalO2Liters, 0.001)
	assert.InDelta(t, a.Kcal+b.Kcal, s.TotalKcal, 0.001)
	assert.InDelta(t, a.WeightLossGrams+b.WeightLossGrams, s.TotalWeightLossGrams, 0.001)
	assert.InDelta(t, 248.62, s.TotalKcal, tolerance)
}

func TestSummarize_EqualsSumOfIntervals(t *testing.T) {
	results := []IntervalResult{
		{TotalDistanceMeters: 400, TimeMinutes: 1.11, TotalO2Liters: 2.22, Kcal: 11.11, WeightLossGrams: 1.44},
		{TotalDistanceMeters: 800, TimeMinutes: 3.33, TotalO2Liters: 4.44, Kcal: 22.22, WeightLossGrams: 2.87},
		{TotalDistanceMeters: 200, TimeMinutes: 0.56, TotalO2Liters: 1.01, Kcal: 5.05, WeightLossGrams: 0.65},
	}
	s := Summarize(results)
	assert.Equal(t, 1400.0, s.TotalDistanceMeters)
	assert.InDelta(t, 5.0, s.TotalTimeMinutes, 1e-9)
	assert.InDelta(t, 7.67, s.TotalO2Liters, 1e-9)
	assert.InDelta(t, 38.38, s.TotalKcal, 1e-9)
	assert.InDelta(t, 4.96, s.TotalWeightLossGrams, 1e-9)

	assert.Equal(t, IntervalTrainingSummary{}, Summarize(nil))
}

func TestEvaluateIntervals_DistanceTimeVelocityRoundTrip(t *testing.T) {
	for _, tc := range []struct{ distance, minutes float64 }{
		{400, 1.5}, {1000, 6}, {200, 0.75}, {3000, 17.3},
	} {
		res, err := EvaluateIntervals(IntervalSessionInput{
			CooperDistance: 2800,
			BodyWeight:     64,
			Intervals: []IntervalInput{
				{Mode: ModeDistanceTime, DistanceMeters: tc.distance, TimeMinutes: Float(tc.minutes)},
			},
		})
		require.NoError(t, err)
		r := res.Intervals[0]
		assert.InDelta(t, tc.distance, r.VelocityMPerMin*tc.minutes, 0.005*tc.minutes+1e-9)
		assert.InDelta(t, r.VelocityMPerMin*60/1000, r.VelocityKmPerHour, tolerance)
	}
}

func TestEvaluateIntervals_ApproximateInverse(t *testing.T) {
	// Feed the time produced by distance_intensity back into distance_time:
	// the recovered intensity never exceeds the original and matches at 100%.
	for _, pct := range []float64{30, 50, 75, 90, 100} {
		fwd, err := EvaluateIntervals(IntervalSessionInput{
			CooperDistance: 2400,
			BodyWeight:     70,
			Intervals: []IntervalInput{
				{Mode: ModeDistanceIntensity, DistanceMeters: 1000, IntensityPercentage: Float(pct)},
			},
		})
		require.NoError(t, err)

		back, err := EvaluateIntervals(IntervalSessionInput{
			CooperDistance: 2400,
			BodyWeight:     70,
			Intervals: []IntervalInput{
				{Mode: ModeDistanceTime, DistanceMeters: 1000, TimeMinutes: Float(fwd.Intervals[0].TimeMinutes)},
			},
		})
		require.NoError(t, err)

		got := back.Intervals[0].IntensityPercentage
		assert.LessOrEqual(t, got, pct+0.2, "pct %v", pct)
		assert.InDelta(t, fwd.Intervals[0].TrainingMET, back.Intervals[0].TrainingMET, 0.02)
		if pct == 100 {
			assert.InDelta(t, 100, got, 0.2)
		} else {
			assert.Less(t, got, pct)
		}
	}
}

func TestEvaluateIntervals_ZeroTimeGivesZeroVelocity(t *testing.T) {
	res, err := EvaluateIntervals(IntervalSessionInput{
		CooperDistance: 2400,
		BodyWeight:     70,
		Intervals: []IntervalInput{
			{Mode: ModeDistanceTime, DistanceMeters: 1000, TimeMinutes: Float(0), RestSeconds: 90},
		},
	})
	require.NoError(t, err)
	r := res.Intervals[0]
	assert.Zero(t, r.VelocityMPerMin)
	assert.Zero(t, r.IntensityPercentage)
	assert.InDelta(t, 1.5, r.TimeMinutes, 1e-9)
	assert.Zero(t, r.Kcal)
}

func TestEvaluateIntervals_RepetitionsAndRest(t *testing.T) {
	one, err := EvaluateIntervals(IntervalSessionInput{
		CooperDistance: 2400,
		BodyWeight:     70,
		Intervals: []IntervalInput{
			{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(2)},
		},
	})
	require.NoError(t, err)

	many, err := EvaluateIntervals(IntervalSessionInput{
		CooperDistance: 2400,
		BodyWeight:     70,
		Intervals: []IntervalInput{
			{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(2), Repetitions: 5, RestSeconds: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, one.Intervals[0].VelocityMPerMin, many.Intervals[0].VelocityMPerMin)
	assert.InDelta(t, 2000, many.Intervals[0].TotalDistanceMeters, 1e-9)
	assert.InDelta(t, 2*5+30*5/60.0, many.Intervals[0].TimeMinutes, 1e-9)
	assert.InDelta(t, 400, one.Intervals[0].TotalDistanceMeters, 1e-9)
}

func TestEvaluateIntervals_FailFast(t *testing.T) {
	tests := []struct {
		name     string
		interval IntervalInput
		contains string
	}{
		{"missing intensity", IntervalInput{Mode: ModeDistanceIntensity, DistanceMeters: 400}, "intensity_percentage is required"},
		{"missing time", IntervalInput{Mode: ModeDistanceTime, DistanceMeters: 400}, "time_minutes is required"},
		{"zero distance", IntervalInput{Mode: ModeDistanceTime, DistanceMeters: 0, TimeMinutes: Float(2)}, "distance must be positive"},
		{"negative distance", IntervalInput{Mode: ModeDistanceIntensity, DistanceMeters: -1, IntensityPercentage: Float(50)}, "distance must be positive"},
		{"unknown mode", IntervalInput{Mode: "pace", DistanceMeters: 400}, "unknown interval mode"},
		{"intensity above 100", IntervalInput{Mode: ModeDistanceIntensity, DistanceMeters: 400, IntensityPercentage: Float(120)}, "intensity"},
		{"intensity below rest", IntervalInput{Mode: ModeDistanceIntensity, DistanceMeters: 400, IntensityPercentage: Float(5)}, "below resting"},
		{"negative time", IntervalInput{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(-1)}, "time must not be negative"},
		{"negative rest", IntervalInput{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(1), RestSeconds: -3}, "rest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := EvaluateIntervals(IntervalSessionInput{
				CooperDistance: 2400,
				BodyWeight:     70,
				Intervals: []IntervalInput{
					{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(2)},
					tt.interval,
					{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(2)},
				},
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.contains)

			var ie *IntervalError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, 1, ie.Index)
			assert.Contains(t, err.Error(), "interval 2")
			assert.Empty(t, res.Intervals)
		})
	}
}

func TestEvaluateIntervals_SessionValidation(t *testing.T) {
	ok := []IntervalInput{{Mode: ModeDistanceTime, DistanceMeters: 400, TimeMinutes: Float(2)}}

	_, err := EvaluateIntervals(IntervalSessionInput{CooperDistance: 2400, BodyWeight: 70})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = EvaluateIntervals(IntervalSessionInput{CooperDistance: 100, BodyWeight: 70, Intervals: ok})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = EvaluateIntervals(IntervalSessionInput{CooperDistance: 2400, BodyWeight: 0, Intervals: ok})
	assert.ErrorIs(t, err, ErrValidation)

	// valid distance but VO2max under one MET
	_, err = EvaluateIntervals(IntervalSessionInput{CooperDistance: 600, BodyWeight: 70, Intervals: ok})
	assert.ErrorIs(t, err, ErrValidation)

	var ie *IntervalError
	assert.False(t, errors.As(err, &ie))
}
