package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestEvaluatePerformance_Golden(t *testing.T) {
	res, err := EvaluatePerformance(PerformanceEvaluationInput{
		CooperDistance:      2400,
		IntensityPercentage: 75,
		TrainingTime:        30,
		BodyWeight:          70,
	})
	require.NoError(t, err)

	assert.InDelta(t, 42.32, res.VO2Max, 1e-9)
	assert.InDelta(t, 357, res.TrainingDistance, 1e-9)
	assert.InDelta(t, 31.74, res.TrainingIntensity, 1e-9)
	assert.InDelta(t, 11.9, res.TrainingVelocity, 1e-9)
	assert.InDelta(t, 952.2, res.TotalO2Consumption, 1e-9)
	assert.InDelta(t, 4761, res.CaloricExpenditure, 1e-9)
	assert.InDelta(t, 615.91, res.WeightLoss, 1e-9)
}

func TestEvaluatePerformance_BodyWeightScalesCalories(t *testing.T) {
	in := PerformanceEvaluationInput{
		CooperDistance:      2400,
		IntensityPercentage: 75,
		TrainingTime:        30,
		BodyWeight:          140,
	}
	res, err := EvaluatePerformance(in)
	require.NoError(t, err)
	assert.InDelta(t, 9522, res.CaloricExpenditure, 1e-9)
	assert.InDelta(t, 1231.82, res.WeightLoss, 1e-9)
}

func TestPerformanceVO2Max_DiffersFromCooperFormula(t *testing.T) {
	assert.InDelta(t, 42.32, PerformanceVO2Max(2400), 1e-9)
	assert.InDelta(t, 42.37, VO2MaxFromDistance(2400), 1e-9)
	assert.Zero(t, PerformanceVO2Max(500))
}

func TestEvaluatePerformance_Validation(t *testing.T) {
	valid := PerformanceEvaluationInput{
		CooperDistance:      2400,
		IntensityPercentage: 75,
		TrainingTime:        30,
		BodyWeight:          70,
	}

	tests := []struct {
		name   string
		mutate func(in *PerformanceEvaluationInput)
	}{
		{"zero training time", func(in *PerformanceEvaluationInput) { in.TrainingTime = 0 }},
		{"negative training time", func(in *PerformanceEvaluationInput) { in.TrainingTime = -5 }},
		{"intensity above 100", func(in *PerformanceEvaluationInput) { in.IntensityPercentage = 101 }},
		{"negative intensity", func(in *PerformanceEvaluationInput) { in.IntensityPercentage = -1 }},
		{"negative weight", func(in *PerformanceEvaluationInput) { in.BodyWeight = -70 }},
		{"zero weight", func(in *PerformanceEvaluationInput) { in.BodyWeight = 0 }},
		{"distance too low", func(in *PerformanceEvaluationInput) { in.CooperDistance = 300 }},
		{"distance too high", func(in *PerformanceEvaluationInput) { in.CooperDistance = 9000 }},
		{"NaN time", func(in *PerformanceEvaluationInput) { in.TrainingTime = math.NaN() }},
		{"infinite weight", func(in *PerformanceEvaluationInput) { in.BodyWeight = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			res, err := EvaluatePerformance(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, PerformanceEvaluationResult{}, res)
		})
	}
}

func TestEvaluatePerformance_ReportsAllViolations(t *testing.T) {
	_, err := EvaluatePerformance(PerformanceEvaluationInput{
		CooperDistance:      100,
		IntensityPercentage: 150,
		TrainingTime:        0,
		BodyWeight:          -1,
	})
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.Contains(t, err.Error(), "training time")
	assert.Contains(t, err.Error(), "body weight")
}

func TestEvaluatePerformance_ZeroIntensity(t *testing.T) {
	res, err := EvaluatePerformance(PerformanceEvaluationInput{
		CooperDistance:      2400,
		IntensityPercentage: 0,
		TrainingTime:        20,
		BodyWeight:          70,
	})
	require.NoError(t, err)
	assert.Zero(t, res.TrainingDistance)
	assert.Zero(t, res.CaloricExpenditure)
	assert.Zero(t, res.WeightLoss)
}

func TestWeightLossGrams(t *testing.T) {
	assert.InDelta(t, 1000, WeightLossGrams(7730), 1e-9)
	assert.InDelta(t, 5, CaloriesFromO2(1), 1e-9)
	assert.InDelta(t, 12, MaxMET(42), 1e-9)
}
