package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeInterval(t *testing.T) {
	assert.Equal(t, "4x 400 m @ 80 % (rest 60 s)", describeInterval(calc.IntervalInput{
		Mode:                calc.ModeDistanceIntensity,
		DistanceMeters:      400,
		IntensityPercentage: calc.Float(80),
		Repetitions:         4,
		RestSeconds:         60,
	}))
	assert.Equal(t, "1.000 m in 6,00 min", describeInterval(calc.IntervalInput{
		Mode:           calc.ModeDistanceTime,
		DistanceMeters: 1000,
		TimeMinutes:    calc.Float(6),
	}))
}

func TestDescribeIntervalError(t *testing.T) {
	_, err := calc.EvaluateIntervals(calc.IntervalSessionInput{
		CooperDistance: 2400,
		BodyWeight:     70,
		Intervals: []calc.IntervalInput{
			{Mode: calc.ModeDistanceTime, DistanceMeters: 1000, TimeMinutes: calc.Float(6)},
			{Mode: calc.ModeDistanceIntensity, DistanceMeters: 400},
		},
	})
	require.Error(t, err)

	described := describeIntervalError(err)
	assert.Contains(t, described.Error(), "Interval #2 is invalid")
	assert.True(t, errors.Is(described, calc.ErrValidation))

	plain := errors.New("boom")
	assert.Equal(t, plain, describeIntervalError(plain))
}

func TestProfileAgeAndGender(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	testDate := time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)

	age, gender, err := profileAgeAndGender(&models.Evaluatee{Name: "Ana", Gender: "feminino", BirthDate: &birth}, testDate)
	require.NoError(t, err)
	assert.Equal(t, 33, age)
	assert.Equal(t, calc.Female, gender)

	_, _, err = profileAgeAndGender(&models.Evaluatee{Name: "Ana", Gender: "female"}, testDate)
	assert.ErrorIs(t, err, calc.ErrValidation)
	assert.ErrorContains(t, err, "no birth date")

	_, _, err = profileAgeAndGender(&models.Evaluatee{Name: "Ana", BirthDate: &birth}, testDate)
	assert.ErrorIs(t, err, calc.ErrValidation)
	assert.ErrorContains(t, err, "no gender")
}

func TestEvaluateeFromFlags(t *testing.T) {
	ev, err := evaluateeFromFlags("  Maria Souza ", "maria@example.com", "F", "15/06/1990", "")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", ev.Name)
	assert.Equal(t, string(calc.Female), ev.Gender)
	require.NotNil(t, ev.BirthDate)
	assert.Equal(t, "1990-06-15", ev.BirthDate.Format("2006-01-02"))

	_, err = evaluateeFromFlags("", "", "", "", "")
	assert.Error(t, err)
	_, err = evaluateeFromFlags("João", "", "other", "", "")
	assert.ErrorIs(t, err, calc.ErrValidation)
	_, err = evaluateeFromFlags("João", "", "", "2999-01-01", "")
	assert.ErrorContains(t, err, "future")
}

func TestComputeWeekStreak(t *testing.T) {
	now := time.Now()
	assessments := []models.Assessment{
		{TestDate: now},
		{TestDate: now.AddDate(0, 0, -7)},
		{TestDate: now.AddDate(0, 0, -21)},
	}
	assert.Equal(t, 2, computeWeekStreak(assessments))
	assert.Equal(t, 0, computeWeekStreak(nil))
}

func TestSigned(t *testing.T) {
	assert.Equal(t, "+3,50", signed(3.5))
	assert.Equal(t, "-1,25", signed(-1.25))
	assert.Equal(t, "0,00", signed(0))
}
