package calc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVO2MaxFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"2400m", 2400, 42.37},
		{"3000m", 3000, 55.78},
		{"clamp point", 504.9, 0},
		{"below clamp point", 400, 0},
		{"500m", 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, VO2MaxFromDistance(tt.distance), 0.001)
		})
	}
}

func TestVO2MaxFromDistance_NeverNegative(t *testing.T) {
	for d := MinCooperDistance; d <= MaxCooperDistance; d += 7.3 {
		assert.GreaterOrEqual(t, VO2MaxFromDistance(d), 0.0, "distance %v", d)
	}
}

func TestVO2MaxFromKilometers(t *testing.T) {
	assert.InDelta(t, 42.35, VO2MaxFromKilometers(2.4), 0.001)
	assert.InDelta(t, 0.0, VO2MaxFromKilometers(0.3), 0.001)
	// close to the meter formula over the useful range
	for _, m := range []float64{1500, 2400, 3200} {
		assert.InDelta(t, VO2MaxFromDistance(m), VO2MaxFromKilometers(m/1000), 0.5)
	}
}

func TestValidateDistance(t *testing.T) {
	ok, msg := ValidateDistance(499.99)
	assert.False(t, ok)
	assert.Contains(t, msg, "too low")

	ok, msg = ValidateDistance(5000.01)
	assert.False(t, ok)
	assert.Contains(t, msg, "too high")

	for _, d := range []float64{500, 2400, 5000} {
		ok, msg = ValidateDistance(d)
		assert.True(t, ok)
		assert.Empty(t, msg)
	}
}

func TestEvaluateCooper_Invalid(t *testing.T) {
	res := EvaluateCooper(400, 25, Male)
	assert.False(t, res.IsValid)
	assert.Equal(t, ClassInvalid, res.Classification)
	assert.Zero(t, res.VO2Max)
	assert.Contains(t, res.ValidationMessage, "too low")
	assert.InDelta(t, 0.4, res.DistanceKilometers, 0.0001)

	res = EvaluateCooper(6000, 25, Female)
	assert.False(t, res.IsValid)
	assert.Contains(t, res.ValidationMessage, "too high")
}

func TestEvaluateCooper_Valid(t *testing.T) {
	res := EvaluateCooper(2400, 35, Male)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.ValidationMessage)
	assert.InDelta(t, 42.37, res.VO2Max, 0.001)
	assert.InDelta(t, 2.4, res.DistanceKilometers, 0.0001)
	assert.Equal(t, ClassGood, res.Classification)

	res = EvaluateCooper(2400, 35, Female)
	assert.Equal(t, ClassGood, res.Classification)

	res = EvaluateCooper(3200, 62, Female)
	assert.Equal(t, ClassExcellent, res.Classification)
}

func TestClassify_Thresholds(t *testing.T) {
	assert.Equal(t, ClassExcellent, Classify(52, 25, Male))
	assert.Equal(t, ClassGood, Classify(51.99, 25, Male))
	assert.Equal(t, ClassFair, Classify(34, 25, Male))
	assert.Equal(t, ClassPoor, Classify(25, 25, Male))
	assert.Equal(t, ClassVeryPoor, Classify(24.99, 25, Male))
}

func TestClassify_AgeBands(t *testing.T) {
	// 49 is Excelente from 30 on but only Bom in the 20-29 band.
	assert.Equal(t, ClassGood, Classify(49, 29, Male))
	assert.Equal(t, ClassExcellent, Classify(49, 30, Male))

	assert.Equal(t, ClassGood, Classify(42, 39, Female))
	assert.Equal(t, ClassExcellent, Classify(42, 40, Female))

	assert.Equal(t, ClassExcellent, Classify(39, 75, Male))
	// under 20 uses the 20-29 band
	assert.Equal(t, ClassExcellent, Classify(52, 15, Male))
	assert.Equal(t, ClassGood, Classify(51, 15, Male))
}

func TestClassify_UnknownGenderFallsBackToMale20to29(t *testing.T) {
	// 45 at age 65 would be Excelente for either gender; the fallback band
	// only gives Bom.
	for _, g := range []Gender{"", "other", "MALE"} {
		assert.Equal(t, ClassGood, Classify(45, 65, g), "gender %q", g)
		assert.Equal(t, Classify(45, 25, Male), Classify(45, 65, g))
		assert.Equal(t, ClassExcellent, Classify(52, 70, g))
	}
}

func TestClassify_Monotonic(t *testing.T) {
	for _, g := range []Gender{Male, Female, "x"} {
		for _, age := range []int{18, 25, 35, 45, 55, 70} {
			prev := 0
			for v := 0.0; v <= 80; v += 0.25 {
				rank := ClassRank(Classify(v, age, g))
				require.GreaterOrEqual(t, rank, prev, "gender %s age %d vo2 %v", g, age, v)
				prev = rank
			}
		}
	}
}

func TestParseGender(t *testing.T) {
	for in, want := range map[string]Gender{
		"male": Male, "M": Male, " Masculino ": Male,
		"female": Female, "f": Female, "FEMININO": Female,
	} {
		g, err := ParseGender(in)
		require.NoError(t, err)
		assert.Equal(t, want, g)
	}

	_, err := ParseGender("x")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBandLabel(t *testing.T) {
	assert.Equal(t, "20-29", BandLabel(18))
	assert.Equal(t, "30-39", BandLabel(30))
	assert.Equal(t, "50-59", BandLabel(59))
	assert.Equal(t, "60+", BandLabel(60))
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	age, err := AgeAt(time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), now)
	require.NoError(t, err)
	assert.Equal(t, 34, age)

	age, err = AgeAt(time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC), now)
	require.NoError(t, err)
	assert.Equal(t, 33, age)

	age, err = AgeAt(time.Date(1990, 12, 1, 0, 0, 0, 0, time.UTC), now)
	require.NoError(t, err)
	assert.Equal(t, 33, age)

	_, err = AgeAt(time.Time{}, now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = AgeAt(now.AddDate(1, 0, 0), now)
	assert.ErrorIs(t, err, ErrValidation)
}
