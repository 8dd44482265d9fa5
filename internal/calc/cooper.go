// Package calc holds the performance formulas: Cooper test VO2max and
// classification, single-session training prescriptions and interval
// training aggregation. Every function is pure and safe for concurrent use.
package calc

import "math"

const (
	MinCooperDistance = 500.0
	MaxCooperDistance = 5000.0
)

type CooperTestResult struct {
	DistanceMeters     float64 `json:"distance_meters"`
	DistanceKilometers float64 `json:"distance_kilometers"`
	VO2Max             float64 `json:"vo2_max"`
	Classification     string  `json:"classification"`
	IsValid            bool    `json:"is_valid"`
	ValidationMessage  string  `json:"validation_message,omitempty"`
}

// VO2MaxFromDistance estimates VO2max (ml/kg/min) from the distance covered
// in the 12-minute run.
func VO2MaxFromDistance(distanceMeters float64) float64 {
	return math.Max(0, round2((distanceMeters-504.9)/44.73))
}

// VO2MaxFromKilometers is the kilometer variant of VO2MaxFromDistance.
// Both give ml/kg/min, but the constants differ so the results are close,
// not identical.
func VO2MaxFromKilometers(distanceKm float64) float64 {
	return math.Max(0, round2(22.351*distanceKm-11.288))
}

// ValidateDistance reports whether a Cooper distance is plausible and, if
// not, why.
func ValidateDistance(distanceMeters float64) (bool, string) {
	switch {
	case !finite(distanceMeters):
		return false, "distance is not a number"
	case distanceMeters < MinCooperDistance:
		return false, "distance too low: minimum is 500 m"
	case distanceMeters > MaxCooperDistance:
		return false, "distance too high: maximum is 5000 m"
	}
	return true, ""
}

// EvaluateCooper validates the distance and, when valid, computes VO2max and
// the fitness classification for the given age and gender.
func EvaluateCooper(distanceMeters float64, age int, gender Gender) CooperTestResult {
	res := CooperTestResult{
		DistanceMeters:     distanceMeters,
		DistanceKilometers: distanceMeters / 1000,
	}

	ok, msg := ValidateDistance(distanceMeters)
	if !ok {
		res.Classification = ClassInvalid
		res.ValidationMessage = msg
		return res
	}

	res.IsValid = true
	res.VO2Max = VO2MaxFromDistance(distanceMeters)
	res.Classification = Classify(res.VO2Max, age, gender)
	return res
}
