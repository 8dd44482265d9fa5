package calc

import (
	"math"

	"go.uber.org/multierr"
)

const (
	// Constants of the performance VO2max formula. They differ from the
	// Cooper evaluator's 504.9/44.73 pair; both are kept as they are.
	perfDistanceOffset = 504.1
	perfDistanceSlope  = 44.8

	// kcal per liter of O2.
	kcalPerLiterO2 = 5.0
	// kcal per kg of body fat.
	kcalPerKgFat = 7730.0
	// body weight the caloric expenditure is referenced to.
	referenceWeightKg = 70.0
	// resting O2 cost, ml/kg/min per MET.
	mlPerMET = 3.5
)

type PerformanceEvaluationInput struct {
	CooperDistance      float64 `json:"cooper_test_distance" toml:"cooper_test_distance"`
	IntensityPercentage float64 `json:"intensity_percentage" toml:"intensity_percentage"`
	TrainingTime        float64 `json:"training_time" toml:"training_time"`
	BodyWeight          float64 `json:"body_weight" toml:"body_weight"`
}

type PerformanceEvaluationResult struct {
	VO2Max             float64 `json:"vo2_max"`
	TrainingDistance   float64 `json:"training_distance"`
	TrainingIntensity  float64 `json:"training_intensity"`
	TrainingVelocity   float64 `json:"training_velocity"`
	TotalO2Consumption float64 `json:"total_o2_consumption"`
	CaloricExpenditure float64 `json:"caloric_expenditure"`
	WeightLoss         float64 `json:"weight_loss"`
}

// PerformanceVO2Max is the VO2max formula used by the performance and
// interval calculators. Never negative.
func PerformanceVO2Max(cooperDistance float64) float64 {
	return math.Max(0, round2((cooperDistance-perfDistanceOffset)/perfDistanceSlope))
}

// MaxMET converts VO2max (ml/kg/min) to maximal METs.
func MaxMET(vo2Max float64) float64 {
	return vo2Max / mlPerMET
}

func CaloriesFromO2(liters float64) float64 {
	return liters * kcalPerLiterO2
}

// WeightLossGrams converts kcal into grams of fat.
func WeightLossGrams(kcal float64) float64 {
	return kcal * 1000 / kcalPerKgFat
}

// Validate returns every problem found in the input, combined.
func (in PerformanceEvaluationInput) Validate() error {
	var err error
	if ok, msg := ValidateDistance(in.CooperDistance); !ok {
		err = multierr.Append(err, validationErr("cooper distance: %s", msg))
	}
	if !finite(in.IntensityPercentage) || in.IntensityPercentage < 0 || in.IntensityPercentage > 100 {
		err = multierr.Append(err, validationErr("intensity must be between 0 and 100%%, got %v", in.IntensityPercentage))
	}
	if !finite(in.TrainingTime) || in.TrainingTime <= 0 {
		err = multierr.Append(err, validationErr("training time must be positive, got %v", in.TrainingTime))
	}
	if !finite(in.BodyWeight) || in.BodyWeight <= 0 {
		err = multierr.Append(err, validationErr("body weight must be positive, got %v", in.BodyWeight))
	}
	return err
}

// EvaluatePerformance derives a training prescription from a Cooper
// distance and the chosen intensity, duration and body weight. Each step
// consumes the already rounded result of the previous one.
func EvaluatePerformance(in PerformanceEvaluationInput) (PerformanceEvaluationResult, error) {
	if err := in.Validate(); err != nil {
		return PerformanceEvaluationResult{}, err
	}

	var r PerformanceEvaluationResult
	r.VO2Max = PerformanceVO2Max(in.CooperDistance)
	r.TrainingDistance = round0(r.VO2Max * in.IntensityPercentage / 100 * (perfDistanceOffset / perfDistanceSlope))
	r.TrainingIntensity = r.VO2Max * in.IntensityPercentage / 100
	r.TrainingVelocity = r.TrainingDistance / in.TrainingTime
	r.TotalO2Consumption = r.TrainingIntensity * in.TrainingTime
	r.CaloricExpenditure = round0(CaloriesFromO2(r.TotalO2Consumption) * (in.BodyWeight / referenceWeightKg))
	r.WeightLoss = round2(WeightLossGrams(r.CaloricExpenditure))
	return r, nil
}
