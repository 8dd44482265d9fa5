package calc

import (
	"fmt"
	"math"
)

type IntervalMode string

const (
	ModeDistanceIntensity IntervalMode = "distance_intensity"
	ModeDistanceTime      IntervalMode = "distance_time"
)

// ACSM running equation: VO2 (ml/kg/min) = 0.2 * speed (m/min) + 3.5.
const runningCostPerMeter = 0.2

// IntervalInput describes one interval. IntensityPercentage is required in
// distance_intensity mode and TimeMinutes in distance_time mode.
type IntervalInput struct {
	Mode                IntervalMode `json:"mode" toml:"mode"`
	DistanceMeters      float64      `json:"distance_meters" toml:"distance_meters"`
	IntensityPercentage *float64     `json:"intensity_percentage,omitempty" toml:"intensity_percentage,omitempty"`
	TimeMinutes         *float64     `json:"time_minutes,omitempty" toml:"time_minutes,omitempty"`
	Repetitions         int          `json:"repetitions,omitempty" toml:"repetitions,omitempty"`
	RestSeconds         float64      `json:"rest_seconds,omitempty" toml:"rest_seconds,omitempty"`
}

type IntervalSessionInput struct {
	CooperDistance float64         `json:"cooper_test_distance" toml:"cooper_test_distance"`
	BodyWeight     float64         `json:"body_weight" toml:"body_weight"`
	Intervals      []IntervalInput `json:"intervals" toml:"interval"`
}

type IntervalResult struct {
	Input IntervalInput `json:"input"`

	// IntensityPercentage is the input value in distance_intensity mode and
	// an approximation in distance_time mode.
	IntensityPercentage float64 `json:"intensity_percentage"`
	TrainingFraction    float64 `json:"training_fraction"`
	TrainingMET         float64 `json:"training_met"`
	VelocityMPerMin     float64 `json:"velocity_m_per_min"`
	VelocityKmPerHour   float64 `json:"velocity_km_per_hour"`
	TotalDistanceMeters float64 `json:"total_distance_meters"`
	TimeMinutes         float64 `json:"time_minutes"`
	O2PerMinuteLiters   float64 `json:"o2_per_minute_liters"`
	TotalO2Liters       float64 `json:"total_o2_liters"`
	Kcal                float64 `json:"kcal"`
	WeightLossGrams     float64 `json:"weight_loss_grams"`
}

type IntervalTrainingSummary struct {
	TotalDistanceMeters  float64 `json:"total_distance_meters"`
	TotalTimeMinutes     float64 `json:"total_time_minutes"`
	TotalO2Liters        float64 `json:"total_o2_liters"`
	TotalKcal            float64 `json:"total_kcal"`
	TotalWeightLossGrams float64 `json:"total_weight_loss_grams"`
}

type IntervalSessionResult struct {
	VO2Max    float64                 `json:"vo2_max"`
	MaxMET    float64                 `json:"max_met"`
	Intervals []IntervalResult        `json:"intervals"`
	Summary   IntervalTrainingSummary `json:"summary"`
}

func (in IntervalInput) reps() int {
	if in.Repetitions <= 0 {
		return 1
	}
	return in.Repetitions
}

// Validate checks the fields required by the interval's mode.
func (in IntervalInput) Validate() error {
	if !finite(in.DistanceMeters) || in.DistanceMeters <= 0 {
		return validationErr("distance must be positive, got %v", in.DistanceMeters)
	}
	if in.Repetitions < 0 {
		return validationErr("repetitions must not be negative, got %d", in.Repetitions)
	}
	if !finite(in.RestSeconds) || in.RestSeconds < 0 {
		return validationErr("rest must not be negative, got %v", in.RestSeconds)
	}

	switch in.Mode {
	case ModeDistanceIntensity:
		if in.IntensityPercentage == nil {
			return validationErr("intensity_percentage is required in %s mode", in.Mode)
		}
		p := *in.IntensityPercentage
		if !finite(p) || p <= 0 || p > 100 {
			return validationErr("intensity must be above 0 and at most 100%%, got %v", p)
		}
	case ModeDistanceTime:
		if in.TimeMinutes == nil {
			return validationErr("time_minutes is required in %s mode", in.Mode)
		}
		if t := *in.TimeMinutes; !finite(t) || t < 0 {
			return validationErr("time must not be negative, got %v", t)
		}
	default:
		return validationErr("unknown interval mode %q", in.Mode)
	}
	return nil
}

// EvaluateIntervals computes every interval of the session and reduces them
// into a summary. The first invalid interval aborts the whole batch with an
// *IntervalError.
func EvaluateIntervals(in IntervalSessionInput) (IntervalSessionResult, error) {
	if ok, msg := ValidateDistance(in.CooperDistance); !ok {
		return IntervalSessionResult{}, validationErr("cooper distance: %s", msg)
	}
	if !finite(in.BodyWeight) || in.BodyWeight <= 0 {
		return IntervalSessionResult{}, validationErr("body weight must be positive, got %v", in.BodyWeight)
	}
	if len(in.Intervals) == 0 {
		return IntervalSessionResult{}, validationErr("at least one interval is required")
	}

	vo2Max := PerformanceVO2Max(in.CooperDistance)
	maxMET := MaxMET(vo2Max)
	if maxMET <= 1 {
		return IntervalSessionResult{}, validationErr("cooper distance %v m gives a VO2max too low to prescribe intervals", in.CooperDistance)
	}

	res := IntervalSessionResult{
		VO2Max:    vo2Max,
		MaxMET:    round2(maxMET),
		Intervals: make([]IntervalResult, 0, len(in.Intervals)),
	}
	for i, iv := range in.Intervals {
		r, err := evaluateInterval(iv, vo2Max, maxMET, in.BodyWeight)
		if err != nil {
			return IntervalSessionResult{}, &IntervalError{Index: i, Err: err}
		}
		res.Intervals = append(res.Intervals, r)
	}
	res.Summary = Summarize(res.Intervals)
	return res, nil
}

func evaluateInterval(in IntervalInput, vo2Max, maxMET, bodyWeight float64) (IntervalResult, error) {
	if err := in.Validate(); err != nil {
		return IntervalResult{}, err
	}

	var pct, fraction, met, velocity, baseTime float64
	switch in.Mode {
	case ModeDistanceIntensity:
		pct = *in.IntensityPercentage
		fraction = pct / 100
		met = maxMET * fraction
		velocity = (met*mlPerMET - mlPerMET) / runningCostPerMeter
		if velocity <= 0 {
			return IntervalResult{}, validationErr("intensity %v%% is below resting level for VO2max %v", pct, vo2Max)
		}
		baseTime = in.DistanceMeters / velocity
	case ModeDistanceTime:
		baseTime = *in.TimeMinutes
		if baseTime > 0 {
			velocity = in.DistanceMeters / baseTime
		}
		met = (runningCostPerMeter*velocity + mlPerMET) / mlPerMET
		fraction = met / maxMET
		// Reserve-based estimate; not the inverse of met = maxMET*pct/100.
		pct = math.Min(100, math.Max(0, (met-1)/(maxMET-1)*100))
	default:
		return IntervalResult{}, fmt.Errorf("unhandled interval mode %q", in.Mode)
	}

	reps := float64(in.reps())
	totalTime := baseTime*reps + in.RestSeconds*reps/60
	o2PerMinute := vo2Max * pct / 100 * bodyWeight / 1000
	totalO2 := o2PerMinute * totalTime
	kcal := CaloriesFromO2(totalO2)

	return IntervalResult{
		Input:               in,
		IntensityPercentage: round2(pct),
		TrainingFraction:    round2(fraction),
		TrainingMET:         round2(met),
		VelocityMPerMin:     round2(velocity),
		VelocityKmPerHour:   round2(velocity * 60 / 1000),
		TotalDistanceMeters: round0(in.DistanceMeters * reps),
		TimeMinutes:         round2(totalTime),
		O2PerMinuteLiters:   round2(o2PerMinute),
		TotalO2Liters:       round2(totalO2),
		Kcal:                round2(kcal),
		WeightLossGrams:     round2(WeightLossGrams(kcal)),
	}, nil
}

// Summarize adds up already computed intervals. Sums are rounded once, after
// the reduction.
func Summarize(results []IntervalResult) IntervalTrainingSummary {
	var s IntervalTrainingSummary
	for _, r := range results {
		s.TotalDistanceMeters += r.TotalDistanceMeters
		s.TotalTimeMinutes += r.TimeMinutes
		s.TotalO2Liters += r.TotalO2Liters
		s.TotalKcal += r.Kcal
		s.TotalWeightLossGrams += r.WeightLossGrams
	}
	s.TotalDistanceMeters = round0(s.TotalDistanceMeters)
	s.TotalTimeMinutes = round2(s.TotalTimeMinutes)
	s.TotalO2Liters = round2(s.TotalO2Liters)
	s.TotalKcal = round2(s.TotalKcal)
	s.TotalWeightLossGrams = round2(s.TotalWeightLossGrams)
	return s
}

func Float(v float64) *float64 {
	return &v
}
