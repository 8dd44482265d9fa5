package models

import (
	"time"

	"github.com/misterclayt0n/cooperpro/internal/calc"
)

const (
	KindCooper      = "cooper"
	KindPerformance = "performance"
	KindIntervals   = "intervals"
)

type CooperTest struct {
	ID                 string    `json:"id"`
	EvaluateeID        string    `json:"evaluatee_id"`
	TestDate           time.Time `json:"test_date"`
	CooperTestDistance float64   `json:"cooper_test_distance"`
	AgeYears           int       `json:"age_years"`
	Gender             string    `json:"gender"`
	VO2Max             float64   `json:"vo2_max"`
	Classification     string    `json:"classification"`
	CreatedAt          time.Time `json:"created_at"`
}

// PerformanceEvaluation is the flat record of one prescription: the raw
// inputs next to every computed field.
type PerformanceEvaluation struct {
	ID          string    `json:"id"`
	EvaluateeID string    `json:"evaluatee_id"`
	TestDate    time.Time `json:"test_date"`
	calc.PerformanceEvaluationInput
	calc.PerformanceEvaluationResult
	CreatedAt time.Time `json:"created_at"`
}

type IntervalSession struct {
	ID                 string    `json:"id"`
	EvaluateeID        string    `json:"evaluatee_id"`
	TestDate           time.Time `json:"test_date"`
	CooperTestDistance float64   `json:"cooper_test_distance"`
	BodyWeight         float64   `json:"body_weight"`
	VO2Max             float64   `json:"vo2_max"`
	calc.IntervalTrainingSummary
	Intervals []calc.IntervalResult `json:"intervals"`
	CreatedAt time.Time             `json:"created_at"`
}

// Assessment is one row of an evaluatee's history, whatever its kind.
type Assessment struct {
	ID          string    `json:"id"`
	EvaluateeID string    `json:"evaluatee_id"`
	Kind        string    `json:"kind"`
	TestDate    time.Time `json:"test_date"`
	VO2Max      float64   `json:"vo2_max"`
	Detail      string    `json:"detail"`
}
