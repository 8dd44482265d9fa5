package models

import (
	"time"

	"github.com/misterclayt0n/cooperpro/internal/calc"
)

// IntervalDraft is the interval session being built with add-interval, kept
// in a state file until end-session computes and saves it.
type IntervalDraft struct {
	SessionID      string               `toml:"session_id"`
	EvaluateeID    string               `toml:"evaluatee_id"`
	EvaluateeName  string               `toml:"evaluatee_name"`
	CooperDistance float64              `toml:"cooper_test_distance"`
	BodyWeight     float64              `toml:"body_weight"`
	StartTime      time.Time            `toml:"start_time"`
	Intervals      []calc.IntervalInput `toml:"interval"`
}

func (d *IntervalDraft) SessionInput() calc.IntervalSessionInput {
	return calc.IntervalSessionInput{
		CooperDistance: d.CooperDistance,
		BodyWeight:     d.BodyWeight,
		Intervals:      d.Intervals,
	}
}

//
// For TOML parsing only
//

// IntervalPlanTOML is the file format accepted by the intervals command.
type IntervalPlanTOML struct {
	Evaluatee string `toml:"evaluatee,omitempty"`
	calc.IntervalSessionInput
}
