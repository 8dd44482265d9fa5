package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/cooperpro/internal/calc"
	"github.com/misterclayt0n/cooperpro/internal/models"
	log "github.com/sirupsen/logrus"
)

func stamp(id *string, testDate, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	now := time.Now().UTC()
	if testDate.IsZero() {
		*testDate = now
	}
	if createdAt.IsZero() {
		*createdAt = now
	}
}

func (s *Storage) SaveCooperTest(ct *models.CooperTest) error {
	stamp(&ct.ID, &ct.TestDate, &ct.CreatedAt)

	_, err := s.DB.Exec(
		`INSERT INTO cooper_tests
		(id, evaluatee_id, test_date, cooper_test_distance, age_years, gender, vo2_max, classification, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ct.ID,
		ct.EvaluateeID,
		formatTime(ct.TestDate),
		ct.CooperTestDistance,
		ct.AgeYears,
		ct.Gender,
		ct.VO2Max,
		ct.Classification,
		formatTime(ct.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save cooper test: %w", err)
	}
	log.WithFields(log.Fields{"evaluatee": ct.EvaluateeID, "vo2_max": ct.VO2Max}).Debug("cooper test saved")
	return nil
}

// ListCooperTests returns the evaluatee's tests, newest first. limit <= 0
// returns all of them.
func (s *Storage) ListCooperTests(evaluateeID string, limit int) ([]models.CooperTest, error) {
	rows, err := s.DB.Query(
		`SELECT id, evaluatee_id, test_date, cooper_test_distance, age_years, gender, vo2_max, classification, created_at
		FROM cooper_tests
		WHERE evaluatee_id = ?
		ORDER BY test_date DESC
		LIMIT ?`,
		evaluateeID, sqlLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []models.CooperTest
	for rows.Next() {
		var ct models.CooperTest
		var testDate, createdAt string
		if err := rows.Scan(
			&ct.ID,
			&ct.EvaluateeID,
			&testDate,
			&ct.CooperTestDistance,
			&ct.AgeYears,
			&ct.Gender,
			&ct.VO2Max,
			&ct.Classification,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cooper test: %w", err)
		}
		ct.TestDate = parseTime(testDate)
		ct.CreatedAt = parseTime(createdAt)
		tests = append(tests, ct)
	}
	return tests, rows.Err()
}

func (s *Storage) LatestCooperTest(evaluateeID string) (*models.CooperTest, error) {
	tests, err := s.ListCooperTests(evaluateeID, 1)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, fmt.Errorf("cooper test for %s: %w", evaluateeID, ErrNotFound)
	}
	return &tests[0], nil
}

func (s *Storage) SavePerformanceEvaluation(pe *models.PerformanceEvaluation) error {
	stamp(&pe.ID, &pe.TestDate, &pe.CreatedAt)

	_, err := s.DB.Exec(
		`INSERT INTO performance_evaluations
		(id, evaluatee_id, test_date, cooper_test_distance, intensity_percentage, training_time, body_weight,
		vo2_max, training_distance, training_intensity, training_velocity, total_o2_consumption,
		caloric_expenditure, weight_loss, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pe.ID,
		pe.EvaluateeID,
		formatTime(pe.TestDate),
		pe.CooperDistance,
		pe.IntensityPercentage,
		pe.TrainingTime,
		pe.BodyWeight,
		pe.VO2Max,
		pe.TrainingDistance,
		pe.TrainingIntensity,
		pe.TrainingVelocity,
		pe.TotalO2Consumption,
		pe.CaloricExpenditure,
		pe.WeightLoss,
		formatTime(pe.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save performance evaluation: %w", err)
	}
	return nil
}

func (s *Storage) ListPerformanceEvaluations(evaluateeID string, limit int) ([]models.PerformanceEvaluation, error) {
	rows, err := s.DB.Query(
		`SELECT id, evaluatee_id, test_date, cooper_test_distance, intensity_percentage, training_time, body_weight,
		vo2_max, training_distance, training_intensity, training_velocity, total_o2_consumption,
		caloric_expenditure, weight_loss, created_at
		FROM performance_evaluations
		WHERE evaluatee_id = ?
		ORDER BY test_date DESC
		LIMIT ?`,
		evaluateeID, sqlLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []models.PerformanceEvaluation
	for rows.Next() {
		var pe models.PerformanceEvaluation
		var testDate, createdAt string
		if err := rows.Scan(
			&pe.ID,
			&pe.EvaluateeID,
			&testDate,
			&pe.CooperDistance,
			&pe.IntensityPercentage,
			&pe.TrainingTime,
			&pe.BodyWeight,
			&pe.VO2Max,
			&pe.TrainingDistance,
			&pe.TrainingIntensity,
			&pe.TrainingVelocity,
			&pe.TotalO2Consumption,
			&pe.CaloricExpenditure,
			&pe.WeightLoss,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan performance evaluation: %w", err)
		}
		pe.TestDate = parseTime(testDate)
		pe.CreatedAt = parseTime(createdAt)
		evals = append(evals, pe)
	}
	return evals, rows.Err()
}

// SaveIntervalSession stores the session summary and all of its intervals
// in one transaction.
func (s *Storage) SaveIntervalSession(is *models.IntervalSession) error {
	stamp(&is.ID, &is.TestDate, &is.CreatedAt)

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interval_sessions
		(id, evaluatee_id, test_date, cooper_test_distance, body_weight, vo2_max,
		total_distance_meters, total_time_minutes, total_o2_liters, total_kcal, total_weight_loss_grams, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		is.ID,
		is.EvaluateeID,
		formatTime(is.TestDate),
		is.CooperTestDistance,
		is.BodyWeight,
		is.VO2Max,
		is.TotalDistanceMeters,
		is.TotalTimeMinutes,
		is.TotalO2Liters,
		is.TotalKcal,
		is.TotalWeightLossGrams,
		formatTime(is.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("Failed to create interval session: %w", err)
	}

	for i, r := range is.Intervals {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO interval_items
			(id, session_id, position, mode, distance_meters, intensity_input, time_input, repetitions, rest_seconds,
			intensity_percentage, training_fraction, training_met, velocity_m_per_min, velocity_km_per_hour,
			total_distance_meters, time_minutes, o2_per_minute_liters, total_o2_liters, kcal, weight_loss_grams)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			is.ID,
			i,
			string(r.Input.Mode),
			r.Input.DistanceMeters,
			nullableFloat(r.Input.IntensityPercentage),
			nullableFloat(r.Input.TimeMinutes),
			r.Input.Repetitions,
			r.Input.RestSeconds,
			r.IntensityPercentage,
			r.TrainingFraction,
			r.TrainingMET,
			r.VelocityMPerMin,
			r.VelocityKmPerHour,
			r.TotalDistanceMeters,
			r.TimeMinutes,
			r.O2PerMinuteLiters,
			r.TotalO2Liters,
			r.Kcal,
			r.WeightLossGrams,
		)
		if err != nil {
			return fmt.Errorf("Failed to save interval %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

const intervalSessionColumns = `id, evaluatee_id, test_date, cooper_test_distance, body_weight, vo2_max,
	total_distance_meters, total_time_minutes, total_o2_liters, total_kcal, total_weight_loss_grams, created_at`

func scanIntervalSession(row scanner) (*models.IntervalSession, error) {
	var is models.IntervalSession
	var testDate, createdAt string
	if err := row.Scan(
		&is.ID,
		&is.EvaluateeID,
		&testDate,
		&is.CooperTestDistance,
		&is.BodyWeight,
		&is.VO2Max,
		&is.TotalDistanceMeters,
		&is.TotalTimeMinutes,
		&is.TotalO2Liters,
		&is.TotalKcal,
		&is.TotalWeightLossGrams,
		&createdAt,
	); err != nil {
		return nil, err
	}
	is.TestDate = parseTime(testDate)
	is.CreatedAt = parseTime(createdAt)
	return &is, nil
}

// GetIntervalSession loads a session together with its intervals.
func (s *Storage) GetIntervalSession(id string) (*models.IntervalSession, error) {
	is, err := scanIntervalSession(s.DB.QueryRow(
		`SELECT `+intervalSessionColumns+` FROM interval_sessions WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("interval session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(
		`SELECT mode, distance_meters, intensity_input, time_input, repetitions, rest_seconds,
		intensity_percentage, training_fraction, training_met, velocity_m_per_min, velocity_km_per_hour,
		total_distance_meters, time_minutes, o2_per_minute_liters, total_o2_liters, kcal, weight_loss_grams
		FROM interval_items
		WHERE session_id = ?
		ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r calc.IntervalResult
		var mode string
		var intensity, minutes sql.NullFloat64
		if err := rows.Scan(
			&mode,
			&r.Input.DistanceMeters,
			&intensity,
			&minutes,
			&r.Input.Repetitions,
			&r.Input.RestSeconds,
			&r.IntensityPercentage,
			&r.TrainingFraction,
			&r.TrainingMET,
			&r.VelocityMPerMin,
			&r.VelocityKmPerHour,
			&r.TotalDistanceMeters,
			&r.TimeMinutes,
			&r.O2PerMinuteLiters,
			&r.TotalO2Liters,
			&r.Kcal,
			&r.WeightLossGrams,
		); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		r.Input.Mode = calc.IntervalMode(mode)
		if intensity.Valid {
			r.Input.IntensityPercentage = calc.Float(intensity.Float64)
		}
		if minutes.Valid {
			r.Input.TimeMinutes = calc.Float(minutes.Float64)
		}
		is.Intervals = append(is.Intervals, r)
	}
	return is, rows.Err()
}

// ListIntervalSessions returns session summaries without their intervals.
func (s *Storage) ListIntervalSessions(evaluateeID string, limit int) ([]models.IntervalSession, error) {
	rows, err := s.DB.Query(
		`SELECT `+intervalSessionColumns+`
		FROM interval_sessions
		WHERE evaluatee_id = ?
		ORDER BY test_date DESC
		LIMIT ?`,
		evaluateeID, sqlLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.IntervalSession
	for rows.Next() {
		is, err := scanIntervalSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interval session: %w", err)
		}
		sessions = append(sessions, *is)
	}
	return sessions, rows.Err()
}

// ListAssessments merges every kind of test recorded for the evaluatee,
// newest first.
func (s *Storage) ListAssessments(evaluateeID string) ([]models.Assessment, error) {
	return s.listAssessments("evaluatee_id = ?", evaluateeID)
}

// ListAssessmentsBetween returns the tests of all evaluatees with
// from <= test_date < to.
func (s *Storage) ListAssessmentsBetween(from, to time.Time) ([]models.Assessment, error) {
	return s.listAssessments("test_date >= ? AND test_date < ?", formatTime(from), formatTime(to))
}

func (s *Storage) listAssessments(where string, args ...interface{}) ([]models.Assessment, error) {
	queries := []struct {
		kind   string
		query  string
		detail func(a, b, c float64, class string) string
	}{
		{
			kind:  models.KindCooper,
			query: `SELECT id, evaluatee_id, test_date, vo2_max, cooper_test_distance, 0, 0, classification FROM cooper_tests`,
			detail: func(distance, _, _ float64, class string) string {
				return fmt.Sprintf("%.0f m, %s", distance, class)
			},
		},
		{
			kind:  models.KindPerformance,
			query: `SELECT id, evaluatee_id, test_date, vo2_max, intensity_percentage, training_time, caloric_expenditure, '' FROM performance_evaluations`,
			detail: func(pct, minutes, kcal float64, _ string) string {
				return fmt.Sprintf("%.0f%% for %.0f min, %.0f kcal", pct, minutes, kcal)
			},
		},
		{
			kind:  models.KindIntervals,
			query: `SELECT id, evaluatee_id, test_date, vo2_max, total_distance_meters, total_time_minutes, total_kcal, '' FROM interval_sessions`,
			detail: func(distance, minutes, kcal float64, _ string) string {
				return fmt.Sprintf("%.0f m in %.1f min, %.0f kcal", distance, minutes, kcal)
			},
		},
	}

	var out []models.Assessment
	for _, q := range queries {
		rows, err := s.DB.Query(q.query+" WHERE "+where, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s tests: %w", q.kind, err)
		}

		for rows.Next() {
			a := models.Assessment{Kind: q.kind}
			var testDate, class string
			var x, y, z float64
			if err := rows.Scan(&a.ID, &a.EvaluateeID, &testDate, &a.VO2Max, &x, &y, &z, &class); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan %s test: %w", q.kind, err)
			}
			a.TestDate = parseTime(testDate)
			a.Detail = q.detail(x, y, z, class)
			out = append(out, a)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TestDate.After(out[j].TestDate)
	})
	return out, nil
}

func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
