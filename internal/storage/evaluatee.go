package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/cooperpro/internal/models"
	log "github.com/sirupsen/logrus"
)

const evaluateeColumns = `id, name, email, gender, birth_date, notes, created_at`

// CreateEvaluatee inserts ev, filling ID and CreatedAt when empty.
func (s *Storage) CreateEvaluatee(ev *models.Evaluatee) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	_, err := s.DB.Exec(
		`INSERT INTO evaluatees (`+evaluateeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.ID,
		ev.Name,
		ev.Email,
		ev.Gender,
		nullableDate(ev.BirthDate),
		ev.Notes,
		formatTime(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create evaluatee: %w", err)
	}

	log.WithField("evaluatee", ev.ID).Debug("evaluatee created")
	return nil
}

func (s *Storage) UpdateEvaluatee(ev *models.Evaluatee) error {
	res, err := s.DB.Exec(
		`UPDATE evaluatees
		SET name = ?, email = ?, gender = ?, birth_date = ?, notes = ?
		WHERE id = ?`,
		ev.Name,
		ev.Email,
		ev.Gender,
		nullableDate(ev.BirthDate),
		ev.Notes,
		ev.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update evaluatee: %w", err)
	}
	return expectOneRow(res)
}

// GetEvaluatee looks an evaluatee up by ID or, case-insensitively, by name.
func (s *Storage) GetEvaluatee(idOrName string) (*models.Evaluatee, error) {
	row := s.DB.QueryRow(
		`SELECT `+evaluateeColumns+` FROM evaluatees
		WHERE id = ? OR name = ? COLLATE NOCASE
		LIMIT 1`,
		idOrName, idOrName,
	)

	ev, err := scanEvaluatee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("evaluatee %q: %w", idOrName, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *Storage) ListEvaluatees() ([]models.Evaluatee, error) {
	rows, err := s.DB.Query(`SELECT ` + evaluateeColumns + ` FROM evaluatees ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluatees []models.Evaluatee
	for rows.Next() {
		ev, err := scanEvaluatee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluatee: %w", err)
		}
		evaluatees = append(evaluatees, *ev)
	}
	return evaluatees, rows.Err()
}

// DeleteEvaluatee removes the evaluatee and every test recorded for them.
func (s *Storage) DeleteEvaluatee(id string) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM interval_items WHERE session_id IN (SELECT id FROM interval_sessions WHERE evaluatee_id = ?)`,
		`DELETE FROM interval_sessions WHERE evaluatee_id = ?`,
		`DELETE FROM performance_evaluations WHERE evaluatee_id = ?`,
		`DELETE FROM cooper_tests WHERE evaluatee_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("Failed to delete evaluatee tests: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM evaluatees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("Failed to delete evaluatee: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluatee(row scanner) (*models.Evaluatee, error) {
	var ev models.Evaluatee
	var email, gender, notes, birthDate sql.NullString
	var createdAt string

	if err := row.Scan(
		&ev.ID,
		&ev.Name,
		&email,
		&gender,
		&birthDate,
		&notes,
		&createdAt,
	); err != nil {
		return nil, err
	}

	ev.Email = email.String
	ev.Gender = gender.String
	ev.Notes = notes.String
	ev.CreatedAt = parseTime(createdAt)
	if birthDate.Valid && birthDate.String != "" {
		if t, err := time.Parse("2006-01-02", birthDate.String); err == nil {
			ev.BirthDate = &t
		}
	}
	return &ev, nil
}

func nullableDate(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
