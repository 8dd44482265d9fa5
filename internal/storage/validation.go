package storage

import (
	"database/sql"
	"fmt"
)

func (s *Storage) EvaluateeExists(name string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM evaluatees WHERE name = ? COLLATE NOCASE)",
		name,
	).Scan(&exists)

	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check evaluatee existence: %w", err)
	}

	return exists, nil
}
