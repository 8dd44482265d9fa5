package models

import "time"

type Evaluatee struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

//
// For TOML parsing only
//

type EvaluateeTOML struct {
	Name      string `toml:"name"`
	Email     string `toml:"email"`
	Gender    string `toml:"gender"`
	BirthDate string `toml:"birth_date"` // 2006-01-02 or 02/01/2006.
	Notes     string `toml:"notes"`
}

type EvaluateeImport struct {
	Evaluatees []EvaluateeTOML `toml:"evaluatee"`
}
