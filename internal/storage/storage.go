package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // required for local files
	"github.com/misterclayt0n/cooperpro/internal/config"
	log "github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

var ErrNotFound = errors.New("not found")

type Storage struct {
	DB *sql.DB
}

// NewStorage opens the configured database, exiting the process when that
// is impossible. Commands use it; code that needs to handle the error
// calls Open.
func NewStorage() *Storage {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %s\n", err)
		os.Exit(1)
	}

	st, err := Open(cfg.DB.ConnectionString, cfg.DB.AuthToken)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %s\n", err)
		os.Exit(1)
	}
	return st
}

// Open connects to url and makes sure the schema exists. file: URLs are
// local SQLite files; anything else goes through the libsql driver.
func Open(dbURL, authToken string) (*Storage, error) {
	driver := "libsql"
	dsn := dbURL
	if strings.HasPrefix(dbURL, "file:") {
		driver = "sqlite3"
	} else if authToken != "" {
		u, err := url.Parse(dbURL)
		if err != nil {
			return nil, fmt.Errorf("invalid database url: %w", err)
		}
		q := u.Query()
		if q.Get("authToken") == "" {
			q.Set("authToken", authToken)
			u.RawQuery = q.Encode()
		}
		dsn = u.String()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if driver == "sqlite3" {
		// One writer avoids "database is locked" on the shared cache.
		db.SetMaxOpenConns(1)
	}

	if err := InitializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.WithField("driver", driver).Debug("database ready")
	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS evaluatees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		email TEXT,
		gender TEXT,
		birth_date TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cooper_tests (
		id TEXT PRIMARY KEY,
		evaluatee_id TEXT NOT NULL,
		test_date TEXT NOT NULL,
		cooper_test_distance REAL NOT NULL,
		age_years INTEGER NOT NULL,
		gender TEXT NOT NULL,
		vo2_max REAL NOT NULL,
		classification TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (evaluatee_id) REFERENCES evaluatees(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS performance_evaluations (
		id TEXT PRIMARY KEY,
		evaluatee_id TEXT NOT NULL,
		test_date TEXT NOT NULL,
		cooper_test_distance REAL NOT NULL,
		intensity_percentage REAL NOT NULL,
		training_time REAL NOT NULL,
		body_weight REAL NOT NULL,
		vo2_max REAL NOT NULL,
		training_distance REAL NOT NULL,
		training_intensity REAL NOT NULL,
		training_velocity REAL NOT NULL,
		total_o2_consumption REAL NOT NULL,
		caloric_expenditure REAL NOT NULL,
		weight_loss REAL NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (evaluatee_id) REFERENCES evaluatees(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS interval_sessions (
		id TEXT PRIMARY KEY,
		evaluatee_id TEXT NOT NULL,
		test_date TEXT NOT NULL,
		cooper_test_distance REAL NOT NULL,
		body_weight REAL NOT NULL,
		vo2_max REAL NOT NULL,
		total_distance_meters REAL NOT NULL,
		total_time_minutes REAL NOT NULL,
		total_o2_liters REAL NOT NULL,
		total_kcal REAL NOT NULL,
		total_weight_loss_grams REAL NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (evaluatee_id) REFERENCES evaluatees(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS interval_items (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		mode TEXT NOT NULL,
		distance_meters REAL NOT NULL,
		intensity_input REAL,
		time_input REAL,
		repetitions INTEGER NOT NULL,
		rest_seconds REAL NOT NULL,
		intensity_percentage REAL NOT NULL,
		training_fraction REAL NOT NULL,
		training_met REAL NOT NULL,
		velocity_m_per_min REAL NOT NULL,
		velocity_km_per_hour REAL NOT NULL,
		total_distance_meters REAL NOT NULL,
		time_minutes REAL NOT NULL,
		o2_per_minute_liters REAL NOT NULL,
		total_o2_liters REAL NOT NULL,
		kcal REAL NOT NULL,
		weight_loss_grams REAL NOT NULL,
		FOREIGN KEY (session_id) REFERENCES interval_sessions(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cooper_tests_evaluatee ON cooper_tests(evaluatee_id, test_date)`,
	`CREATE INDEX IF NOT EXISTS idx_performance_evaluatee ON performance_evaluations(evaluatee_id, test_date)`,
	`CREATE INDEX IF NOT EXISTS idx_interval_sessions_evaluatee ON interval_sessions(evaluatee_id, test_date)`,
}

// InitializeDB creates the tables that do not exist yet.
func InitializeDB(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
