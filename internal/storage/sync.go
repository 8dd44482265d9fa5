package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// ExportDBToTOML exports all data from the database into a single TOML file.
// It queries sqlite_master for all user tables, then for each table,
// it retrieves all rows (as maps from column names to values). NULL columns
// are left out of the row.
func (s *Storage) ExportDBToTOML(outputPath string) error {
	tables, err := s.tableNames()
	if err != nil {
		return err
	}

	dbDump := make(map[string][]map[string]interface{})
	for _, tableName := range tables {
		tableData, err := s.dumpTable(tableName)
		if err != nil {
			return err
		}
		dbDump[tableName] = tableData
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dbDump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	log.WithFields(log.Fields{"file": outputPath, "tables": len(tables)}).Info("database exported")
	return nil
}

func (s *Storage) tableNames() ([]string, error) {
	rows, err := s.DB.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%';`)
	if err != nil {
		return nil, fmt.Errorf("querying sqlite_master: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, tableName)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) dumpTable(tableName string) ([]map[string]interface{}, error) {
	tableRows, err := s.DB.Query(fmt.Sprintf("SELECT * FROM %s;", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", tableName, err)
	}
	defer tableRows.Close()

	cols, err := tableRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s: %w", tableName, err)
	}

	tableData := []map[string]interface{}{}
	for tableRows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := tableRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row in table %s: %w", tableName, err)
		}

		rowMap := make(map[string]interface{})
		for i, col := range cols {
			switch val := values[i].(type) {
			case nil:
			case []byte:
				rowMap[col] = string(val)
			default:
				rowMap[col] = val
			}
		}
		tableData = append(tableData, rowMap)
	}
	return tableData, tableRows.Err()
}

// ImportDBFromTOML reads the TOML dump file at filePath and rebuilds the database
// by deleting current rows from all tables and then inserting the rows from the dump.
// Tables missing from the schema are rejected.
func (s *Storage) ImportDBFromTOML(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("Reading file %s: %w", filePath, err)
	}

	// The dump file is assumed to be a map from table names to an array of rows.
	var dbDump map[string][]map[string]interface{}
	if _, err := toml.Decode(string(data), &dbDump); err != nil {
		return fmt.Errorf("Decoding TOML: %w", err)
	}

	known, err := s.tableNames()
	if err != nil {
		return err
	}
	for table := range dbDump {
		if idx := sort.SearchStrings(known, table); idx == len(known) || known[idx] != table {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("Begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Disable foreign keys for the duration of the import.
	if _, err := tx.Exec("PRAGMA foreign_keys = OFF;"); err != nil {
		return fmt.Errorf("Disabling foreign keys: %w", err)
	}

	for table, rows := range dbDump {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return fmt.Errorf("Clearing table %s: %w", table, err)
		}

		for _, row := range rows {
			var columns []string
			var placeholders []string
			var values []interface{}
			for col, val := range row {
				columns = append(columns, col)
				placeholders = append(placeholders, "?")
				values = append(values, val)
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.Exec(query, values...); err != nil {
				return fmt.Errorf("Inserting into table %s: %w", table, err)
			}
		}
	}

	// Re-enable foreign keys.
	if _, err := tx.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("Re-enabling foreign keys: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Committing transaction: %w", err)
	}

	log.WithField("file", filePath).Info("database imported")
	return nil
}
