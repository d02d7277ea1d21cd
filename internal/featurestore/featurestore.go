// Package featurestore persists extraction runs to SQLite so the
// downstream training pipeline can pick feature tables up
// asynchronously. One run row records the cube shape and the feature
// set that produced the table; values are stored long-form, one row
// per (column, spatial index).
package featurestore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/verdant-data/canopy.report/internal/features"
)

// Store wraps the SQLite handle used for run persistence.
type Store struct {
	*sql.DB
}

// Run describes one persisted extraction.
type Run struct {
	RunID     string
	CreatedAt time.Time
	Pixels    int
	Steps     int
	Bands     int
	// FeatureSetJSON is the wire form of the set that produced the run.
	FeatureSetJSON string
}

// Open opens (creating if necessary) a feature store at path. The
// baseline schema is applied inline; MigrateUp handles later versions.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS extraction_runs (
			run_id            TEXT PRIMARY KEY,
			created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			pixels            BIGINT,
			steps             BIGINT,
			bands             BIGINT,
			feature_set       TEXT
		);
		CREATE TABLE IF NOT EXISTS feature_values (
			run_id            TEXT,
			column_idx        BIGINT,
			column_name       TEXT,
			spatial_index     BIGINT,
			value             DOUBLE,
			FOREIGN KEY(run_id) REFERENCES extraction_runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_feature_values_run
			ON feature_values(run_id, column_idx, spatial_index);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db}, nil
}

// SaveRun stores a table with its provenance and returns the new run
// ID. The insert is transactional: a failed run leaves no rows behind.
func (s *Store) SaveRun(set *features.FeatureSet, pixels, steps, bands int, table *features.Table) (string, error) {
	setJSON, err := json.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("marshal feature set: %w", err)
	}

	runID := uuid.New().String()
	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO extraction_runs (run_id, created_at, pixels, steps, bands, feature_set) VALUES (?, ?, ?, ?, ?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339Nano), pixels, steps, bands, string(setJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO feature_values (run_id, column_idx, column_name, spatial_index, value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for ci, col := range table.Columns() {
		for si, v := range col.Values {
			if _, err := stmt.Exec(runID, ci, col.Name, si, v); err != nil {
				return "", fmt.Errorf("insert value (%s, %d): %w", col.Name, si, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	log.Printf("[FeatureStore] Saved run %s: %d columns x %d pixels", runID, table.NumColumns(), table.NumRows())
	return runID, nil
}

// ListRuns returns all persisted runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.Query(
		"SELECT run_id, created_at, pixels, steps, bands, feature_set FROM extraction_runs ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.RunID, &createdAt, &r.Pixels, &r.Steps, &r.Bands, &r.FeatureSetJSON); err != nil {
			return nil, err
		}
		// Timestamps are stored as RFC3339 text; tolerate the sqlite
		// default format for rows written out-of-band.
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		} else if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			r.CreatedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadTable rebuilds a run's feature table from storage, preserving
// column order.
func (s *Store) LoadTable(runID string) (*features.Table, error) {
	var pixels int
	err := s.QueryRow("SELECT pixels FROM extraction_runs WHERE run_id = ?", runID).Scan(&pixels)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	rows, err := s.Query(
		"SELECT column_idx, column_name, spatial_index, value FROM feature_values WHERE run_id = ? ORDER BY column_idx, spatial_index",
		runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := features.NewTable(pixels)
	currentIdx := -1
	var currentName string
	var values []float64
	flush := func() error {
		if currentIdx < 0 {
			return nil
		}
		return table.AddColumn(currentName, values)
	}
	for rows.Next() {
		var ci, si int
		var name string
		var v float64
		if err := rows.Scan(&ci, &name, &si, &v); err != nil {
			return nil, err
		}
		if ci != currentIdx {
			if err := flush(); err != nil {
				return nil, err
			}
			currentIdx = ci
			currentName = name
			values = make([]float64, 0, pixels)
		}
		values = append(values, v)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if table.NumColumns() == 0 {
		return nil, fmt.Errorf("load run %s: no feature values stored", runID)
	}
	return table, nil
}
