// Package postgres persists capacity history observations and completed
// planning runs, grounded on the teacher's sqlite_init.go/InitSchema and
// SqlitePackageRepository, ported from database/sql+sqlite to
// database/sql+pgx (github.com/jackc/pgx/v5/stdlib).
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the tables the planner persists to, if absent.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS capacity_history (
			segment_start   TEXT NOT NULL,
			segment_end     TEXT NOT NULL,
			ordinal         INTEGER NOT NULL,
			departure_day   INTEGER NOT NULL,
			capacity        INTEGER NOT NULL,
			price           INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_capacity_history_segment_ordinal
			ON capacity_history(segment_start, segment_end, ordinal);`,
		`CREATE TABLE IF NOT EXISTS planning_runs (
			run_id      TEXT PRIMARY KEY,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS vehicle_assignments (
			run_id          TEXT NOT NULL REFERENCES planning_runs(run_id) ON DELETE CASCADE,
			vehicle_id      INTEGER NOT NULL,
			path_ordinal    INTEGER NOT NULL,
			segment_start   TEXT NOT NULL,
			segment_end     TEXT NOT NULL,
			truck_ordinal   INTEGER NOT NULL,
			departure_day   INTEGER NOT NULL,
			planned_delayed BOOLEAN NOT NULL,
			delayed_by      INTEGER NOT NULL,
			PRIMARY KEY (run_id, vehicle_id, path_ordinal)
		);`,
		`CREATE TABLE IF NOT EXISTS truck_assignments (
			run_id          TEXT NOT NULL REFERENCES planning_runs(run_id) ON DELETE CASCADE,
			segment_start   TEXT NOT NULL,
			segment_end     TEXT NOT NULL,
			ordinal         INTEGER NOT NULL,
			departure_day   INTEGER NOT NULL,
			vehicle_id      INTEGER NOT NULL,
			PRIMARY KEY (run_id, segment_start, segment_end, ordinal, departure_day, vehicle_id)
		);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}
	return nil
}
