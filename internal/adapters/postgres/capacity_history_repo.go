package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vehicle-transport-planner/internal/platform/obs"
	"vehicle-transport-planner/internal/ports"
)

// CapacityHistoryRepo is a postgres-backed ports.CapacityHistorySource,
// and also accepts new observations through InsertMany (called by
// cmd/dbtool).
type CapacityHistoryRepo struct {
	DB *sql.DB
}

func NewCapacityHistoryRepo(db *sql.DB) *CapacityHistoryRepo {
	return &CapacityHistoryRepo{DB: db}
}

// ListCapacityHistory implements ports.CapacityHistorySource.
func (r *CapacityHistoryRepo) ListCapacityHistory() (_ []ports.CapacityObservation, err error) {
	defer obs.Time(context.Background(), "capacity_history.ListCapacityHistory")(&err)

	if r.DB == nil {
		return nil, errors.New("capacity history repo: DB is nil")
	}

	query := `
	SELECT segment_start, segment_end, ordinal, departure_day, capacity, price
	FROM capacity_history
	ORDER BY departure_day;
	`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list capacity history: query: %w", err)
	}
	defer rows.Close()

	var out []ports.CapacityObservation
	for rows.Next() {
		var o ports.CapacityObservation
		if err := rows.Scan(&o.Segment.Start, &o.Segment.End, &o.Ordinal, &o.DepartureDay, &o.Capacity, &o.Price); err != nil {
			return nil, fmt.Errorf("list capacity history: scan row: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list capacity history: row iteration: %w", err)
	}
	return out, nil
}

// InsertMany records a batch of realised capacity observations.
func (r *CapacityHistoryRepo) InsertMany(ctx context.Context, obsList []ports.CapacityObservation) (err error) {
	defer obs.Time(ctx, "capacity_history.InsertMany")(&err)

	if r.DB == nil {
		return errors.New("capacity history repo: DB is nil")
	}
	if len(obsList) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert capacity history: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO capacity_history (segment_start, segment_end, ordinal, departure_day, capacity, price)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("insert capacity history: prepare: %w", err)
	}
	defer stmt.Close()

	for _, o := range obsList {
		if _, err := stmt.ExecContext(ctx, o.Segment.Start, o.Segment.End, o.Ordinal, o.DepartureDay, o.Capacity, o.Price); err != nil {
			return fmt.Errorf("insert capacity history segment=%s: %w", o.Segment, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert capacity history: commit: %w", err)
	}
	return nil
}

