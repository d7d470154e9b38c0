package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/platform/obs"
	"vehicle-transport-planner/internal/ports"
)

// ResultRepo is a postgres-backed ports.ResultSink: one row per run, one
// row per (vehicle, path step), one row per (truck, loaded vehicle).
type ResultRepo struct {
	DB *sql.DB
}

func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{DB: db}
}

// WriteResult implements ports.ResultSink.
func (r *ResultRepo) WriteResult(runID string, result ports.PlanResult) (err error) {
	ctx := obs.WithRunID(context.Background(), runID)
	defer obs.Time(ctx, "result_repo.WriteResult")(&err)

	if r.DB == nil {
		return errors.New("result repo: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write result %s: begin tx: %w", runID, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO planning_runs (run_id) VALUES ($1)
	ON CONFLICT (run_id) DO NOTHING;
	`, runID); err != nil {
		return fmt.Errorf("write result %s: insert run: %w", runID, err)
	}

	if err := insertVehicleAssignments(ctx, tx, runID, result.VehicleAssignments); err != nil {
		return fmt.Errorf("write result %s: %w", runID, err)
	}
	if err := insertTruckAssignments(ctx, tx, runID, result.TruckAssignments); err != nil {
		return fmt.Errorf("write result %s: %w", runID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write result %s: commit: %w", runID, err)
	}
	return nil
}

func insertVehicleAssignments(ctx context.Context, tx *sql.Tx, runID string, assignments []domain.VehicleAssignment) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO vehicle_assignments
		(run_id, vehicle_id, path_ordinal, segment_start, segment_end, truck_ordinal, departure_day, planned_delayed, delayed_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`)
	if err != nil {
		return fmt.Errorf("prepare vehicle_assignments insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		for step, id := range a.Path {
			if _, err := stmt.ExecContext(ctx, runID, a.VehicleID, step,
				id.Segment.Start, id.Segment.End, id.Ordinal, id.DepartureDay,
				a.PlannedDelayed, a.DelayedBy); err != nil {
				return fmt.Errorf("insert vehicle_assignments vehicle=%d step=%d: %w", a.VehicleID, step, err)
			}
		}
		if len(a.Path) == 0 {
			if _, err := stmt.ExecContext(ctx, runID, a.VehicleID, 0, "", "", 0, 0, a.PlannedDelayed, a.DelayedBy); err != nil {
				return fmt.Errorf("insert vehicle_assignments vehicle=%d (no path): %w", a.VehicleID, err)
			}
		}
	}
	return nil
}

func insertTruckAssignments(ctx context.Context, tx *sql.Tx, runID string, truckAssignments map[domain.TruckID]domain.TruckAssignment) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO truck_assignments
		(run_id, segment_start, segment_end, ordinal, departure_day, vehicle_id)
	VALUES ($1, $2, $3, $4, $5, $6);
	`)
	if err != nil {
		return fmt.Errorf("prepare truck_assignments insert: %w", err)
	}
	defer stmt.Close()

	for id, ta := range truckAssignments {
		if len(ta.Load) == 0 {
			if _, err := stmt.ExecContext(ctx, runID, id.Segment.Start, id.Segment.End, id.Ordinal, id.DepartureDay, -1); err != nil {
				return fmt.Errorf("insert truck_assignments truck=%s (empty): %w", id, err)
			}
			continue
		}
		for _, vehicleID := range ta.Load {
			if _, err := stmt.ExecContext(ctx, runID, id.Segment.Start, id.Segment.End, id.Ordinal, id.DepartureDay, vehicleID); err != nil {
				return fmt.Errorf("insert truck_assignments truck=%s vehicle=%d: %w", id, vehicleID, err)
			}
		}
	}
	return nil
}
