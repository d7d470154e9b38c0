package ports

import "vehicle-transport-planner/internal/domain"

// PlanResult is the full output of a planning run: the two structures spec
// §6 requires — vehicle assignments sorted by id, and a truck-assignment
// map carrying an entry for every planned *and* every realised truck id
// (so an evaluator can distinguish "unused" from "unknown").
type PlanResult struct {
	VehicleAssignments []domain.VehicleAssignment
	TruckAssignments   map[domain.TruckID]domain.TruckAssignment
}

// ResultSink persists or emits a completed PlanResult. Concrete
// implementations (JSON artifact writer, postgres result repository) live
// under internal/adapters and are never imported by internal/solver or
// internal/realtime.
type ResultSink interface {
	WriteResult(runID string, result PlanResult) error
}
