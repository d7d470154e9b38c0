package ports

import "vehicle-transport-planner/internal/domain"

// MIPValidator solves the multi-commodity problem in validation mode. Its
// one implementation, solver.MIPSolver, runs the sequential per-commodity
// solver on a graph clone; it does not formulate or solve a single integer
// program. Validation only (spec §4.4:
// "This mode exists for validation; it shares graph, commodity grouping,
// and extraction logic."). It is never invoked from the default
// deterministic path or the real-time loop. now is the reference day used
// to classify delay as planned vs unplanned at extraction time.
type MIPValidator interface {
	SolveMIP(commodities []domain.Commodity, now domain.Day) (PlanResult, error)
}
