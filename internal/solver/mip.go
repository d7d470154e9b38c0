package solver

import (
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
)

// MIPSolver is the validation-mode ports.MIPValidator (spec §4.4, §4.10).
// The reference implementation formulates the whole multicommodity problem
// as one mixed-integer program; no ILP library appears anywhere in the
// example corpus this module was grounded on (see DESIGN.md). This port
// runs the same sequential solver instead, against its own graph clone so
// the caller's shared capacities are untouched, and is intended for
// cross-checking the deterministic path on small instances only -- it is
// never invoked from the real-time loop.
type MIPSolver struct {
	Graph *graph.Graph
}

func (m MIPSolver) SolveMIP(commodities []domain.Commodity, now domain.Day) (ports.PlanResult, error) {
	g := m.Graph.Clone()
	ordered := make([]domain.Commodity, len(commodities))
	copy(ordered, commodities)
	return SolveSequential(g, ordered, now), nil
}
