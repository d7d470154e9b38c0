// Package baseline holds planner variants that never run inside
// internal/solver or internal/realtime: a pure greedy assigner, a
// candidate-path greedy variant, and an uncapacitated-flow lower bound.
// They exist to give the CLI's -solvers flag (spec §6) comparison points
// against the deterministic min-cost-flow planner, the way the reference
// implementation ships both its heuristics and its lower bounds alongside
// the flow solver rather than as a separate project.
package baseline

import (
	"vehicle-transport-planner/internal/commodity"
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
	"vehicle-transport-planner/internal/solver"
)

// UncapacitatedFlowLowerBound inflates every truck's capacity and price by
// an integer factor large enough that it holds the entire vehicle fleet
// at once, then reuses the exact deterministic flow pipeline
// (internal/commodity.Group, internal/graph.Build, internal/solver.SolveSequential)
// unchanged.
//
// This is not a distinct algorithm: it is the same pipeline run against a
// relaxation of the capacity constraints, which makes it a valid lower
// bound on the true optimum's cost (any capacity-feasible plan is also
// feasible here, at no greater cost) while remaining cheap to compute.
func UncapacitatedFlowLowerBound(locations []domain.Location, vehicles []domain.Vehicle, trucks []domain.Truck, order domain.GroupOrder, now domain.Day, cost graph.DelayCostModel) ports.PlanResult {
	inflated := inflateCapacities(trucks, len(vehicles))

	h := graph.ComputeHorizon(vehicles, inflated)
	g := graph.Build(locations, inflated, h, now, cost, len(vehicles))

	commodities := commodity.Group(vehicles, order)
	return solver.SolveSequential(g, commodities, now)
}

// inflateCapacities returns a copy of trucks with capacity and price each
// scaled by (numVehicles / capacity) + 1, a factor guaranteeing every
// truck alone could carry the entire fleet (one more than needed when
// capacity divides numVehicles). Free trucks (capacity or
// price of 0 is still possible; only capacity drives the factor) are
// scaled the same way so a zero-price truck stays free.
func inflateCapacities(trucks []domain.Truck, numVehicles int) []domain.Truck {
	out := make([]domain.Truck, len(trucks))
	for i, t := range trucks {
		factor := 1
		if t.Capacity > 0 {
			factor = numVehicles/t.Capacity + 1
		}
		t.Capacity *= factor
		t.Price *= factor
		out[i] = t
	}
	return out
}
