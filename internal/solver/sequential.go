package solver

import (
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
)

// SolveSequential processes commodities one at a time against the shared
// graph g, in the order given, decrementing g's residual capacities as
// each commodity's flow is extracted into vehicle/truck assignments (spec
// §4.4). now is the reference day used to classify delay as planned vs
// unplanned at extraction time (spec §4.5).
//
// Each commodity's min-cost flow competes only with commodities solved
// before it for shared capacity; order therefore changes the result, which
// is the documented, intentional tradeoff of this decomposition (spec §9).
func SolveSequential(g *graph.Graph, commodities []domain.Commodity, now domain.Day) ports.PlanResult {
	result := ports.PlanResult{
		TruckAssignments: make(map[domain.TruckID]domain.TruckAssignment),
	}

	for _, c := range commodities {
		sink := domain.NormalNode(c.Key.DueDay, c.Dealer.Name)
		sources := make(map[domain.Node]int)
		for _, v := range c.Vehicles {
			sources[domain.NormalNode(v.AvailableDay, v.OriginPlant.Name)]++
		}

		roots := make([]domain.Node, 0, len(sources)+1)
		for n := range sources {
			roots = append(roots, n)
		}
		roots = append(roots, sink)

		res := solve(g, roots, sources, sink, c.Demand())

		assignments := extractCommodity(g, res.flow, c, now)
		for _, a := range assignments {
			result.VehicleAssignments = append(result.VehicleAssignments, a)
			for _, truckID := range a.Path {
				ta := result.TruckAssignments[truckID]
				ta.TruckID = truckID
				ta.Load = append(ta.Load, a.VehicleID)
				result.TruckAssignments[truckID] = ta
			}
		}
	}

	sort.Slice(result.VehicleAssignments, func(i, j int) bool {
		return result.VehicleAssignments[i].VehicleID < result.VehicleAssignments[j].VehicleID
	})
	return result
}
