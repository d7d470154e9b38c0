package solver

import (
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
)

// SolveCommodityFlow runs one min-cost flow for an explicit source
// multiset and sink, without touching g's persistent arc capacities. The
// deterministic path always sources a commodity from its vehicles'
// original (available_day, origin) nodes via SolveSequential; the
// real-time scheduler instead needs to source from each vehicle's
// *current* location, which changes day by day, so it calls this entry
// point directly and manages decrement/restore itself across the many
// per-day replans of one run.
func SolveCommodityFlow(g *graph.Graph, sources map[domain.Node]int, sink domain.Node, demand int) map[FlowArcKey]int {
	roots := make([]domain.Node, 0, len(sources)+1)
	for n := range sources {
		roots = append(roots, n)
	}
	roots = append(roots, sink)
	return solve(g, roots, sources, sink, demand).flow
}

// VehiclePlan is one vehicle's projected path through a commodity's flow,
// as computed by ProjectCommodity.
type VehiclePlan struct {
	VehicleID int
	Path      []FlowArcKey
	Arrival   domain.Day
	Reached   bool
}

// ProjectCommodity walks every vehicle through flow exactly as
// extractCommodity does -- following only truck arcs, skipping waiting
// and delay arcs, stopping once a vehicle's location matches destName --
// but against a private copy of flow's counts, so nothing here ever
// mutates the caller's graph or flow map. start supplies each vehicle's
// current node (its original origin in a one-shot plan, or wherever the
// real-time scheduler has carried it so far). The walk gives up once a
// vehicle's day exceeds maxDay, reporting Reached = false: this can only
// happen when the flow genuinely could not route that vehicle's demand
// within the horizon.
func ProjectCommodity(flow map[FlowArcKey]int, vehicles []domain.Vehicle, start func(domain.Vehicle) domain.Node, destName string, maxDay domain.Day) []VehiclePlan {
	counts, byFrom := truckArcIndex(flow)

	plans := make([]VehiclePlan, 0, len(vehicles))
	for _, v := range vehicles {
		cur := start(v)
		var path []FlowArcKey
		reached := cur.Location == destName

		for !reached && cur.Day <= maxDay {
			key, ok := nextTruckArc(byFrom, counts, cur)
			if !ok {
				cur = domain.NormalNode(cur.Day+1, cur.Location)
				continue
			}
			counts[key]--
			path = append(path, key)
			cur = key.To
			reached = cur.Location == destName
		}

		plans = append(plans, VehiclePlan{VehicleID: v.ID, Path: path, Arrival: cur.Day, Reached: reached})
	}
	return plans
}
