package realtime

import (
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
)

// reassignmentSlackDays bounds the commit-time fallback's forward
// feasibility check: a substitute truck only qualifies if its end
// location can still reach the vehicle's destination by due day plus
// this many days. The source's own commit step left this branch
// unfinished (an incomplete match over the planned-assignment cases);
// this is the intended policy in its place.
const reassignmentSlackDays = 7

// findReassignment implements the commit-time local-repair policy: when
// today's planned truck is unavailable or full, scan the realised trucks
// departing today from the vehicle's current location, in increasing
// planned price and then increasing ordinal, and take the first one with
// a free seat whose end location can still reach the vehicle's
// destination within due day + slack. It never triggers a full replan.
func findReassignment(g *graph.Graph, cur domain.Node, v domain.Vehicle, now domain.Day, today []domain.Truck, load map[domain.TruckID]int) (domain.Truck, bool) {
	var candidates []domain.Truck
	for _, t := range today {
		if t.Segment.Start != cur.Location || t.DepartureDay != now {
			continue
		}
		if load[t.ID()] >= t.Capacity {
			continue
		}
		deadline := v.DueDay.Add(reassignmentSlackDays)
		landing := t.ArrivalDay
		if t.Segment.End != v.DestinationDealer.Name {
			landing++
		}
		if !feasible(g, domain.NormalNode(landing, t.Segment.End), v.DestinationDealer.Name, deadline) {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return domain.Truck{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Price != candidates[j].Price {
			return candidates[i].Price < candidates[j].Price
		}
		return candidates[i].Ordinal < candidates[j].Ordinal
	})
	return candidates[0], true
}

// feasible reports whether destName is reachable from `from` by day
// deadline over g's current positive-capacity arcs. Plain breadth-first
// search: this only ever runs over the handful of fallback candidates,
// never in the per-commodity solve's hot path.
func feasible(g *graph.Graph, from domain.Node, destName string, deadline domain.Day) bool {
	if from.Location == destName {
		return from.Day <= deadline
	}
	if from.Day > deadline {
		return false
	}

	visited := map[domain.Node]bool{from: true}
	queue := []domain.Node{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, a := range g.Out(n) {
			if a.Capacity <= 0 || a.To.Day > deadline || visited[a.To] {
				continue
			}
			if a.To.Location == destName {
				return true
			}
			visited[a.To] = true
			queue = append(queue, a.To)
		}
	}
	return false
}
