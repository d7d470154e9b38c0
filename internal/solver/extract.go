package solver

import (
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
)

// defaultPlanningNotificationDays mirrors config.CostModel.PlanningNotificationDays;
// it is threaded through explicitly rather than imported to keep solver
// free of a dependency on internal/config.
const defaultPlanningNotificationDays = 7

// extractCommodity greedily walks every vehicle of c through the flow
// solved for it, mirroring the reference extractor: only arcs that change
// location (truck arcs -- the only ones with a non-zero ordinal) are
// considered; same-location arcs (waiting, and the dealer delay tracks)
// are never traversed explicitly. Once a vehicle reaches its destination
// location, on whatever day, extraction stops and the delay is read
// directly off that day versus the commodity's due day (spec §4.5).
func extractCommodity(g *graph.Graph, flow map[FlowArcKey]int, c domain.Commodity, now domain.Day) []domain.VehicleAssignment {
	counts, byFrom := truckArcIndex(flow)

	assignments := make([]domain.VehicleAssignment, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		cur := domain.NormalNode(v.AvailableDay, v.OriginPlant.Name)
		var path []domain.TruckID

		for cur.Location != c.Dealer.Name {
			key, ok := nextTruckArc(byFrom, counts, cur)
			if !ok {
				cur = domain.NormalNode(cur.Day+1, cur.Location)
				continue
			}
			counts[key]--
			g.DecrementCapacity(key.From, key.To, key.Ordinal, 1)
			path = append(path, domain.TruckID{
				Segment:      domain.Segment{Start: key.From.Location, End: key.To.Location},
				Ordinal:      key.Ordinal,
				DepartureDay: key.From.Day,
			})
			cur = key.To
		}

		delayedBy := 0
		if cur.Day > c.Key.DueDay {
			delayedBy = cur.Day.Sub(c.Key.DueDay)
		}
		plannedDelayed := delayedBy > 0 && c.Key.DueDay.Sub(now) >= defaultPlanningNotificationDays

		assignments = append(assignments, domain.VehicleAssignment{
			VehicleID:      v.ID,
			Path:           path,
			PlannedDelayed: plannedDelayed,
			DelayedBy:      delayedBy,
		})
	}
	return assignments
}

func nextTruckArc(byFrom map[domain.Node][]FlowArcKey, counts map[FlowArcKey]int, cur domain.Node) (FlowArcKey, bool) {
	for _, key := range byFrom[cur] {
		if counts[key] > 0 {
			return key, true
		}
	}
	return FlowArcKey{}, false
}

// truckArcIndex filters flow down to its truck arcs (non-zero ordinal,
// positive flow) and groups them by origin node, sorted by arrival day
// then ordinal so callers always walk the earliest-arriving option first.
// Shared by the deterministic extractor above and the real-time
// projection in plan.go, which both need the identical walk but differ in
// whether the walk is allowed to mutate the persistent graph.
func truckArcIndex(flow map[FlowArcKey]int) (map[FlowArcKey]int, map[domain.Node][]FlowArcKey) {
	counts := make(map[FlowArcKey]int, len(flow))
	byFrom := make(map[domain.Node][]FlowArcKey)
	for k, v := range flow {
		if v <= 0 || k.Ordinal == 0 {
			continue
		}
		counts[k] = v
		byFrom[k.From] = append(byFrom[k.From], k)
	}
	for from, keys := range byFrom {
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].To.Day != keys[j].To.Day {
				return keys[i].To.Day < keys[j].To.Day
			}
			return keys[i].Ordinal < keys[j].Ordinal
		})
		byFrom[from] = keys
	}
	return counts, byFrom
}
