package graph

import "vehicle-transport-planner/internal/domain"

// DelayCostModel is the subset of config.CostModel the builder needs to
// price the dealer delay tracks (spec §4.3).
type DelayCostModel struct {
	FixedPlannedDelayCost    int
	FixedUnplannedDelayCost  int
	CostPerPlannedDelayDay   int
	CostPerUnplannedDelayDay int
	PlanningNotificationDays int
	FreeTruckDayBiasK        int
}

// Build constructs the full time-expanded network: one NORMAL node per
// (day, location) in the horizon, an arc per truck, waiting arcs joining
// consecutive days at every location, and the DELAY_FIXED/DELAY_VARIABLE
// auxiliary tracks at every dealer location and every day in the horizon.
//
// now is the reference day used to classify each delay-track day as
// unplanned (day < now+PlanningNotificationDays) or planned (day >= that
// boundary); it is the "today" of a real-time run, or the horizon's first
// day for a one-shot deterministic plan.
//
// unboundedCapacity caps the practically-infinite waiting/delay arcs; the
// reference implementation uses the vehicle count, since no single arc
// can ever need to carry more flow than that.
func Build(locations []domain.Location, trucks []domain.Truck, h Horizon, now domain.Day, cost DelayCostModel, unboundedCapacity int) *Graph {
	g := New()
	byName := LocationsByName(locations)

	for _, t := range trucks {
		from := domain.NormalNode(t.DepartureDay, t.Segment.Start)
		to := domain.NormalNode(ArrivalDay(t, byName), t.Segment.End)
		weight := t.Price
		if weight == 0 {
			weight = cost.FreeTruckDayBiasK * t.ArrivalDay.Sub(h.First)
		}
		g.AddArc(from, to, t.Ordinal, t.Capacity, weight)
	}

	for _, loc := range locations {
		for d := h.First; d < h.Last; d++ {
			from := domain.NormalNode(d, loc.Name)
			to := domain.NormalNode(d+1, loc.Name)
			g.AddArc(from, to, 0, unboundedCapacity, 0)
		}
	}

	boundary := now.Add(cost.PlanningNotificationDays)
	for _, loc := range locations {
		if !loc.IsDealer() {
			continue
		}
		for _, d := range h.Days() {
			buildDealerDelayArcs(g, loc.Name, d, h.First, boundary, cost, unboundedCapacity)
		}
	}

	return g
}

// LocationsByName indexes locations by name, for the dealer/non-dealer
// lookup ArrivalDay needs. Exported so callers outside this package (the
// real-time scheduler's day-by-day graph surgery) can apply the identical
// rest-day rule against the same location set a graph was Built from.
func LocationsByName(locations []domain.Location) map[string]domain.Location {
	byName := make(map[string]domain.Location, len(locations))
	for _, loc := range locations {
		byName[loc.Name] = loc
	}
	return byName
}

// ArrivalDay applies the mandatory one-day rest at non-dealer endpoints
// (spec §4.3): a truck landing at a dealer is available on its raw
// arrival day, but one landing at a plant or intermediate terminal is
// only available to continue the next day.
func ArrivalDay(t domain.Truck, byName map[string]domain.Location) domain.Day {
	if byName[t.Segment.End].IsDealer() {
		return t.ArrivalDay
	}
	return t.ArrivalDay + 1
}

func delayFixedNode(d domain.Day, loc string) domain.Node {
	return domain.Node{Day: d, Location: loc, Role: domain.DelayFixed}
}

func delayVariableNode(d domain.Day, loc string) domain.Node {
	return domain.Node{Day: d, Location: loc, Role: domain.DelayVariable}
}

// buildDealerDelayArcs wires the delay nodes for a single (day, dealer)
// pair, following the two regimes of spec §4.3.
func buildDealerDelayArcs(g *Graph, loc string, d, first, boundary domain.Day, cost DelayCostModel, unbounded int) {
	normal := domain.NormalNode(d, loc)
	fixed := delayFixedNode(d, loc)

	if d < boundary {
		// Unplanned regime: a single backward-chaining track.
		g.AddArc(normal, fixed, 0, unbounded, cost.FixedUnplannedDelayCost)
		g.AddArc(fixed, normal, 0, unbounded, 0)
		if d != first {
			g.AddArc(fixed, delayFixedNode(d-1, loc), 0, unbounded, cost.CostPerUnplannedDelayDay)
		}
		return
	}

	// Planned regime: two parallel tracks, FIXED (entered at the planned
	// fixed cost, chained at the planned per-day cost) and VARIABLE
	// (entered at the unplanned fixed cost, chained at the unplanned
	// per-day cost). At the boundary day FIXED has no backward arc and
	// VARIABLE merges into the unplanned FIXED track.
	g.AddArc(normal, fixed, 0, unbounded, cost.FixedPlannedDelayCost)
	g.AddArc(fixed, normal, 0, unbounded, 0)

	variable := delayVariableNode(d, loc)
	g.AddArc(normal, variable, 0, unbounded, cost.FixedUnplannedDelayCost)

	if d != boundary {
		g.AddArc(fixed, delayFixedNode(d-1, loc), 0, unbounded, cost.CostPerPlannedDelayDay)
		g.AddArc(variable, delayVariableNode(d-1, loc), 0, unbounded, cost.CostPerUnplannedDelayDay)
	} else {
		g.AddArc(variable, delayFixedNode(d-1, loc), 0, unbounded, cost.CostPerUnplannedDelayDay)
	}
}
