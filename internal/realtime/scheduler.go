package realtime

import (
	"sort"

	"vehicle-transport-planner/internal/commodity"
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
	"vehicle-transport-planner/internal/solver"
)

// planningNotificationDays mirrors config.CostModel.PlanningNotificationDays,
// threaded through explicitly (as internal/solver's extractor does) to
// keep this package free of a dependency on internal/config.
const planningNotificationDays = 7

// vehicleState is the scheduler's running record for one vehicle: the
// trucks actually committed to it so far, whether it has reached its
// destination, and whether a delay has already been announced.
type vehicleState struct {
	committed      []domain.Truck
	done           bool
	plannedDelayed bool
}

// Run simulates the rolling scheduler over every day of h, given the
// planned (possibly derated) and realised truck schedules. g is mutated
// in place as realised trucks are installed day by day; callers that need
// the pre-run graph intact should pass g.Clone().
//
// Each day: every commodity is replanned from scratch against g's
// capacities (restored at the end of the day, so today's replan never
// leaks into tomorrow's), today's planned first move is committed against
// whichever realised truck actually exists, and the graph is permanently
// advanced -- today's planned arcs are replaced by today's realised ones.
func Run(g *graph.Graph, h graph.Horizon, locations []domain.Location, vehicles []domain.Vehicle, plannedTrucks, realisedTrucks []domain.Truck, order domain.GroupOrder) ports.PlanResult {
	commodities := commodity.Group(vehicles, order)
	byName := graph.LocationsByName(locations)

	states := make(map[int]*vehicleState, len(vehicles))
	for _, v := range vehicles {
		states[v.ID] = &vehicleState{}
	}

	plannedByDay := make(map[domain.Day][]domain.Truck)
	for _, t := range plannedTrucks {
		plannedByDay[t.DepartureDay] = append(plannedByDay[t.DepartureDay], t)
	}
	realisedByDay := make(map[domain.Day][]domain.Truck)
	for _, t := range realisedTrucks {
		realisedByDay[t.DepartureDay] = append(realisedByDay[t.DepartureDay], t)
	}

	for _, now := range h.Days() {
		runDay(g, h, now, byName, commodities, states, plannedByDay[now], realisedByDay[now])
	}

	return finalize(commodities, states)
}

func runDay(g *graph.Graph, h graph.Horizon, now domain.Day, byName map[string]domain.Location, commodities []domain.Commodity, states map[int]*vehicleState, plannedToday, realisedToday []domain.Truck) {
	snapshot := g.Snapshot()
	plans := make(map[int]solver.VehiclePlan, len(states))

	for _, c := range commodities {
		live := liveVehicles(c, states)
		if len(live) == 0 {
			continue
		}

		locate := func(v domain.Vehicle) domain.Node {
			return CurrentLocation(v, states[v.ID].committed)
		}

		sources := make(map[domain.Node]int)
		for _, v := range live {
			sources[locate(v)]++
		}
		sink := domain.NormalNode(c.Key.DueDay, c.Dealer.Name)
		flow := solver.SolveCommodityFlow(g, sources, sink, len(live))

		for _, p := range solver.ProjectCommodity(flow, live, locate, c.Dealer.Name, h.Last) {
			plans[p.VehicleID] = p
		}

		// Decrement shared residual capacity so later commodities solved
		// today see this commodity's usage, then undo it after the day's
		// planning pass -- only today's committed moves persist.
		for key, units := range flow {
			if units <= 0 || key.Ordinal == 0 {
				continue
			}
			g.DecrementCapacity(key.From, key.To, key.Ordinal, units)
		}

		announcePlannedDelays(live, plans, now, states)
	}

	g.Restore(snapshot)

	commitToday(g, now, commodities, states, plans, realisedToday)
	advanceGraph(g, now, byName, plannedToday, realisedToday, states)
}

func liveVehicles(c domain.Commodity, states map[int]*vehicleState) []domain.Vehicle {
	live := make([]domain.Vehicle, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if !states[v.ID].done {
			live = append(live, v)
		}
	}
	return live
}

// announcePlannedDelays sets the idempotent early-warning flag: once a
// vehicle is projected to arrive after its due day, and that due day is
// still at least planningNotificationDays away, the delay is announced
// and the flag never clears, even if a later replan finds an on-time
// path.
func announcePlannedDelays(live []domain.Vehicle, plans map[int]solver.VehiclePlan, now domain.Day, states map[int]*vehicleState) {
	for _, v := range live {
		st := states[v.ID]
		if st.plannedDelayed {
			continue
		}
		p, ok := plans[v.ID]
		if !ok || !p.Reached {
			continue
		}
		if p.Arrival > v.DueDay && v.DueDay.Sub(now) >= planningNotificationDays {
			st.plannedDelayed = true
		}
	}
}

// commitToday turns today's projected first moves into real commitments
// against realised trucks, in commodity order (spec's documented,
// intentional ordering dependency -- earlier commodities claim realised
// capacity first).
func commitToday(g *graph.Graph, now domain.Day, commodities []domain.Commodity, states map[int]*vehicleState, plans map[int]solver.VehiclePlan, realisedToday []domain.Truck) {
	load := make(map[domain.TruckID]int)

	for _, c := range commodities {
		for _, v := range c.Vehicles {
			st := states[v.ID]
			if st.done {
				continue
			}
			plan, ok := plans[v.ID]
			if !ok || len(plan.Path) == 0 {
				continue // no demand solved for v today, or no move at all
			}
			first := plan.Path[0]
			if first.From.Day != now {
				continue // NoAssignmentToday: the planned first move is a later day
			}

			plannedID := domain.TruckID{
				Segment:      domain.Segment{Start: first.From.Location, End: first.To.Location},
				Ordinal:      first.Ordinal,
				DepartureDay: first.From.Day,
			}

			truck, ok := realisedWithRoom(plannedID, realisedToday, load)
			if !ok {
				cur := CurrentLocation(v, st.committed)
				truck, ok = findReassignment(g, cur, v, now, realisedToday, load)
			}
			if !ok {
				continue // v stays at its current location today
			}

			st.committed = append(st.committed, truck)
			load[truck.ID()]++
			if truck.Segment.End == v.DestinationDealer.Name {
				st.done = true
			}
		}
	}
}

func realisedWithRoom(id domain.TruckID, today []domain.Truck, load map[domain.TruckID]int) (domain.Truck, bool) {
	for _, t := range today {
		if t.ID() == id && load[t.ID()] < t.Capacity {
			return t, true
		}
	}
	return domain.Truck{}, false
}

// advanceGraph permanently retires today's planned-truck arcs and
// installs today's realised ones in their place, net of whatever load was
// actually committed to them today. A planned truck with no realised
// counterpart is removed outright; a realised truck with no planned
// counterpart (an unannounced extra) is added. Arc endpoints are keyed on
// graph.ArrivalDay, the same rest-day-adjusted arrival graph.Build used to
// place the arc in the first place -- using the raw ArrivalDay here would
// target the wrong node for any truck ending at a non-dealer location.
func advanceGraph(g *graph.Graph, now domain.Day, byName map[string]domain.Location, plannedToday, realisedToday []domain.Truck, states map[int]*vehicleState) {
	committedToday := make(map[domain.TruckID]int)
	for _, st := range states {
		for _, t := range st.committed {
			if t.DepartureDay == now {
				committedToday[t.ID()]++
			}
		}
	}

	realisedByID := make(map[domain.TruckID]domain.Truck, len(realisedToday))
	for _, t := range realisedToday {
		realisedByID[t.ID()] = t
	}
	plannedIDs := make(map[domain.TruckID]bool, len(plannedToday))

	for _, t := range plannedToday {
		plannedIDs[t.ID()] = true
		from := domain.NormalNode(t.DepartureDay, t.Segment.Start)
		to := domain.NormalNode(graph.ArrivalDay(t, byName), t.Segment.End)
		if r, ok := realisedByID[t.ID()]; ok {
			g.ReplaceTruckArc(from, to, t.Ordinal, residual(r.Capacity, committedToday[t.ID()]), r.Price)
		} else {
			g.RemoveArc(from, to, t.Ordinal)
		}
	}

	for _, t := range realisedToday {
		if plannedIDs[t.ID()] {
			continue
		}
		from := domain.NormalNode(t.DepartureDay, t.Segment.Start)
		to := domain.NormalNode(graph.ArrivalDay(t, byName), t.Segment.End)
		g.ReplaceTruckArc(from, to, t.Ordinal, residual(t.Capacity, committedToday[t.ID()]), t.Price)
	}
}

func residual(capacity, committed int) int {
	if r := capacity - committed; r > 0 {
		return r
	}
	return 0
}

func finalize(commodities []domain.Commodity, states map[int]*vehicleState) ports.PlanResult {
	result := ports.PlanResult{TruckAssignments: make(map[domain.TruckID]domain.TruckAssignment)}

	for _, c := range commodities {
		for _, v := range c.Vehicles {
			st := states[v.ID]
			path := make([]domain.TruckID, 0, len(st.committed))
			for _, t := range st.committed {
				path = append(path, t.ID())
			}
			arrival := CurrentLocation(v, st.committed).Day

			delayedBy := 0
			if arrival > v.DueDay {
				delayedBy = arrival.Sub(v.DueDay)
			}

			result.VehicleAssignments = append(result.VehicleAssignments, domain.VehicleAssignment{
				VehicleID:      v.ID,
				Path:           path,
				PlannedDelayed: st.plannedDelayed,
				DelayedBy:      delayedBy,
			})
			for _, id := range path {
				ta := result.TruckAssignments[id]
				ta.TruckID = id
				ta.Load = append(ta.Load, v.ID)
				result.TruckAssignments[id] = ta
			}
		}
	}

	sort.Slice(result.VehicleAssignments, func(i, j int) bool {
		return result.VehicleAssignments[i].VehicleID < result.VehicleAssignments[j].VehicleID
	})
	return result
}
