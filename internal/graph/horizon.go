// Package graph builds and mutates the time-expanded multicommodity flow
// network of spec §4.2/§4.3: one NORMAL node per (day, location), truck
// arcs between them, waiting arcs joining consecutive days at the same
// location, and per-dealer DELAY_FIXED/DELAY_VARIABLE auxiliary tracks that
// let the flow "go back in time" to the due-day sink while accruing the
// piecewise-linear lateness penalty.
package graph

import "vehicle-transport-planner/internal/domain"

// Horizon is the inclusive [First, Last] day range the graph spans: the
// earliest vehicle-available or truck-departure day through the latest
// vehicle-due or truck-arrival day.
type Horizon struct {
	First domain.Day
	Last  domain.Day
}

// ComputeHorizon derives the horizon from the vehicles and trucks that will
// populate the graph (spec §4.2). It panics if given no vehicles and no
// trucks, since a horizon is undefined without at least one of either.
func ComputeHorizon(vehicles []domain.Vehicle, trucks []domain.Truck) Horizon {
	first, last := domain.Day(0), domain.Day(0)
	seen := false

	consider := func(d domain.Day) {
		if !seen {
			first, last = d, d
			seen = true
			return
		}
		if d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}

	for _, v := range vehicles {
		consider(v.AvailableDay)
		consider(v.DueDay)
	}
	for _, t := range trucks {
		consider(t.DepartureDay)
		consider(t.ArrivalDay)
	}

	if !seen {
		panic("graph: ComputeHorizon called with no vehicles and no trucks")
	}
	return Horizon{First: first, Last: last}
}

// Days returns every day in the horizon, ascending.
func (h Horizon) Days() []domain.Day {
	days := make([]domain.Day, 0, h.Last.Sub(h.First)+1)
	for d := h.First; d <= h.Last; d++ {
		days = append(days, d)
	}
	return days
}
