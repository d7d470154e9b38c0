// Package realtime implements the day-by-day rolling scheduler: each day
// it replans every commodity against the planned-capacity graph, commits
// only that day's moves against whichever trucks actually realised, and
// carries every other vehicle forward to be replanned tomorrow.
package realtime

import "vehicle-transport-planner/internal/domain"

// CurrentLocation derives a vehicle's node in the time-expanded graph from
// the trucks committed to it so far: the end location of the last
// committed truck, on that truck's arrival day, or (available day,
// origin) if nothing has been committed yet. A truck landing anywhere
// but v's destination dealer picks up the mandatory one-day rest (spec
// §4.7.2), matching the same rule internal/graph.Build applies to every
// truck arc. Truck.Segment carries only location names, not kind, but
// location names are globally unique, so comparing against
// v.DestinationDealer.Name is a reliable dealer check without needing a
// full location lookup here.
func CurrentLocation(v domain.Vehicle, committed []domain.Truck) domain.Node {
	if len(committed) == 0 {
		return domain.NormalNode(v.AvailableDay, v.OriginPlant.Name)
	}
	last := committed[len(committed)-1]
	arrival := last.ArrivalDay
	if last.Segment.End != v.DestinationDealer.Name {
		arrival++
	}
	return domain.NormalNode(arrival, last.Segment.End)
}
