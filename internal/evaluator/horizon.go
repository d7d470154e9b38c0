package evaluator

import "vehicle-transport-planner/internal/domain"

// RemoveHorizon filters an assignment pair down to the vehicles whose
// available day falls within [firstAvailable+front, lastAvailable-back]
// (first/lastAvailable taken over vehicles), and the truck assignments
// whose truck departs within that same window -- the run's ramp-up and
// ramp-down days are not representative of steady-state cost, so fair
// cross-run comparison discards them. It is a pure filter: the result is
// not generally a valid plan anymore (a kept vehicle's path may reference
// a truck that was just filtered out), so it must only be used after
// validity has already been checked, for scoring only. With front and back
// both 0 it returns copies of both inputs unchanged.
func RemoveHorizon(assignments []domain.VehicleAssignment, vehicles []domain.Vehicle, truckAssignments map[domain.TruckID]domain.TruckAssignment, trucks map[domain.TruckID]domain.Truck, front, back int) ([]domain.VehicleAssignment, map[domain.TruckID]domain.TruckAssignment) {
	filteredTrucks := make(map[domain.TruckID]domain.TruckAssignment)
	if len(vehicles) == 0 {
		return nil, filteredTrucks
	}
	if front == 0 && back == 0 {
		for id, ta := range truckAssignments {
			filteredTrucks[id] = ta
		}
		return append([]domain.VehicleAssignment(nil), assignments...), filteredTrucks
	}

	byID := make(map[int]domain.Vehicle, len(vehicles))
	first, last := vehicles[0].AvailableDay, vehicles[0].AvailableDay
	for _, v := range vehicles {
		byID[v.ID] = v
		if v.AvailableDay < first {
			first = v.AvailableDay
		}
		if v.AvailableDay > last {
			last = v.AvailableDay
		}
	}
	lo, hi := first.Add(front), last.Add(-back)

	filteredAssignments := make([]domain.VehicleAssignment, 0, len(assignments))
	for _, a := range assignments {
		v, ok := byID[a.VehicleID]
		if ok && v.AvailableDay >= lo && v.AvailableDay <= hi {
			filteredAssignments = append(filteredAssignments, a)
		}
	}

	for id, ta := range truckAssignments {
		t, ok := trucks[id]
		if ok && t.DepartureDay >= lo && t.DepartureDay <= hi {
			filteredTrucks[id] = ta
		}
	}

	return filteredAssignments, filteredTrucks
}
