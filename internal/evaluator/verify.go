package evaluator

import (
	"fmt"

	"vehicle-transport-planner/internal/domain"
)

// VerifyReport is the verifier's output: whether every invariant held,
// the individual violation messages if not, and how many vehicles never
// reached their destination (a plan can be "valid" -- no capacity or
// contiguity breach -- and still leave vehicles stranded at the horizon
// end).
type VerifyReport struct {
	OK               bool
	Violations       []string
	NonArrivingCount int
}

func (r *VerifyReport) fail(format string, args ...interface{}) {
	r.OK = false
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}

// Verify checks every invariant the planner must never violate: truck
// loads within capacity, mutual consistency between each vehicle's path
// and the truck loads it implies, path contiguity/monotonicity, and that
// delayed_by and planned_delayed were computed correctly from the final
// arrival day. It never mutates its inputs.
func Verify(assignments []domain.VehicleAssignment, truckAssignments map[domain.TruckID]domain.TruckAssignment, trucks map[domain.TruckID]domain.Truck, vehicles map[int]domain.Vehicle) VerifyReport {
	report := VerifyReport{OK: true}

	verifyCapacity(&report, truckAssignments, trucks)
	verifyMutualConsistency(&report, assignments, truckAssignments)
	verifyPaths(&report, assignments, trucks, vehicles)

	return report
}

func verifyCapacity(report *VerifyReport, truckAssignments map[domain.TruckID]domain.TruckAssignment, trucks map[domain.TruckID]domain.Truck) {
	for id, ta := range truckAssignments {
		t, ok := trucks[id]
		if !ok {
			report.fail("truck %s: assignment references unknown truck", id)
			continue
		}
		if len(ta.Load) > t.Capacity {
			report.fail("truck %s: load %d exceeds capacity %d", id, len(ta.Load), t.Capacity)
		}
	}
}

// verifyMutualConsistency checks vehicle_id in TruckAssignment[T].load iff
// T in VehicleAssignment[vehicle_id].path, in both directions.
func verifyMutualConsistency(report *VerifyReport, assignments []domain.VehicleAssignment, truckAssignments map[domain.TruckID]domain.TruckAssignment) {
	inPath := make(map[domain.TruckID]map[int]bool)
	for _, a := range assignments {
		for _, id := range a.Path {
			if inPath[id] == nil {
				inPath[id] = make(map[int]bool)
			}
			inPath[id][a.VehicleID] = true
		}
	}

	for id, ta := range truckAssignments {
		loaded := make(map[int]bool, len(ta.Load))
		for _, vid := range ta.Load {
			loaded[vid] = true
			if !inPath[id][vid] {
				report.fail("truck %s: load includes vehicle %d whose path does not use it", id, vid)
			}
		}
		for vid := range inPath[id] {
			if !loaded[vid] {
				report.fail("vehicle %d: rides truck %s but is absent from its load", vid, id)
			}
		}
	}
}

func verifyPaths(report *VerifyReport, assignments []domain.VehicleAssignment, trucks map[domain.TruckID]domain.Truck, vehicles map[int]domain.Vehicle) {
	for _, a := range assignments {
		v, ok := vehicles[a.VehicleID]
		if !ok {
			continue
		}
		if a.DelayedBy < 0 {
			report.fail("vehicle %d: negative delay %d", a.VehicleID, a.DelayedBy)
		}

		if len(a.Path) == 0 {
			report.NonArrivingCount++
			continue
		}

		location := v.OriginPlant.Name
		prevArrival := v.AvailableDay
		arrivedViaTruck := false
		var lastArrival domain.Day

		for i, id := range a.Path {
			t, ok := trucks[id]
			if !ok {
				report.fail("vehicle %d: path references unknown truck %s", a.VehicleID, id)
				continue
			}
			if t.Segment.Start != location {
				report.fail("vehicle %d: path step %d is not contiguous in space (at %q, truck starts at %q)", a.VehicleID, i, location, t.Segment.Start)
			}
			minDeparture := prevArrival
			if arrivedViaTruck && location != v.DestinationDealer.Name {
				minDeparture = prevArrival.Add(1)
			}
			if t.DepartureDay < minDeparture {
				report.fail("vehicle %d: path step %d departs (day %d) before the vehicle is free to depart (day %d, respecting the non-dealer rest day)", a.VehicleID, i, t.DepartureDay, minDeparture)
			}
			location = t.Segment.End
			prevArrival = t.ArrivalDay
			arrivedViaTruck = true
			lastArrival = t.ArrivalDay
		}

		if location != v.DestinationDealer.Name {
			report.fail("vehicle %d: path ends at %q, not destination %q", a.VehicleID, location, v.DestinationDealer.Name)
			report.NonArrivingCount++
			continue
		}
		if first, ok := trucks[a.Path[0]]; ok {
			if first.DepartureDay < v.AvailableDay || first.Segment.Start != v.OriginPlant.Name {
				report.fail("vehicle %d: path does not start at origin no earlier than available day", a.VehicleID)
			}
		}

		wantDelay := 0
		if lastArrival > v.DueDay {
			wantDelay = lastArrival.Sub(v.DueDay)
		}
		if a.DelayedBy != wantDelay {
			report.fail("vehicle %d: delayed_by=%d does not match arrival day (want %d)", a.VehicleID, a.DelayedBy, wantDelay)
		}
		if a.PlannedDelayed && a.DelayedBy <= 0 {
			report.fail("vehicle %d: planned_delayed but not actually delayed", a.VehicleID)
		}
	}
}
