package evaluator

import (
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func TestObjectiveProratesTruckPriceByLoad(t *testing.T) {
	truck := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 4, Price: 100,
	}
	trucks := map[domain.TruckID]domain.Truck{truck.ID(): truck}
	truckAssignments := map[domain.TruckID]domain.TruckAssignment{
		truck.ID(): {TruckID: truck.ID(), Load: []int{1, 2}},
	}

	got := Objective(nil, truckAssignments, trucks, CostModel{})
	if want := 50.0; got != want {
		t.Fatalf("objective = %v, want %v", got, want)
	}
}

func TestObjectiveIgnoresEmptyTrucks(t *testing.T) {
	truck := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 4, Price: 100,
	}
	trucks := map[domain.TruckID]domain.Truck{truck.ID(): truck}
	truckAssignments := map[domain.TruckID]domain.TruckAssignment{
		truck.ID(): {TruckID: truck.ID()},
	}

	if got := Objective(nil, truckAssignments, trucks, CostModel{}); got != 0 {
		t.Fatalf("objective = %v, want 0", got)
	}
}

func TestObjectivePlannedVsUnplannedDelayCost(t *testing.T) {
	cost := CostModel{
		FixedPlannedDelayCost:    200,
		FixedUnplannedDelayCost:  500,
		CostPerPlannedDelayDay:   50,
		CostPerUnplannedDelayDay: 100,
	}
	assignments := []domain.VehicleAssignment{
		{VehicleID: 1, PlannedDelayed: true, DelayedBy: 3},
		{VehicleID: 2, PlannedDelayed: false, DelayedBy: 2},
		{VehicleID: 3, PlannedDelayed: false, DelayedBy: 0},
	}

	got := Objective(assignments, nil, nil, cost)
	want := float64(200+3*50) + float64(500+2*100)
	if got != want {
		t.Fatalf("objective = %v, want %v", got, want)
	}
}
