package evaluator

import (
	"strings"
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func TestSummarizeCountsDelaysAndTruckUsage(t *testing.T) {
	truck := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 2, Price: 100,
	}
	trucks := map[domain.TruckID]domain.Truck{truck.ID(): truck}
	truckAssignments := map[domain.TruckID]domain.TruckAssignment{
		truck.ID(): {TruckID: truck.ID(), Load: []int{1, 2}},
	}
	assignments := []domain.VehicleAssignment{
		{VehicleID: 1, PlannedDelayed: true, DelayedBy: 3},
		{VehicleID: 2, PlannedDelayed: false, DelayedBy: 0},
		{VehicleID: 3, PlannedDelayed: false, DelayedBy: 4},
	}
	cost := CostModel{
		FixedPlannedDelayCost:    200,
		FixedUnplannedDelayCost:  500,
		CostPerPlannedDelayDay:   50,
		CostPerUnplannedDelayDay: 100,
	}

	s := Summarize(assignments, truckAssignments, trucks, cost)

	if s.DelayedCars != 2 {
		t.Fatalf("DelayedCars = %d, want 2", s.DelayedCars)
	}
	if s.PlannedDelayedCars != 1 || s.PlannedDelayedCarsActuallyDelayed != 1 {
		t.Fatalf("planned delay counts = %d/%d, want 1/1", s.PlannedDelayedCarsActuallyDelayed, s.PlannedDelayedCars)
	}
	if s.VehiclesOnPaidTrucks != 2 {
		t.Fatalf("VehiclesOnPaidTrucks = %d, want 2", s.VehiclesOnPaidTrucks)
	}
	wantDelayCost := 200 + 3*50 + 500 + 4*100
	if s.TotalDelayCost != wantDelayCost {
		t.Fatalf("TotalDelayCost = %d, want %d", s.TotalDelayCost, wantDelayCost)
	}
	if s.PricePaidForTrucks != 100.0 {
		t.Fatalf("PricePaidForTrucks = %v, want 100", s.PricePaidForTrucks)
	}
}

func TestPrettyRendersAllLines(t *testing.T) {
	s := Summary{DelayedCars: 1, PlannedDelayedCars: 1, PlannedDelayedCarsActuallyDelayed: 1, VehiclesOnPaidTrucks: 3, PricePaidForTrucks: 42.5}
	out := s.Pretty()

	for _, want := range []string{"Metrics:", "delayed cars", "planned delayed cars", "not free", "Cost of delays", "Price paid for trucks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Pretty() output missing %q:\n%s", want, out)
		}
	}
}
