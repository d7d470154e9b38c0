package baseline

import (
	"testing"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
)

var testCost = graph.DelayCostModel{
	FixedPlannedDelayCost:    200,
	FixedUnplannedDelayCost:  500,
	CostPerPlannedDelayDay:   50,
	CostPerUnplannedDelayDay: 100,
	PlanningNotificationDays: 7,
	FreeTruckDayBiasK:        1,
}

func TestInflateCapacitiesScalesByVehicleCount(t *testing.T) {
	trucks := []domain.Truck{
		{Segment: domain.Segment{Start: "A", End: "B"}, Capacity: 2, Price: 10},
	}
	out := inflateCapacities(trucks, 5)
	// factor = 5/2 + 1 = 3
	if out[0].Capacity != 6 || out[0].Price != 30 {
		t.Fatalf("expected capacity 6 price 30, got %+v", out[0])
	}
}

func TestInflateCapacitiesNeverDividesByZero(t *testing.T) {
	trucks := []domain.Truck{{Segment: domain.Segment{Start: "A", End: "B"}, Capacity: 0, Price: 0}}
	out := inflateCapacities(trucks, 5)
	if out[0].Capacity != 0 {
		t.Fatalf("expected zero-capacity truck to stay zero, got %+v", out[0])
	}
}

func TestUncapacitatedFlowLowerBoundRoutesEveryVehicle(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	locations := []domain.Location{plant, dealer}

	vehicles := []domain.Vehicle{
		{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 5},
		{ID: 2, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 5},
		{ID: 3, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 5},
	}
	// A single truck with capacity 1 would normally force two vehicles to
	// wait; the uncapacitated relaxation should let all three ride it.
	trucks := []domain.Truck{
		{Segment: domain.Segment{Start: "P0001", End: "D0001"}, Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 20},
	}

	result := UncapacitatedFlowLowerBound(locations, vehicles, trucks, domain.Ascending, 0, testCost)

	if len(result.VehicleAssignments) != 3 {
		t.Fatalf("expected 3 vehicle assignments, got %d", len(result.VehicleAssignments))
	}
	for _, a := range result.VehicleAssignments {
		if a.DelayedBy != 0 {
			t.Errorf("vehicle %d: expected on-time arrival under relaxed capacity, got delay %d", a.VehicleID, a.DelayedBy)
		}
	}
}
