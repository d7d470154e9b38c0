package baseline

import (
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func TestGreedySolveDeliversOnTimeWhenCapacitySuffices(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	locations := []domain.Location{plant, dealer}

	vehicles := []domain.Vehicle{
		{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 2},
		{ID: 2, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 2},
	}
	trucks := []domain.Truck{
		{Segment: domain.Segment{Start: "P0001", End: "D0001"}, Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 2, Price: 10},
	}

	result := GreedySolve(locations, vehicles, trucks, trucks)

	if len(result.VehicleAssignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(result.VehicleAssignments))
	}
	for _, a := range result.VehicleAssignments {
		if len(a.Path) != 1 {
			t.Errorf("vehicle %d: expected a single-hop path, got %v", a.VehicleID, a.Path)
		}
		if a.DelayedBy != 0 {
			t.Errorf("vehicle %d: expected on-time arrival, got delay %d", a.VehicleID, a.DelayedBy)
		}
	}
}

func TestGreedySolveLeavesOverflowVehiclesWaitingAnotherDay(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	locations := []domain.Location{plant, dealer}

	vehicles := []domain.Vehicle{
		{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 1},
		{ID: 2, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 1},
	}
	trucks := []domain.Truck{
		{Segment: domain.Segment{Start: "P0001", End: "D0001"}, Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10},
		{Segment: domain.Segment{Start: "P0001", End: "D0001"}, Ordinal: 2, DepartureDay: 1, ArrivalDay: 2, Capacity: 1, Price: 10},
	}

	result := GreedySolve(locations, vehicles, trucks, trucks)

	if len(result.VehicleAssignments) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(result.VehicleAssignments))
	}

	var onTime, late int
	for _, a := range result.VehicleAssignments {
		if a.DelayedBy == 0 {
			onTime++
		} else {
			late++
		}
	}
	if onTime != 1 || late != 1 {
		t.Fatalf("expected one on-time and one delayed vehicle, got onTime=%d late=%d", onTime, late)
	}
}

func TestGreedySolveSkipsRealisedTruckThatNeverShowsUp(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	locations := []domain.Location{plant, dealer}

	vehicles := []domain.Vehicle{
		{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 3},
	}
	planned := []domain.Truck{
		{Segment: domain.Segment{Start: "P0001", End: "D0001"}, Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10},
	}
	// No realised trucks at all: the vehicle can never move.
	result := GreedySolve(locations, vehicles, planned, nil)

	if len(result.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(result.VehicleAssignments))
	}
	if len(result.VehicleAssignments[0].Path) != 0 {
		t.Fatalf("expected vehicle to never depart, got path %v", result.VehicleAssignments[0].Path)
	}
}
