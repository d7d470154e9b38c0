package realtime

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

func TestRunSingleVehicleOnTimeWhenPlanAndRealityAgree(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	truck := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10,
	}
	vehicles := []domain.Vehicle{{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 1}}

	locations := []domain.Location{plant, dealer}
	h := graph.ComputeHorizon(vehicles, []domain.Truck{truck})
	g := graph.Build(locations, []domain.Truck{truck}, h, h.First, testCost, 10)

	result := Run(g, h, locations, vehicles, []domain.Truck{truck}, []domain.Truck{truck}, domain.Ascending)

	if len(result.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 vehicle assignment, got %d", len(result.VehicleAssignments))
	}
	a := result.VehicleAssignments[0]
	if len(a.Path) != 1 || a.Path[0].Ordinal != 1 {
		t.Fatalf("expected vehicle to ride truck ordinal 1, got %+v", a.Path)
	}
	if a.DelayedBy != 0 {
		t.Fatalf("expected no delay, got %d", a.DelayedBy)
	}
}

func TestRunCommitFallsBackWhenPlannedTruckNeverRealises(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	preferred := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 5,
	}
	fallback := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 2, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 100,
	}
	planned := []domain.Truck{preferred, fallback}
	vehicles := []domain.Vehicle{{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 1}}

	locations := []domain.Location{plant, dealer}
	h := graph.ComputeHorizon(vehicles, planned)
	g := graph.Build(locations, planned, h, h.First, testCost, 10)

	// Only the expensive fallback truck actually shows up; the cheap
	// preferred truck the flow planned around never realises.
	realised := []domain.Truck{fallback}

	result := Run(g, h, locations, vehicles, planned, realised, domain.Ascending)

	if len(result.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 vehicle assignment, got %d", len(result.VehicleAssignments))
	}
	a := result.VehicleAssignments[0]
	if len(a.Path) != 1 || a.Path[0].Ordinal != 2 {
		t.Fatalf("expected vehicle reassigned onto fallback truck ordinal 2, got %+v", a.Path)
	}
	if a.DelayedBy != 0 {
		t.Fatalf("expected on-time arrival via fallback truck, got delay %d", a.DelayedBy)
	}
}

func TestRunVehicleWaitsWhenNoRealisedTruckCoversIt(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	onTime := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10,
	}
	late := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "D0001"},
		Ordinal: 2, DepartureDay: 2, ArrivalDay: 3, Capacity: 1, Price: 10,
	}
	planned := []domain.Truck{onTime, late}
	vehicles := []domain.Vehicle{{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 1}}

	locations := []domain.Location{plant, dealer}
	h := graph.ComputeHorizon(vehicles, planned)
	g := graph.Build(locations, planned, h, h.First, testCost, 10)

	// The day-0 truck never realises at all, and nothing else departs
	// day 0 from the plant, so the vehicle must wait for the late truck.
	realised := []domain.Truck{late}

	result := Run(g, h, locations, vehicles, planned, realised, domain.Ascending)

	if len(result.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 vehicle assignment, got %d", len(result.VehicleAssignments))
	}
	a := result.VehicleAssignments[0]
	if len(a.Path) != 1 || a.Path[0].Ordinal != 2 {
		t.Fatalf("expected vehicle to eventually ride the late truck, got %+v", a.Path)
	}
	if a.DelayedBy != 2 {
		t.Fatalf("expected delay of 2 days (arrival day 3, due day 1), got %d", a.DelayedBy)
	}
}

func TestRunMultiHopThroughNonDealerTerminalRespectsRestDay(t *testing.T) {
	plant := domain.Location{Name: "P0001", Kind: domain.Plant}
	terminal := domain.Location{Name: "T0001", Kind: domain.Terminal}
	dealer := domain.Location{Name: "D0001", Kind: domain.Dealer}
	leg1 := domain.Truck{
		Segment: domain.Segment{Start: "P0001", End: "T0001"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10,
	}
	// leg1 lands at a non-dealer terminal, so the vehicle only frees up the
	// day after arrival; leg2 departs on exactly that day.
	leg2 := domain.Truck{
		Segment: domain.Segment{Start: "T0001", End: "D0001"},
		Ordinal: 1, DepartureDay: 2, ArrivalDay: 3, Capacity: 1, Price: 10,
	}
	planned := []domain.Truck{leg1, leg2}
	vehicles := []domain.Vehicle{{ID: 1, OriginPlant: plant, DestinationDealer: dealer, AvailableDay: 0, DueDay: 3}}

	locations := []domain.Location{plant, terminal, dealer}
	h := graph.ComputeHorizon(vehicles, planned)
	g := graph.Build(locations, planned, h, h.First, testCost, 10)

	result := Run(g, h, locations, vehicles, planned, planned, domain.Ascending)

	if len(result.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 vehicle assignment, got %d", len(result.VehicleAssignments))
	}
	a := result.VehicleAssignments[0]
	if len(a.Path) != 2 || a.Path[0].Ordinal != 1 || a.Path[1].Ordinal != 1 {
		t.Fatalf("expected vehicle to ride both legs through the terminal, got %+v", a.Path)
	}
	if a.DelayedBy != 0 {
		t.Fatalf("expected on-time arrival respecting the rest day, got delay %d", a.DelayedBy)
	}
}
