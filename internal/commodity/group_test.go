package commodity

import (
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func vehicle(id int, due domain.Day, dest string) domain.Vehicle {
	return domain.Vehicle{
		ID:                id,
		OriginPlant:       domain.Location{Name: "P0001", Kind: domain.Plant},
		DestinationDealer: domain.Location{Name: dest, Kind: domain.Dealer},
		AvailableDay:      0,
		DueDay:            due,
	}
}

func TestGroupPartitionsByDueDayAndDestination(t *testing.T) {
	vehicles := []domain.Vehicle{
		vehicle(1, 5, "D0001"),
		vehicle(2, 5, "D0001"),
		vehicle(3, 5, "D0002"),
		vehicle(4, 6, "D0001"),
	}
	groups := Group(vehicles, domain.Ascending)
	if len(groups) != 3 {
		t.Fatalf("expected 3 commodities, got %d", len(groups))
	}
	if groups[0].Demand() != 2 || groups[0].Key.Destination != "D0001" || groups[0].Key.DueDay != 5 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
}

func TestGroupAscendingOrder(t *testing.T) {
	vehicles := []domain.Vehicle{
		vehicle(1, 10, "D0002"),
		vehicle(2, 5, "D0001"),
		vehicle(3, 5, "D0003"),
	}
	groups := Group(vehicles, domain.Ascending)
	if groups[0].Key.DueDay != 5 || groups[0].Key.Destination != "D0001" {
		t.Fatalf("expected D0001@5 first, got %+v", groups[0].Key)
	}
	if groups[1].Key.Destination != "D0003" {
		t.Fatalf("expected D0003@5 second (tie-break by destination), got %+v", groups[1].Key)
	}
	if groups[2].Key.DueDay != 10 {
		t.Fatalf("expected due day 10 last, got %+v", groups[2].Key)
	}
}

func TestGroupDescendingOrder(t *testing.T) {
	vehicles := []domain.Vehicle{vehicle(1, 5, "D0001"), vehicle(2, 10, "D0002")}
	groups := Group(vehicles, domain.Descending)
	if groups[0].Key.DueDay != 10 {
		t.Fatalf("expected due day 10 first in descending order, got %+v", groups[0].Key)
	}
}

func TestGroupUnspecifiedPreservesFirstSeenOrder(t *testing.T) {
	vehicles := []domain.Vehicle{vehicle(1, 10, "D0002"), vehicle(2, 5, "D0001")}
	groups := Group(vehicles, domain.Unspecified)
	if groups[0].Key.Destination != "D0002" {
		t.Fatalf("expected first-seen order preserved, got %+v", groups[0].Key)
	}
}
