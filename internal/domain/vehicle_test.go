package domain

import "testing"

func TestVehicleCommodityKey(t *testing.T) {
	v := Vehicle{
		ID:                1,
		OriginPlant:       Location{Name: "P0001", Kind: Plant},
		DestinationDealer: Location{Name: "D0001", Kind: Dealer},
		AvailableDay:      1,
		DueDay:            5,
	}

	want := CommodityKey{DueDay: 5, Destination: "D0001"}
	if got := v.CommodityKey(); got != want {
		t.Fatalf("commodity key = %v, want %v", got, want)
	}
}

func TestVehicleValidateDueBeforeAvailable(t *testing.T) {
	v := Vehicle{
		ID:                1,
		OriginPlant:       Location{Name: "P0001", Kind: Plant},
		DestinationDealer: Location{Name: "D0001", Kind: Dealer},
		AvailableDay:      10,
		DueDay:            5,
	}

	if err := v.Validate(); err == nil {
		t.Fatalf("expected infeasibility error for due_day < available_day")
	}
}

func TestVehicleValidateSameOriginDestination(t *testing.T) {
	loc := Location{Name: "P0001", Kind: Plant}
	v := Vehicle{ID: 1, OriginPlant: loc, DestinationDealer: loc, AvailableDay: 1, DueDay: 2}

	if err := v.Validate(); err == nil {
		t.Fatalf("expected error when origin equals destination")
	}
}
