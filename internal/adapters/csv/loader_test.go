package csv

import (
	"os"
	"path/filepath"
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestListVehiclesParsesAndNormalizesID(t *testing.T) {
	path := writeTempCSV(t, "vehicles.csv", ""+
		"id,origin_code,destination_code,available_day,due_day\n"+
		"1,00199PLANT,00299DEAL,0,5\n")

	l := &Loader{VehiclesPath: path}
	vehicles, err := l.ListVehicles()
	if err != nil {
		t.Fatalf("ListVehicles: %v", err)
	}
	if len(vehicles) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(vehicles))
	}
	v := vehicles[0]
	if v.ID != 0 {
		t.Fatalf("expected 0-based id 0, got %d", v.ID)
	}
	if v.OriginPlant.Name != "00199" || v.OriginPlant.Kind != domain.Plant {
		t.Fatalf("unexpected origin: %+v", v.OriginPlant)
	}
	if v.DestinationDealer.Name != "00299" || v.DestinationDealer.Kind != domain.Dealer {
		t.Fatalf("unexpected destination: %+v", v.DestinationDealer)
	}
	if v.AvailableDay != 0 || v.DueDay != 5 {
		t.Fatalf("unexpected days: available=%d due=%d", v.AvailableDay, v.DueDay)
	}
}

func TestListVehiclesRejectsBadHeader(t *testing.T) {
	path := writeTempCSV(t, "vehicles.csv", "wrong,header\n1,2\n")
	l := &Loader{VehiclesPath: path}
	if _, err := l.ListVehicles(); err == nil {
		t.Fatal("expected header mismatch error")
	}
}

func TestListVehiclesRejectsInvalidVehicle(t *testing.T) {
	path := writeTempCSV(t, "vehicles.csv", ""+
		"id,origin_code,destination_code,available_day,due_day\n"+
		"1,00199PLANT,00299DEAL,10,5\n")
	l := &Loader{VehiclesPath: path}
	if _, err := l.ListVehicles(); err == nil {
		t.Fatal("expected due_day < available_day to be rejected")
	}
}

func TestListPlannedTrucksParsesSegmentAndOrdinal(t *testing.T) {
	path := writeTempCSV(t, "trucks.csv", ""+
		"segment_code,departure_day,arrival_day,capacity,price\n"+
		"00199PLANT00299DEAL-TRUCK-3,0,1,10,50\n"+
		"00199PLANT00299DEAL-TRAIN-3,0,2,100,80\n")

	l := &Loader{PlannedTrucksPath: path}
	trucks, err := l.ListPlannedTrucks()
	if err != nil {
		t.Fatalf("ListPlannedTrucks: %v", err)
	}
	if len(trucks) != 2 {
		t.Fatalf("expected 2 trucks, got %d", len(trucks))
	}
	if trucks[0].Segment.Start != "00199" || trucks[0].Segment.End != "00299" {
		t.Fatalf("unexpected segment: %+v", trucks[0].Segment)
	}
	if trucks[0].Ordinal != 3 {
		t.Fatalf("expected truck ordinal 3, got %d", trucks[0].Ordinal)
	}
	if trucks[1].Ordinal != 13 {
		t.Fatalf("expected train ordinal 13 (namespaced), got %d", trucks[1].Ordinal)
	}
}

func TestListPlannedTrucksRejectsNegativeCapacity(t *testing.T) {
	path := writeTempCSV(t, "trucks.csv", ""+
		"segment_code,departure_day,arrival_day,capacity,price\n"+
		"00199PLANT00299DEAL-TRUCK-3,0,1,-1,50\n")
	l := &Loader{PlannedTrucksPath: path}
	if _, err := l.ListPlannedTrucks(); err == nil {
		t.Fatal("expected negative capacity to be rejected")
	}
}

func TestListCapacityHistoryParsesObservations(t *testing.T) {
	path := writeTempCSV(t, "history.csv", ""+
		"segment_code,departure_day,capacity,price\n"+
		"00199PLANT00299TERM-TRUCK-7,2,20,30\n")

	l := &Loader{CapacityHistoryPath: path}
	obs, err := l.ListCapacityHistory()
	if err != nil {
		t.Fatalf("ListCapacityHistory: %v", err)
	}
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	o := obs[0]
	if o.Ordinal != 7 || o.DepartureDay != 2 || o.Capacity != 20 || o.Price != 30 {
		t.Fatalf("unexpected observation: %+v", o)
	}
}

func TestParseSegmentCodeRejectsUnknownMode(t *testing.T) {
	if _, _, err := parseSegmentCode("00199PLANT00299DEAL-BOAT-3"); err == nil {
		t.Fatal("expected unknown mode to be rejected")
	}
}

func TestParseSegmentCodeRejectsUnrecognizedTypeToken(t *testing.T) {
	if _, _, err := parseSegmentCode("00199PLANT00299XYZAB-TRUCK-3"); err == nil {
		t.Fatal("expected unrecognized type token to be rejected")
	}
}
