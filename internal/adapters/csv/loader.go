// Package csv loads the four record shapes of the external CSV contract
// (vehicles, planned trucks, realised trucks, capacity history), grounded
// on the teacher's validate-then-insert style (SeedFromJSON, sqlite_init.go)
// and on the pack's header-validated encoding/csv loader
// (vsinha-mrp/pkg/infrastructure/repositories/csv/csv_loader.go). An
// unparseable code or a negative day/capacity is a malformed-input error;
// the core refuses to construct from it rather than coercing it.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/ports"
)

// Loader reads vehicle demand, truck schedules, and capacity history from
// CSV files and implements ports.VehicleSource, ports.PlannedTruckSource,
// ports.RealisedTruckSource, and ports.CapacityHistorySource.
type Loader struct {
	VehiclesPath        string
	PlannedTrucksPath   string
	RealisedTrucksPath  string
	CapacityHistoryPath string
}

var (
	vehicleHeader  = []string{"id", "origin_code", "destination_code", "available_day", "due_day"}
	truckHeader    = []string{"segment_code", "departure_day", "arrival_day", "capacity", "price"}
	historyHeader  = []string{"segment_code", "departure_day", "capacity", "price"}
)

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%q: missing header row", path)
	}
	return records, nil
}

// ListVehicles implements ports.VehicleSource.
func (l *Loader) ListVehicles() ([]domain.Vehicle, error) {
	records, err := readRecords(l.VehiclesPath)
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	if !validateHeader(records[0], vehicleHeader) {
		return nil, fmt.Errorf("load vehicles: header mismatch, expected %v got %v", vehicleHeader, records[0])
	}

	vehicles := make([]domain.Vehicle, 0, len(records)-1)
	for i, row := range records[1:] {
		v, err := parseVehicleRow(row)
		if err != nil {
			return nil, fmt.Errorf("load vehicles: row %d: %w", i+2, err)
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("load vehicles: row %d: %w", i+2, err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func parseVehicleRow(row []string) (domain.Vehicle, error) {
	if len(row) != len(vehicleHeader) {
		return domain.Vehicle{}, fmt.Errorf("expected %d columns, got %d", len(vehicleHeader), len(row))
	}
	id, err := parseNonNegativeInt("id", row[0])
	if err != nil {
		return domain.Vehicle{}, err
	}
	origin, err := parseLocationCode(row[1])
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("origin_code: %w", err)
	}
	destination, err := parseLocationCode(row[2])
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("destination_code: %w", err)
	}
	available, err := parseDay("available_day", row[3])
	if err != nil {
		return domain.Vehicle{}, err
	}
	due, err := parseDay("due_day", row[4])
	if err != nil {
		return domain.Vehicle{}, err
	}

	// ids are 1-based on the wire, 0-based within the core (spec §6).
	return domain.Vehicle{
		ID:                id - 1,
		OriginPlant:       origin,
		DestinationDealer: destination,
		AvailableDay:      available,
		DueDay:            due,
	}, nil
}

func parseTruckRow(row []string) (domain.Truck, error) {
	if len(row) != len(truckHeader) {
		return domain.Truck{}, fmt.Errorf("expected %d columns, got %d", len(truckHeader), len(row))
	}
	segment, ordinal, err := parseSegmentCode(row[0])
	if err != nil {
		return domain.Truck{}, fmt.Errorf("segment_code: %w", err)
	}
	departure, err := parseDay("departure_day", row[1])
	if err != nil {
		return domain.Truck{}, err
	}
	arrival, err := parseDay("arrival_day", row[2])
	if err != nil {
		return domain.Truck{}, err
	}
	capacity, err := parseNonNegativeInt("capacity", row[3])
	if err != nil {
		return domain.Truck{}, err
	}
	price, err := parseNonNegativeInt("price", row[4])
	if err != nil {
		return domain.Truck{}, err
	}

	t := domain.Truck{
		Segment:      segment,
		Ordinal:      ordinal,
		DepartureDay: departure,
		ArrivalDay:   arrival,
		Capacity:     capacity,
		Price:        price,
	}
	return t, t.Validate()
}

func (l *Loader) listTrucks(path string) ([]domain.Truck, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if !validateHeader(records[0], truckHeader) {
		return nil, fmt.Errorf("%q: header mismatch, expected %v got %v", path, truckHeader, records[0])
	}

	trucks := make([]domain.Truck, 0, len(records)-1)
	for i, row := range records[1:] {
		t, err := parseTruckRow(row)
		if err != nil {
			return nil, fmt.Errorf("%q: row %d: %w", path, i+2, err)
		}
		trucks = append(trucks, t)
	}
	return trucks, nil
}

// ListPlannedTrucks implements ports.PlannedTruckSource.
func (l *Loader) ListPlannedTrucks() ([]domain.Truck, error) {
	trucks, err := l.listTrucks(l.PlannedTrucksPath)
	if err != nil {
		return nil, fmt.Errorf("load planned trucks: %w", err)
	}
	return trucks, nil
}

// ListRealisedTrucks implements ports.RealisedTruckSource.
func (l *Loader) ListRealisedTrucks() ([]domain.Truck, error) {
	trucks, err := l.listTrucks(l.RealisedTrucksPath)
	if err != nil {
		return nil, fmt.Errorf("load realised trucks: %w", err)
	}
	return trucks, nil
}

// ListCapacityHistory implements ports.CapacityHistorySource.
func (l *Loader) ListCapacityHistory() ([]ports.CapacityObservation, error) {
	records, err := readRecords(l.CapacityHistoryPath)
	if err != nil {
		return nil, fmt.Errorf("load capacity history: %w", err)
	}
	if !validateHeader(records[0], historyHeader) {
		return nil, fmt.Errorf("load capacity history: header mismatch, expected %v got %v", historyHeader, records[0])
	}

	obs := make([]ports.CapacityObservation, 0, len(records)-1)
	for i, row := range records[1:] {
		o, err := parseHistoryRow(row)
		if err != nil {
			return nil, fmt.Errorf("load capacity history: row %d: %w", i+2, err)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

func parseHistoryRow(row []string) (ports.CapacityObservation, error) {
	if len(row) != len(historyHeader) {
		return ports.CapacityObservation{}, fmt.Errorf("expected %d columns, got %d", len(historyHeader), len(row))
	}
	segment, ordinal, err := parseSegmentCode(row[0])
	if err != nil {
		return ports.CapacityObservation{}, fmt.Errorf("segment_code: %w", err)
	}
	departure, err := parseDay("departure_day", row[1])
	if err != nil {
		return ports.CapacityObservation{}, err
	}
	capacity, err := parseNonNegativeInt("capacity", row[2])
	if err != nil {
		return ports.CapacityObservation{}, err
	}
	price, err := parseNonNegativeInt("price", row[3])
	if err != nil {
		return ports.CapacityObservation{}, err
	}

	return ports.CapacityObservation{
		Segment:      segment,
		Ordinal:      ordinal,
		DepartureDay: departure,
		Capacity:     capacity,
		Price:        price,
	}, nil
}
