package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vehicle-transport-planner/internal/adapters/csv"
	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/ports"
)

// dataset wires csv.Loader against one directory's worth of vehicle
// demand, planned truck schedule, and capacity history, and resolves the
// per-index realised truck files a -dataset-indices run selects among.
type dataset struct {
	dir    string
	loader *csv.Loader
}

func openDataset(dir string) dataset {
	return dataset{
		dir: dir,
		loader: &csv.Loader{
			VehiclesPath:        filepath.Join(dir, "vehicles.csv"),
			PlannedTrucksPath:   filepath.Join(dir, "planned_trucks.csv"),
			CapacityHistoryPath: filepath.Join(dir, "capacity_history.csv"),
		},
	}
}

func (d dataset) listVehicles() ([]domain.Vehicle, error) {
	return d.loader.ListVehicles()
}

func (d dataset) listPlannedTrucks() ([]domain.Truck, error) {
	return d.loader.ListPlannedTrucks()
}

func (d dataset) listCapacityHistory() ([]ports.CapacityObservation, error) {
	return d.loader.ListCapacityHistory()
}

// realisedTrucks loads the realised-truck file for dataset index idx. A
// single-scenario dataset keeps its realised trucks at realised_trucks.csv
// and is reused for every index; a multi-scenario dataset (one draw per
// -dataset-indices entry) numbers them realised_trucks_<idx>.csv.
func (d dataset) realisedTrucks(idx int) ([]domain.Truck, error) {
	numbered := filepath.Join(d.dir, fmt.Sprintf("realised_trucks_%d.csv", idx))
	path := numbered
	if _, err := os.Stat(numbered); os.IsNotExist(err) {
		path = filepath.Join(d.dir, "realised_trucks.csv")
	}
	l := &csv.Loader{RealisedTrucksPath: path}
	trucks, err := l.ListRealisedTrucks()
	if err != nil {
		return nil, fmt.Errorf("dataset %s index %d: %w", d.dir, idx, err)
	}
	return trucks, nil
}

// parseIndices parses a -dataset-indices value ("0,1,2") into ints.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse dataset-indices %q: %w", s, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("parse dataset-indices %q: no indices given", s)
	}
	return out, nil
}

// deriveLocations reconstructs the full location set (with Kind) the
// graph builder needs: vehicle origins are plants, vehicle destinations
// are dealers, and any remaining truck-segment endpoint is an
// intermediate terminal. CSV trucks carry only location names (spec §6's
// segment_code loses the TYPE token once split across two trucks that
// share a terminal), so this classification can only be done once the
// full vehicle and truck set is known -- it belongs to the driver, not
// to any one core package.
func deriveLocations(vehicles []domain.Vehicle, trucks []domain.Truck) []domain.Location {
	seen := make(map[string]domain.Location)

	for _, v := range vehicles {
		seen[v.OriginPlant.Name] = domain.Location{Name: v.OriginPlant.Name, Kind: domain.Plant}
		seen[v.DestinationDealer.Name] = domain.Location{Name: v.DestinationDealer.Name, Kind: domain.Dealer}
	}
	for _, t := range trucks {
		if _, ok := seen[t.Segment.Start]; !ok {
			seen[t.Segment.Start] = domain.Location{Name: t.Segment.Start, Kind: domain.Terminal}
		}
		if _, ok := seen[t.Segment.End]; !ok {
			seen[t.Segment.End] = domain.Location{Name: t.Segment.End, Kind: domain.Terminal}
		}
	}

	out := make([]domain.Location, 0, len(seen))
	for _, loc := range seen {
		out = append(out, loc)
	}
	return out
}

func trucksByID(trucks []domain.Truck) map[domain.TruckID]domain.Truck {
	out := make(map[domain.TruckID]domain.Truck, len(trucks))
	for _, t := range trucks {
		out[t.ID()] = t
	}
	return out
}

// mergeTrucks unions planned and realised truck metadata by id, realised
// values winning on overlap. ports.PlanResult's TruckAssignments carries
// an entry for every planned *and* every realised truck id, so the
// evaluator needs both lists' capacity/price data to score a plan.
func mergeTrucks(planned, realised []domain.Truck) map[domain.TruckID]domain.Truck {
	out := trucksByID(planned)
	for _, t := range realised {
		out[t.ID()] = t
	}
	return out
}

// backfillTruckAssignments seeds a (possibly empty) domain.TruckAssignment
// for every id in trucks that existing doesn't already cover, so every
// planned and every realised truck id resolves to a load list -- even an
// empty one -- rather than being merely absent (ports.ResultSink and
// internal/evaluator both rely on the full key set to tell "unused" apart
// from "unknown"). existing is never mutated; the returned map is always a
// fresh copy.
func backfillTruckAssignments(trucks map[domain.TruckID]domain.Truck, existing map[domain.TruckID]domain.TruckAssignment) map[domain.TruckID]domain.TruckAssignment {
	out := make(map[domain.TruckID]domain.TruckAssignment, len(trucks))
	for id, ta := range existing {
		out[id] = ta
	}
	for id := range trucks {
		if _, ok := out[id]; !ok {
			out[id] = domain.TruckAssignment{TruckID: id}
		}
	}
	return out
}

func vehiclesByID(vehicles []domain.Vehicle) map[int]domain.Vehicle {
	out := make(map[int]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		out[v.ID] = v
	}
	return out
}
