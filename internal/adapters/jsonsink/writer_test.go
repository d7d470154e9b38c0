package jsonsink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/ports"
)

func TestWriteResultProducesReadableJSON(t *testing.T) {
	truck := domain.Truck{
		Segment: domain.Segment{Start: "00199", End: "00299"},
		Ordinal: 1, DepartureDay: 0, ArrivalDay: 1, Capacity: 1, Price: 10,
	}
	result := ports.PlanResult{
		VehicleAssignments: []domain.VehicleAssignment{
			{VehicleID: 1, Path: []domain.TruckID{truck.ID()}, DelayedBy: 0},
		},
		TruckAssignments: map[domain.TruckID]domain.TruckAssignment{
			truck.ID(): {TruckID: truck.ID(), Load: []int{1}},
		},
	}

	dir := t.TempDir()
	w := NewWriter(dir)
	if err := w.WriteResult("run-1", result); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run-1.json"))
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}

	var doc resultDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(doc.VehicleAssignments) != 1 {
		t.Fatalf("expected 1 vehicle assignment, got %d", len(doc.VehicleAssignments))
	}
	va := doc.VehicleAssignments[0]
	if va.VehicleID != 1 || len(va.Path) != 1 {
		t.Fatalf("unexpected vehicle assignment: %+v", va)
	}
	if va.Path[0].DepartureDay != "1970-01-01" {
		t.Fatalf("expected ISO-8601 day string, got %q", va.Path[0].DepartureDay)
	}
	if va.Path[0].Mode != "TRUCK" {
		t.Fatalf("expected TRUCK mode, got %q", va.Path[0].Mode)
	}

	if len(doc.TruckAssignments) != 1 || doc.TruckAssignments[0].Load[0] != 1 {
		t.Fatalf("unexpected truck assignments: %+v", doc.TruckAssignments)
	}
}
