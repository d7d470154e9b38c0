// Package jsonsink writes a completed plan to disk as a JSON artifact: days
// as ISO-8601 date strings and enums by name rather than ordinal, so the
// file is reviewable without cross-referencing the planner's internal
// integer encodings. Grounded on the teacher's writeJSON/encoding/json
// response-encoding style (internal/api/handlers/helpers.go), adapted from
// an http.ResponseWriter target to a file target.
package jsonsink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/ports"
)

const isoDate = "2006-01-02"

// Writer persists plan results as one JSON file per run under Dir.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

type truckIDDoc struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	Mode         string `json:"mode"`
	Ordinal      int    `json:"ordinal"`
	DepartureDay string `json:"departure_day"`
}

func truckIDToDoc(id domain.TruckID) truckIDDoc {
	mode := "TRUCK"
	if id.Ordinal >= 10 {
		mode = "TRAIN"
	}
	return truckIDDoc{
		Start:        id.Segment.Start,
		End:          id.Segment.End,
		Mode:         mode,
		Ordinal:      id.Ordinal,
		DepartureDay: id.DepartureDay.Time().Format(isoDate),
	}
}

type vehicleAssignmentDoc struct {
	VehicleID      int          `json:"vehicle_id"`
	Path           []truckIDDoc `json:"path"`
	PlannedDelayed bool         `json:"planned_delayed"`
	DelayedBy      int          `json:"delayed_by"`
}

type truckAssignmentDoc struct {
	Truck truckIDDoc `json:"truck"`
	Load  []int      `json:"load"`
}

type resultDoc struct {
	VehicleAssignments []vehicleAssignmentDoc `json:"vehicle_assignments"`
	TruckAssignments   []truckAssignmentDoc   `json:"truck_assignments"`
}

func toDoc(result ports.PlanResult) resultDoc {
	doc := resultDoc{
		VehicleAssignments: make([]vehicleAssignmentDoc, 0, len(result.VehicleAssignments)),
		TruckAssignments:   make([]truckAssignmentDoc, 0, len(result.TruckAssignments)),
	}

	for _, a := range result.VehicleAssignments {
		path := make([]truckIDDoc, 0, len(a.Path))
		for _, id := range a.Path {
			path = append(path, truckIDToDoc(id))
		}
		doc.VehicleAssignments = append(doc.VehicleAssignments, vehicleAssignmentDoc{
			VehicleID:      a.VehicleID,
			Path:           path,
			PlannedDelayed: a.PlannedDelayed,
			DelayedBy:      a.DelayedBy,
		})
	}
	sort.Slice(doc.VehicleAssignments, func(i, j int) bool {
		return doc.VehicleAssignments[i].VehicleID < doc.VehicleAssignments[j].VehicleID
	})

	for id, ta := range result.TruckAssignments {
		load := append([]int(nil), ta.Load...)
		sort.Ints(load)
		doc.TruckAssignments = append(doc.TruckAssignments, truckAssignmentDoc{
			Truck: truckIDToDoc(id),
			Load:  load,
		})
	}
	sort.Slice(doc.TruckAssignments, func(i, j int) bool {
		a, b := doc.TruckAssignments[i].Truck, doc.TruckAssignments[j].Truck
		if a.DepartureDay != b.DepartureDay {
			return a.DepartureDay < b.DepartureDay
		}
		if a.Start != b.Start || a.End != b.End {
			return a.Start+a.End < b.Start+b.End
		}
		return a.Ordinal < b.Ordinal
	})

	return doc
}

// WriteResult implements ports.ResultSink: it marshals result as indented
// JSON to <Dir>/<runID>.json.
func (w *Writer) WriteResult(runID string, result ports.PlanResult) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("write result %s: create directory: %w", runID, err)
	}

	path := filepath.Join(w.Dir, runID+".json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write result %s: create file: %w", runID, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDoc(result)); err != nil {
		return fmt.Errorf("write result %s: encode json: %w", runID, err)
	}
	return nil
}
