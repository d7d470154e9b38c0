// Package report writes the plain-text metrics summary to an io.Writer,
// out of core per spec §1 ("metric pretty-printing is a collaborator, not
// a forbidden feature"), grounded on the teacher's writeJSON helper
// pattern of a thin adapter around a pure formatting function.
package report

import (
	"fmt"
	"io"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/evaluator"
	"vehicle-transport-planner/internal/ports"
)

// Write renders result's metrics summary to w.
func Write(w io.Writer, result ports.PlanResult, trucks map[domain.TruckID]domain.Truck, cost evaluator.CostModel) error {
	summary := evaluator.Summarize(result.VehicleAssignments, result.TruckAssignments, trucks, cost)
	if _, err := fmt.Fprintln(w, summary.Pretty()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
