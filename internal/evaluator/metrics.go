package evaluator

import (
	"fmt"
	"strings"

	"vehicle-transport-planner/internal/domain"
)

// Summary is the pretty-printable metrics breakdown of a plan, grounded
// on the reference implementation's get_pretty_metrics: delay counts,
// truck utilization, and the delay/truck cost components that sum to the
// objective.
type Summary struct {
	DelayedCars                       int
	PlannedDelayedCars                int
	PlannedDelayedCarsActuallyDelayed int
	VehiclesOnPaidTrucks              int
	FixedPlannedDelayCost             int
	DayPlannedDelayCost               int
	FixedUnplannedDelayCost           int
	DayUnplannedDelayCost             int
	TotalDelayCost                    int
	PricePaidForTrucks                float64
}

// Summarize computes Summary from a completed plan.
func Summarize(assignments []domain.VehicleAssignment, truckAssignments map[domain.TruckID]domain.TruckAssignment, trucks map[domain.TruckID]domain.Truck, cost CostModel) Summary {
	var s Summary

	for _, a := range assignments {
		if a.DelayedBy > 0 {
			s.DelayedCars++
		}
		if a.PlannedDelayed {
			s.PlannedDelayedCars++
			s.FixedPlannedDelayCost += cost.FixedPlannedDelayCost
			if a.DelayedBy > 0 {
				s.PlannedDelayedCarsActuallyDelayed++
				s.DayPlannedDelayCost += a.DelayedBy * cost.CostPerPlannedDelayDay
			}
		} else if a.DelayedBy > 0 {
			s.FixedUnplannedDelayCost += cost.FixedUnplannedDelayCost
			s.DayUnplannedDelayCost += a.DelayedBy * cost.CostPerUnplannedDelayDay
		}
	}
	s.TotalDelayCost = s.FixedPlannedDelayCost + s.DayPlannedDelayCost + s.FixedUnplannedDelayCost + s.DayUnplannedDelayCost

	for id, ta := range truckAssignments {
		if len(ta.Load) == 0 {
			continue
		}
		t, ok := trucks[id]
		if !ok || t.Price == 0 {
			continue
		}
		s.VehiclesOnPaidTrucks += len(ta.Load)
		s.PricePaidForTrucks += float64(t.Price) / float64(t.Capacity) * float64(len(ta.Load))
	}

	return s
}

// Pretty renders s as the fixed-width plain-text report of the teacher's
// metric pretty-printer style.
func (s Summary) Pretty() string {
	const width = 65
	var b strings.Builder

	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "%-*s%d\n", width, "Number of delayed cars:", s.DelayedCars)
	fmt.Fprintf(&b, "%-*s%d/%d\n", width, "Number (actual/planned) planned delayed cars:", s.PlannedDelayedCarsActuallyDelayed, s.PlannedDelayedCars)
	fmt.Fprintf(&b, "%-*s%d\n", width, "Number of cars transported in trucks which are not free:", s.VehiclesOnPaidTrucks)
	fmt.Fprintf(&b, "%-*s%.2f, (%d, %d), (%d, %d)\n", width,
		"Cost of delays Total, (Pl Fix, Pl Days), (Unpl Fix, Unpl Days):",
		float64(s.TotalDelayCost), s.FixedPlannedDelayCost, s.DayPlannedDelayCost, s.FixedUnplannedDelayCost, s.DayUnplannedDelayCost)
	fmt.Fprintf(&b, "%-*s%.2f", width, "Price paid for trucks:", s.PricePaidForTrucks)

	return b.String()
}
