package domain

// VehicleAssignment is the planner's output for a single vehicle: the
// ordered truck sequence it rides, and its delay classification (spec §3).
//
// Invariants (verified by internal/evaluator, never violated by the
// planner itself, spec §7/§8):
//   - Path is contiguous in space and monotone in time.
//   - The first truck departs >= AvailableDay from the vehicle's origin.
//   - The last truck (if any) ends at the vehicle's destination.
//   - DelayedBy == max(0, last arrival day - due day).
//   - PlannedDelayed implies the delay was known >= 7 days before DueDay.
type VehicleAssignment struct {
	VehicleID      int
	Path           []TruckID
	PlannedDelayed bool
	DelayedBy      int
}

// TruckAssignment is the load committed to a single truck. |Load| must
// never exceed the truck's capacity (realised capacity in real-time mode).
type TruckAssignment struct {
	TruckID TruckID
	Load    []int
}
