package domain

import "fmt"

// CommodityKey is the canonical grouping key for demand: vehicles sharing a
// destination dealer and due date share a sink node in the time-expanded
// graph and are solved together as one commodity (spec §3, §4.1).
type CommodityKey struct {
	DueDay      Day
	Destination string
}

func (k CommodityKey) String() string {
	return fmt.Sprintf("%s@%d", k.Destination, k.DueDay)
}

// GroupOrder selects the iteration order commodities are processed in by
// the sequential solver (spec §4.1). The order is a documented knob: it
// changes which commodity's demand exhausts shared capacity first.
type GroupOrder int

const (
	// Ascending processes commodities in ascending (due day, destination
	// name) order -- earliest-due first, the default. This reduces
	// avoidable delay cost under the greedy per-commodity decomposition.
	Ascending GroupOrder = iota
	Descending
	Unspecified
)

func ParseGroupOrder(s string) (GroupOrder, error) {
	switch s {
	case "ASCENDING", "":
		return Ascending, nil
	case "DESCENDING":
		return Descending, nil
	case "UNSPECIFIED":
		return Unspecified, nil
	default:
		return 0, fmt.Errorf("parse group order: unknown value %q", s)
	}
}

// Commodity is one sink (a due-day/destination dealer node) fed by the
// sources of the vehicles that share its key.
type Commodity struct {
	Key      CommodityKey
	Dealer   Location
	Vehicles []Vehicle
}

// Demand is the sink's positive demand, equal to the vehicle count.
func (c Commodity) Demand() int {
	return len(c.Vehicles)
}
