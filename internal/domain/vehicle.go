package domain

import "fmt"

// Vehicle is a single finished vehicle awaiting transport from an origin
// plant to a destination dealer. Immutable after ingestion.
type Vehicle struct {
	ID              int
	OriginPlant     Location
	DestinationDealer Location
	AvailableDay    Day
	DueDay          Day
}

// CommodityKey returns the (due day, destination name) pair that groups
// this vehicle with others sharing a sink in the time-expanded graph
// (spec §4.1).
func (v Vehicle) CommodityKey() CommodityKey {
	return CommodityKey{DueDay: v.DueDay, Destination: v.DestinationDealer.Name}
}

// Validate reports malformed-input conditions the core refuses to plan
// around (spec §7, §8 "Vehicle with due_day < available_day -> infeasible").
func (v Vehicle) Validate() error {
	if v.AvailableDay < 0 {
		return fmt.Errorf("vehicle %d: negative available day %d", v.ID, v.AvailableDay)
	}
	if v.DueDay < v.AvailableDay {
		return fmt.Errorf("vehicle %d: due day %d precedes available day %d", v.ID, v.DueDay, v.AvailableDay)
	}
	if v.OriginPlant.Name == v.DestinationDealer.Name {
		return fmt.Errorf("vehicle %d: origin and destination are the same location %q", v.ID, v.OriginPlant.Name)
	}
	return nil
}
