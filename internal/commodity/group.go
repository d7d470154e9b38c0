// Package commodity groups vehicles sharing a (due day, destination
// dealer) key into the commodities the sequential solver processes one at
// a time (spec §4.1).
package commodity

import (
	"sort"

	"vehicle-transport-planner/internal/domain"
)

// Group partitions vehicles into commodities and orders the result per
// order. ASCENDING (the zero value) and DESCENDING sort by (due day,
// destination name); UNSPECIFIED preserves first-seen order, matching
// the reference implementation's UNORDERED default (spec §4.1, §9).
func Group(vehicles []domain.Vehicle, order domain.GroupOrder) []domain.Commodity {
	byKey := make(map[domain.CommodityKey]*domain.Commodity)
	var keysInSeenOrder []domain.CommodityKey

	for _, v := range vehicles {
		key := v.CommodityKey()
		c, ok := byKey[key]
		if !ok {
			c = &domain.Commodity{Key: key, Dealer: v.DestinationDealer}
			byKey[key] = c
			keysInSeenOrder = append(keysInSeenOrder, key)
		}
		c.Vehicles = append(c.Vehicles, v)
	}

	keys := keysInSeenOrder
	switch order {
	case domain.Ascending:
		keys = append([]domain.CommodityKey(nil), keysInSeenOrder...)
		sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })
	case domain.Descending:
		keys = append([]domain.CommodityKey(nil), keysInSeenOrder...)
		sort.Slice(keys, func(i, j int) bool { return lessKey(keys[j], keys[i]) })
	}

	out := make([]domain.Commodity, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byKey[k])
	}
	return out
}

func lessKey(a, b domain.CommodityKey) bool {
	if a.DueDay != b.DueDay {
		return a.DueDay < b.DueDay
	}
	return a.Destination < b.Destination
}
