package capacity

import (
	"testing"

	"vehicle-transport-planner/internal/domain"
)

func TestQuantileDeratingMatchesSpecScenario(t *testing.T) {
	// spec §8 scenario 6: history = {8,9,10,10,10}, planned=10.
	seg := domain.Segment{Start: "P0001", End: "D0001"}
	stats := map[BucketKey]Stats{
		{Weekday: weekday(3), Segment: seg, Ordinal: 1}: NewStats([]int{8, 9, 10, 10, 10}),
	}
	truck := domain.Truck{Segment: seg, Ordinal: 1, DepartureDay: 3, Capacity: 10}

	d := NewDerater(QuantileReplacement, 0, 0.5, stats)
	got := d.Derate(truck)
	if got.Capacity != 10 {
		t.Fatalf("q=0.5 derated capacity = %d, want 10", got.Capacity)
	}

	d = NewDerater(QuantileReplacement, 0, 1.0, stats)
	got = d.Derate(truck)
	if got.Capacity != 8 {
		t.Fatalf("q=1.0 derated capacity = %d, want 8", got.Capacity)
	}
}

func TestQuantileZeroIsIdentity(t *testing.T) {
	seg := domain.Segment{Start: "P0001", End: "D0001"}
	stats := map[BucketKey]Stats{
		{Weekday: weekday(3), Segment: seg, Ordinal: 1}: NewStats([]int{1, 2, 3}),
	}
	truck := domain.Truck{Segment: seg, Ordinal: 1, DepartureDay: 3, Capacity: 10}

	d := NewDerater(QuantileReplacement, 0, 0, stats)
	got := d.Derate(truck)
	if got.Capacity != 10 {
		t.Fatalf("q=0 should leave capacity unchanged, got %d", got.Capacity)
	}
}

func TestStddevSubtraction(t *testing.T) {
	seg := domain.Segment{Start: "P0001", End: "D0001"}
	stats := map[BucketKey]Stats{
		{Weekday: weekday(3), Segment: seg, Ordinal: 1}: NewStats([]int{8, 10, 12}),
	}
	truck := domain.Truck{Segment: seg, Ordinal: 1, DepartureDay: 3, Capacity: 10}

	d := NewDerater(StddevSubtraction, 1, 0, stats)
	got := d.Derate(truck)
	if got.Capacity >= truck.Capacity {
		t.Fatalf("expected derated capacity below planned, got %d", got.Capacity)
	}
	if got.Capacity < 0 {
		t.Fatalf("derated capacity must not be negative, got %d", got.Capacity)
	}
}

func TestDerateAllNeverExceedsPlanned(t *testing.T) {
	seg := domain.Segment{Start: "P0001", End: "D0001"}
	stats := map[BucketKey]Stats{
		{Weekday: weekday(3), Segment: seg, Ordinal: 1}: NewStats([]int{1, 2, 3, 4, 5}),
	}
	trucks := []domain.Truck{
		{Segment: seg, Ordinal: 1, DepartureDay: 3, Capacity: 10},
	}

	d := NewDerater(QuantileReplacement, 0, 0.9, stats)
	derated := d.DerateAll(trucks)
	if derated[0].Capacity > trucks[0].Capacity {
		t.Fatalf("derated capacity %d exceeds planned %d", derated[0].Capacity, trucks[0].Capacity)
	}
}
