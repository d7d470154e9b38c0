package snapshotcache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"vehicle-transport-planner/internal/capacity"
	"vehicle-transport-planner/internal/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client)
}

func TestGetMissesOnEmptyCache(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "dataset-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected miss on empty cache")
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := capacity.BucketKey{Weekday: 2, Segment: domain.Segment{Start: "00199", End: "00299"}, Ordinal: 3}
	stats := map[capacity.BucketKey]capacity.Stats{
		key: capacity.NewStats([]int{10, 20, 30}),
	}

	if err := c.Put(ctx, "dataset-1", stats, time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, found, err := c.Get(ctx, "dataset-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected hit after Put")
	}
	gotStats, ok := got[key]
	if !ok {
		t.Fatalf("expected bucket key %+v present, got %+v", key, got)
	}
	if gotStats.Mean != 20 {
		t.Fatalf("expected mean 20, got %v", gotStats.Mean)
	}
}

func TestInvalidateRemovesEntry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	key := capacity.BucketKey{Weekday: 0, Segment: domain.Segment{Start: "00199", End: "00299"}, Ordinal: 1}
	stats := map[capacity.BucketKey]capacity.Stats{key: capacity.NewStats([]int{5})}
	if err := c.Put(ctx, "dataset-2", stats, 0); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := c.Invalidate(ctx, "dataset-2"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	_, found, err := c.Get(ctx, "dataset-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatal("expected miss after invalidate")
	}
}
