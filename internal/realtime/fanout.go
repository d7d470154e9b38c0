package realtime

import (
	"golang.org/x/sync/errgroup"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
)

// Realisation is one independent scenario to run through the scheduler:
// its own realised-truck stream (e.g. one Monte Carlo draw from the
// capacity derater's distribution), evaluated against the same starting
// graph and vehicle demand as every other realisation in the batch.
type Realisation struct {
	RealisedTrucks []domain.Truck
}

// RunFanout runs len(realisations) independent scheduler instances
// concurrently, each over its own clone of base so no realisation's
// capacity decrements leak into another, bounded to maxConcurrency
// simultaneous instances. Results are returned in the same order as
// realisations regardless of completion order. This mirrors the teacher's
// semaphore-bounded fan-out for independent per-destination work
// (internal/services/plan_deliveries.go), using golang.org/x/sync/errgroup's
// SetLimit in place of the teacher's hand-rolled channel semaphore.
func RunFanout(base *graph.Graph, h graph.Horizon, locations []domain.Location, vehicles []domain.Vehicle, plannedTrucks []domain.Truck, order domain.GroupOrder, realisations []Realisation, maxConcurrency int) []ports.PlanResult {
	results := make([]ports.PlanResult, len(realisations))

	g := new(errgroup.Group)
	if maxConcurrency > 0 {
		g.SetLimit(maxConcurrency)
	}

	for i, r := range realisations {
		g.Go(func() error {
			results[i] = Run(base.Clone(), h, locations, vehicles, plannedTrucks, r.RealisedTrucks, order)
			return nil
		})
	}

	_ = g.Wait() // no realisation can fail: Run has no error path
	return results
}
