package baseline

import (
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
)

// GreedySolve assigns every vehicle day by day along a static shortest
// path, using the cheapest available truck first and prioritizing the
// soonest due date within each location/next-location partition.
//
// It books just enough planned trucks (by ascending price) to cover a
// partition's vehicle count, loads only the realised trucks among those
// booked (up to their realised capacity, which may be less than planned),
// and leaves any unseated vehicles at the current location for another
// day. It never classifies or costs delay -- DelayedBy is informational
// only, set to the number of days late a vehicle is on arrival -- and it
// never lets a vehicle wait voluntarily: every vehicle that can reach a
// next location moves today if any capacity exists at all.
func GreedySolve(locations []domain.Location, vehicles []domain.Vehicle, plannedTrucks, realisedTrucks []domain.Truck) ports.PlanResult {
	if len(vehicles) == 0 {
		return ports.PlanResult{TruckAssignments: map[domain.TruckID]domain.TruckAssignment{}}
	}

	adj := buildLocationGraph(plannedTrucks)
	h := graph.ComputeHorizon(vehicles, plannedTrucks)

	vehicleByID := make(map[int]domain.Vehicle, len(vehicles))
	assignments := make(map[int]*domain.VehicleAssignment, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
		assignments[v.ID] = &domain.VehicleAssignment{VehicleID: v.ID}
	}

	truckAssignments := make(map[domain.TruckID]domain.TruckAssignment, len(plannedTrucks))
	byDeparture := make(map[departureKey][]domain.Truck)
	for _, t := range plannedTrucks {
		truckAssignments[t.ID()] = domain.TruckAssignment{TruckID: t.ID()}
		key := departureKey{From: t.Segment.Start, To: t.Segment.End, Day: t.DepartureDay}
		byDeparture[key] = append(byDeparture[key], t)
	}
	realisedByID := make(map[domain.TruckID]domain.Truck, len(realisedTrucks))
	for _, t := range realisedTrucks {
		realisedByID[t.ID()] = t
	}

	pathCache := make(map[[2]string][]string)
	pathFor := func(origin, dest string) []string {
		key := [2]string{origin, dest}
		if p, ok := pathCache[key]; ok {
			return p
		}
		p := shortestPath(adj, origin, dest)
		pathCache[key] = p
		return p
	}

	waiting := make(map[waitKey][]int)

	for d := h.First; d <= h.Last; d++ {
		for _, loc := range locations {
			today := waitKey{Day: d, Loc: loc.Name}
			if loc.Kind == domain.Plant {
				for _, v := range vehicles {
					if v.OriginPlant.Name == loc.Name && v.AvailableDay == d {
						waiting[today] = append(waiting[today], v.ID)
					}
				}
			}

			partitionsByNext := make(map[string][]domain.Vehicle)
			for _, vehicleID := range waiting[today] {
				v := vehicleByID[vehicleID]
				if v.DestinationDealer.Name == loc.Name {
					a := assignments[vehicleID]
					if late := d.Sub(v.DueDay); late > 0 {
						a.DelayedBy = late
					}
					continue
				}

				path := pathFor(v.OriginPlant.Name, v.DestinationDealer.Name)
				next := nextHop(path, loc.Name)
				if next == "" {
					continue
				}
				partitionsByNext[next] = append(partitionsByNext[next], v)
			}

			nextLocs := make([]string, 0, len(partitionsByNext))
			for next := range partitionsByNext {
				nextLocs = append(nextLocs, next)
			}
			sort.Strings(nextLocs)

			for _, nextLoc := range nextLocs {
				assignPartition(partitionsByNext[nextLoc], byDeparture[departureKey{From: loc.Name, To: nextLoc, Day: d}],
					realisedByID, truckAssignments, assignments, waiting, loc.Name, nextLoc, d)
			}
		}
	}

	return buildResult(truckAssignments, assignments)
}

type departureKey struct {
	From, To string
	Day      domain.Day
}

type waitKey struct {
	Day domain.Day
	Loc string
}

// assignPartition books candidates (ascending price) until their summed
// planned capacity covers the partition, loads vehicles (soonest due
// date first) onto whichever of those booked trucks actually exist in
// realisedByID, and pushes any leftover vehicles to wait another day.
func assignPartition(partition []domain.Vehicle, candidates []domain.Truck, realisedByID map[domain.TruckID]domain.Truck,
	truckAssignments map[domain.TruckID]domain.TruckAssignment, assignments map[int]*domain.VehicleAssignment,
	waiting map[waitKey][]int, fromLoc, toLoc string, day domain.Day) {

	sorted := append([]domain.Truck(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	sort.Slice(partition, func(i, j int) bool { return partition[i].DueDay < partition[j].DueDay })

	vehicleAmount := len(partition)
	totalCapacity := 0
	var finalTruckID domain.TruckID
	haveFinal := false
	for _, t := range sorted {
		totalCapacity += t.Capacity
		if totalCapacity >= vehicleAmount {
			finalTruckID = t.ID()
			haveFinal = true
			break
		}
	}

	vehicleIndex := 0
	for _, t := range sorted {
		if realised, ok := realisedByID[t.ID()]; ok {
			ta := truckAssignments[t.ID()]
			for len(ta.Load) < realised.Capacity && vehicleIndex < vehicleAmount {
				vehicleID := partition[vehicleIndex].ID
				ta.Load = append(ta.Load, vehicleID)
				assignments[vehicleID].Path = append(assignments[vehicleID].Path, t.ID())
				waiting[waitKey{Day: realised.ArrivalDay, Loc: toLoc}] = append(waiting[waitKey{Day: realised.ArrivalDay, Loc: toLoc}], vehicleID)
				vehicleIndex++
			}
			truckAssignments[t.ID()] = ta
		}
		if vehicleIndex >= vehicleAmount {
			break
		}
		if haveFinal && t.ID() == finalTruckID {
			break
		}
	}

	for vehicleIndex < vehicleAmount {
		tomorrow := waitKey{Day: day + 1, Loc: fromLoc}
		waiting[tomorrow] = append(waiting[tomorrow], partition[vehicleIndex].ID)
		vehicleIndex++
	}
}

func buildResult(truckAssignments map[domain.TruckID]domain.TruckAssignment, assignments map[int]*domain.VehicleAssignment) ports.PlanResult {
	ids := make([]int, 0, len(assignments))
	for id := range assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := ports.PlanResult{TruckAssignments: truckAssignments}
	for _, id := range ids {
		result.VehicleAssignments = append(result.VehicleAssignments, *assignments[id])
	}
	return result
}

// buildLocationGraph collapses trucks into a static, time-free directed
// graph of reachable next locations, one edge per distinct (start, end)
// segment regardless of how many trucks or days run it.
func buildLocationGraph(trucks []domain.Truck) map[string][]string {
	seen := make(map[[2]string]bool)
	adj := make(map[string][]string)
	for _, t := range trucks {
		key := [2]string{t.Segment.Start, t.Segment.End}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[t.Segment.Start] = append(adj[t.Segment.Start], t.Segment.End)
	}
	return adj
}

// shortestPath returns the fewest-hops location sequence from origin to
// dest over adj, or nil if dest is unreachable.
func shortestPath(adj map[string][]string, origin, dest string) []string {
	if origin == dest {
		return []string{origin}
	}

	prev := map[string]string{origin: origin}
	queue := []string{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if _, ok := prev[next]; ok {
				continue
			}
			prev[next] = cur
			if next == dest {
				return reconstructPath(prev, origin, dest)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func reconstructPath(prev map[string]string, origin, dest string) []string {
	var path []string
	for cur := dest; ; cur = prev[cur] {
		path = append([]string{cur}, path...)
		if cur == origin {
			break
		}
	}
	return path
}

// nextHop returns the location immediately after loc in path, or "" if
// loc is not in path or is its last element.
func nextHop(path []string, loc string) string {
	for i, l := range path {
		if l == loc && i+1 < len(path) {
			return path[i+1]
		}
	}
	return ""
}
