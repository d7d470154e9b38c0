package baseline

import (
	"container/heap"
	"sort"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
	"vehicle-transport-planner/internal/ports"
)

// candidateEdgeBaseCost is the flat per-hop penalty added to every
// collapsed segment edge, favoring fewer-hop candidate paths over merely
// cheaper ones.
const candidateEdgeBaseCost = 50

type candidateEdge struct {
	To      string
	Ordinal int
	Weight  float64
	Free    bool
}

// candidateGraph is the location-level, day-agnostic network candidate
// path ranking runs over: at most one free edge and one mean-priced edge
// per distinct (start, end) segment, aggregated across every truck that
// ever runs it regardless of day.
type candidateGraph struct {
	edges map[string][]candidateEdge
}

func buildCandidateGraph(trucks []domain.Truck) candidateGraph {
	type priceAgg struct {
		ordinal int
		sum     int
		count   int
	}
	freeAdded := make(map[[2]string]bool)
	priced := make(map[[2]string]*priceAgg)
	var order [][2]string
	seenKey := make(map[[2]string]bool)

	g := candidateGraph{edges: make(map[string][]candidateEdge)}

	for _, t := range trucks {
		key := [2]string{t.Segment.Start, t.Segment.End}
		if !seenKey[key] {
			seenKey[key] = true
			order = append(order, key)
		}
		if t.Price > 0 {
			agg, ok := priced[key]
			if !ok {
				agg = &priceAgg{ordinal: t.Ordinal}
				priced[key] = agg
			}
			agg.sum += t.Price
			agg.count++
			continue
		}
		if !freeAdded[key] {
			freeAdded[key] = true
			g.edges[key[0]] = append(g.edges[key[0]], candidateEdge{To: key[1], Ordinal: t.Ordinal, Weight: candidateEdgeBaseCost, Free: true})
		}
	}

	for _, key := range order {
		agg, ok := priced[key]
		if !ok {
			continue
		}
		mean := float64(agg.sum) / float64(agg.count)
		g.edges[key[0]] = append(g.edges[key[0]], candidateEdge{To: key[1], Ordinal: agg.ordinal, Weight: mean + candidateEdgeBaseCost, Free: false})
	}
	return g
}

type edgeRef struct {
	From string
	Idx  int
}

func (g candidateGraph) edge(ref edgeRef) candidateEdge { return g.edges[ref.From][ref.Idx] }

func (g candidateGraph) pathWeight(path []edgeRef) float64 {
	total := 0.0
	for _, ref := range path {
		total += g.edge(ref).Weight
	}
	return total
}

type pqEntry struct {
	cost float64
	node string
	path []edgeRef
}

type pathQueue []pqEntry

func (q pathQueue) Len() int           { return len(q) }
func (q pathQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q pathQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pathQueue) Push(x any)        { *q = append(*q, x.(pqEntry)) }
func (q *pathQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// dijkstraEdgePath finds the cheapest edge-path from source to target,
// refusing any edge in blocked.
func dijkstraEdgePath(g candidateGraph, blocked map[edgeRef]bool, source, target string) ([]edgeRef, bool) {
	q := &pathQueue{{cost: 0, node: source}}
	heap.Init(q)
	visited := make(map[string]bool)

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqEntry)
		if cur.node == target {
			return cur.path, true
		}
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true

		for idx, e := range g.edges[cur.node] {
			ref := edgeRef{From: cur.node, Idx: idx}
			if blocked[ref] {
				continue
			}
			path := append(append([]edgeRef(nil), cur.path...), ref)
			heap.Push(q, pqEntry{cost: cur.cost + e.Weight, node: e.To, path: path})
		}
	}
	return nil, false
}

// kShortestPaths runs Yen's algorithm for up to k loopless edge-paths from
// source to target, ascending by total weight.
func kShortestPaths(g candidateGraph, source, target string, k int) [][]edgeRef {
	first, ok := dijkstraEdgePath(g, nil, source, target)
	if !ok {
		return nil
	}
	a := [][]edgeRef{first}
	var b [][]edgeRef

	for len(a) < k {
		prev := a[len(a)-1]
		for i := 0; i < len(prev); i++ {
			spurNode := prev[i].From
			root := prev[:i]

			blocked := make(map[edgeRef]bool)
			for _, p := range a {
				if len(p) > i && sameEdgePrefix(p[:i], root) {
					blocked[p[i]] = true
				}
			}

			spur, ok := dijkstraEdgePath(g, blocked, spurNode, target)
			if !ok {
				continue
			}
			candidate := append(append([]edgeRef(nil), root...), spur...)
			if !containsEdgePath(b, candidate) {
				b = append(b, candidate)
			}
		}
		if len(b) == 0 {
			break
		}
		sort.Slice(b, func(i, j int) bool { return g.pathWeight(b[i]) < g.pathWeight(b[j]) })
		a = append(a, b[0])
		b = b[1:]
	}
	return a
}

func sameEdgePrefix(a, b []edgeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsEdgePath(paths [][]edgeRef, candidate []edgeRef) bool {
	for _, p := range paths {
		if sameEdgePrefix(p, candidate) {
			return true
		}
	}
	return false
}

// CandidateOption is one ranked next-hop choice out of a location toward
// a destination dealer.
type CandidateOption struct {
	NextLocation string
	Ordinal      int
	Free         bool
}

// candidateKey pairs a non-dealer source with a dealer destination.
type candidateKey struct {
	From, Dealer string
}

// computeCandidatePaths ranks, for every (non-dealer location, dealer)
// pair, up to 10 distinct first hops toward the dealer by the total cost
// of the cheapest path that starts with that hop.
func computeCandidatePaths(locations []domain.Location, trucks []domain.Truck) map[candidateKey][]CandidateOption {
	const k = 10
	g := buildCandidateGraph(trucks)

	out := make(map[candidateKey][]CandidateOption)
	for _, source := range locations {
		if source.Kind == domain.Dealer {
			continue
		}
		for _, dealer := range locations {
			if dealer.Kind != domain.Dealer || dealer.Name == source.Name {
				continue
			}

			paths := kShortestPaths(g, source.Name, dealer.Name, k)
			seen := make(map[edgeRef]bool)
			var options []CandidateOption
			for _, p := range paths {
				if len(p) == 0 {
					continue
				}
				first := p[0]
				if seen[first] {
					continue
				}
				seen[first] = true
				e := g.edge(first)
				options = append(options, CandidateOption{NextLocation: e.To, Ordinal: e.Ordinal, Free: e.Free})
			}
			if len(options) > 0 {
				out[candidateKey{From: source.Name, Dealer: dealer.Name}] = options
			}
		}
	}
	return out
}

// CandidatePathSolve runs the reference implementation's two-pass
// candidate-path greedy: a planned-only pass that classifies which
// vehicles would be planned-delayed under the announced schedule, then a
// realised pass that books actual trucks.
//
// expected_travel_time in the reference implementation is a hardcoded
// constant for every (location, destination) pair and the urgency-based
// truck gating is dead code that never actually executes (the flag it
// keys off of is never set true), so both passes reduce to: sort each
// location's waiting vehicles by due date, and for each, try its ranked
// candidate next hops in order, booking the first one whose truck exists
// today and still has room.
func CandidatePathSolve(locations []domain.Location, vehicles []domain.Vehicle, plannedTrucks, realisedTrucks []domain.Truck) ports.PlanResult {
	if len(vehicles) == 0 {
		return ports.PlanResult{TruckAssignments: map[domain.TruckID]domain.TruckAssignment{}}
	}

	candidates := computeCandidatePaths(locations, plannedTrucks)
	h := graph.ComputeHorizon(vehicles, plannedTrucks)

	plannedByID := make(map[domain.TruckID]domain.Truck, len(plannedTrucks))
	for _, t := range plannedTrucks {
		plannedByID[t.ID()] = t
	}
	realisedByID := make(map[domain.TruckID]domain.Truck, len(realisedTrucks))
	for _, t := range realisedTrucks {
		realisedByID[t.ID()] = t
	}

	plannedAssignments := simulateCandidatePass(locations, vehicles, candidates, h, make(map[domain.TruckID]domain.TruckAssignment), func(id domain.TruckID) (domain.Truck, bool) {
		t, ok := plannedByID[id]
		return t, ok
	})

	dayOfPlanning := h.First
	plannedDelayed := make(map[int]bool, len(vehicles))
	for id, a := range plannedAssignments {
		if len(a.Path) == 0 {
			continue
		}
		v := vehicleByIDIn(vehicles, id)
		if v.DueDay.Sub(dayOfPlanning) < 7 {
			continue
		}
		lastTruck, ok := plannedByID[a.Path[len(a.Path)-1]]
		if !ok || lastTruck.Segment.End != v.DestinationDealer.Name {
			continue
		}
		if lastTruck.ArrivalDay > v.DueDay {
			plannedDelayed[id] = true
		}
	}

	truckAssignments := make(map[domain.TruckID]domain.TruckAssignment, len(plannedTrucks)+len(realisedTrucks))
	for id := range plannedByID {
		truckAssignments[id] = domain.TruckAssignment{TruckID: id}
	}
	for id := range realisedByID {
		truckAssignments[id] = domain.TruckAssignment{TruckID: id}
	}

	realised := simulateCandidatePass(locations, vehicles, candidates, h, truckAssignments, func(id domain.TruckID) (domain.Truck, bool) {
		if _, okPlanned := plannedByID[id]; !okPlanned {
			return domain.Truck{}, false
		}
		realisedTruck, okRealised := realisedByID[id]
		return realisedTruck, okRealised
	})
	for id, a := range realised {
		a.PlannedDelayed = plannedDelayed[id]
	}

	return buildResult(truckAssignments, realised)
}

func vehicleByIDIn(vehicles []domain.Vehicle, id int) domain.Vehicle {
	for _, v := range vehicles {
		if v.ID == id {
			return v
		}
	}
	return domain.Vehicle{}
}

// simulateCandidatePass runs one planned/realised pass of the day-by-day
// candidate-path simulation. truckExists reports whether a truck with the
// given identity is usable in this pass (and returns the truck whose
// Capacity governs how much room it has).
func simulateCandidatePass(locations []domain.Location, vehicles []domain.Vehicle, candidates map[candidateKey][]CandidateOption, h graph.Horizon,
	truckAssignments map[domain.TruckID]domain.TruckAssignment, truckExists func(domain.TruckID) (domain.Truck, bool)) map[int]*domain.VehicleAssignment {

	vehicleByID := make(map[int]domain.Vehicle, len(vehicles))
	assignments := make(map[int]*domain.VehicleAssignment, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
		assignments[v.ID] = &domain.VehicleAssignment{VehicleID: v.ID}
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

			ids := append([]int(nil), waiting[today]...)
			sort.Slice(ids, func(i, j int) bool { return vehicleByID[ids[i]].DueDay < vehicleByID[ids[j]].DueDay })

			for _, vehicleID := range ids {
				v := vehicleByID[vehicleID]
				a := assignments[vehicleID]
				if v.DestinationDealer.Name == loc.Name {
					if late := d.Sub(v.DueDay); late > 0 {
						a.DelayedBy = late
					}
					continue
				}

				options := candidates[candidateKey{From: loc.Name, Dealer: v.DestinationDealer.Name}]
				assigned := false
				for _, opt := range options {
					id := domain.TruckID{Segment: domain.Segment{Start: loc.Name, End: opt.NextLocation}, Ordinal: opt.Ordinal, DepartureDay: d}
					truck, ok := truckExists(id)
					if !ok {
						continue
					}
					ta := truckAssignments[id]
					if len(ta.Load) >= truck.Capacity {
						continue
					}
					ta.TruckID = id
					ta.Load = append(ta.Load, vehicleID)
					truckAssignments[id] = ta
					a.Path = append(a.Path, id)
					waiting[waitKey{Day: truck.ArrivalDay, Loc: opt.NextLocation}] = append(waiting[waitKey{Day: truck.ArrivalDay, Loc: opt.NextLocation}], vehicleID)
					assigned = true
					break
				}
				if !assigned {
					waiting[waitKey{Day: d + 1, Loc: loc.Name}] = append(waiting[waitKey{Day: d + 1, Loc: loc.Name}], vehicleID)
				}
			}
		}
	}

	return assignments
}
