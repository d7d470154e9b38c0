package graph

import "vehicle-transport-planner/internal/domain"

// Arc is one directed edge of the time-expanded network. Ordinal is 0 for
// every non-truck arc (waiting, and the dealer delay tracks) and the
// truck's namespaced ordinal otherwise -- this is the single discriminator
// the extractor (internal/solver) uses to decide whether a unit of flow
// corresponds to riding a truck (spec §4.5).
type Arc struct {
	To       domain.Node
	Ordinal  int
	Capacity int
	Weight   int
}

// arcKey addresses one parallel arc between two nodes.
type arcKey struct {
	From, To domain.Node
	Ordinal  int
}

// Graph is an adjacency-list time-expanded multigraph. Arc capacities are
// mutable and shared across commodities: solving one commodity decrements
// the capacity of every arc it used, so later commodities see a smaller
// residual network (spec §3, §4.4).
type Graph struct {
	adj map[domain.Node]map[arcKey]*Arc
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[domain.Node]map[arcKey]*Arc)}
}

// AddArc inserts a new arc, or panics if an arc already exists for the
// exact (from, to, ordinal) triple -- callers are expected to construct
// each arc exactly once.
func (g *Graph) AddArc(from, to domain.Node, ordinal, capacity, weight int) {
	key := arcKey{From: from, To: to, Ordinal: ordinal}
	bucket, ok := g.adj[from]
	if !ok {
		bucket = make(map[arcKey]*Arc)
		g.adj[from] = bucket
	}
	if _, exists := bucket[key]; exists {
		panic("graph: duplicate arc for " + from.String() + " -> " + to.String())
	}
	bucket[key] = &Arc{To: to, Ordinal: ordinal, Capacity: capacity, Weight: weight}
}

// Out returns every outgoing arc of n, in no particular order.
func (g *Graph) Out(n domain.Node) []*Arc {
	bucket := g.adj[n]
	if len(bucket) == 0 {
		return nil
	}
	arcs := make([]*Arc, 0, len(bucket))
	for _, a := range bucket {
		arcs = append(arcs, a)
	}
	return arcs
}

// Arc looks up the single arc identified by (from, to, ordinal).
func (g *Graph) Arc(from, to domain.Node, ordinal int) (*Arc, bool) {
	bucket, ok := g.adj[from]
	if !ok {
		return nil, false
	}
	a, ok := bucket[arcKey{From: from, To: to, Ordinal: ordinal}]
	return a, ok
}

// DecrementCapacity reduces the residual capacity of one arc by amount. It
// panics if this would drive capacity negative, since that signals a bug
// in the caller's flow bookkeeping rather than a recoverable condition.
func (g *Graph) DecrementCapacity(from, to domain.Node, ordinal, amount int) {
	a, ok := g.Arc(from, to, ordinal)
	if !ok {
		panic("graph: DecrementCapacity on missing arc " + from.String() + " -> " + to.String())
	}
	a.Capacity -= amount
	if a.Capacity < 0 {
		panic("graph: capacity went negative on arc " + from.String() + " -> " + to.String())
	}
}

// ReplaceTruckArc overwrites the arc identified by (from, to, ordinal)
// with new capacity and weight, or adds it if absent. Used by the
// real-time scheduler to install a day's realised truck over its planned
// counterpart once that day's departures have actually happened.
func (g *Graph) ReplaceTruckArc(from, to domain.Node, ordinal, capacity, weight int) {
	if a, ok := g.Arc(from, to, ordinal); ok {
		a.Capacity = capacity
		a.Weight = weight
		return
	}
	g.AddArc(from, to, ordinal, capacity, weight)
}

// RemoveArc deletes the arc identified by (from, to, ordinal), if any --
// used when a planned truck never realised at all.
func (g *Graph) RemoveArc(from, to domain.Node, ordinal int) {
	if bucket, ok := g.adj[from]; ok {
		delete(bucket, arcKey{From: from, To: to, Ordinal: ordinal})
	}
}

// Clone deep-copies the graph, including independent Arc values, so the
// copy's capacities can be mutated (e.g. by the MIP validator) without
// affecting the original.
func (g *Graph) Clone() *Graph {
	out := New()
	for from, bucket := range g.adj {
		copied := make(map[arcKey]*Arc, len(bucket))
		for key, a := range bucket {
			dup := *a
			copied[key] = &dup
		}
		out.adj[from] = copied
	}
	return out
}

// Snapshot captures every arc's current residual capacity, for the
// real-time scheduler's replan/commit rollback (spec §4.7).
func (g *Graph) Snapshot() map[arcKey]int {
	snap := make(map[arcKey]int)
	for from, bucket := range g.adj {
		for key, a := range bucket {
			key.From = from
			snap[key] = a.Capacity
		}
	}
	return snap
}

// Restore resets every arc's residual capacity to the values in snap. Arcs
// not present in snap are left untouched.
func (g *Graph) Restore(snap map[arcKey]int) {
	for key, residual := range snap {
		if bucket, ok := g.adj[key.From]; ok {
			if a, ok := bucket[key]; ok {
				a.Capacity = residual
			}
		}
	}
}
