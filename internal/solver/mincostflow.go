// Package solver implements the integer successive-shortest-path min-cost
// flow solver (spec §4.4), the per-commodity sequential driver that feeds
// it, and the greedy flow-to-assignment extractor (spec §4.5).
//
// The SSP core mirrors the potentials-based shortest-augmenting-path
// technique: seed node potentials with Bellman-Ford (handles the negative
// reduced costs the delay-track reverse arcs introduce), then repeatedly
// augment along a Dijkstra shortest path under reduced costs until the
// required flow is satisfied or no path remains.
package solver

import (
	"container/heap"
	"math"

	"vehicle-transport-planner/internal/domain"
	"vehicle-transport-planner/internal/graph"
)

const infCost = math.MaxInt32

// virtualSourceDay is a sentinel day value outside any real horizon, used
// to key the per-solve super-source node that fans out to every source of
// a multi-source, single-sink commodity.
const virtualSourceDay = domain.Day(math.MinInt32 / 2)

func virtualSource() domain.Node {
	return domain.Node{Day: virtualSourceDay, Location: "", Role: domain.Normal}
}

// FlowArcKey addresses one arc of the persistent graph by its endpoints and
// ordinal -- the unit the extractor (extract.go) consumes flow from.
type FlowArcKey struct {
	From, To domain.Node
	Ordinal  int
}

type edge struct {
	from, to domain.Node
	ordinal  int
	cap      int
	cost     int
	rev      *edge
	original bool // true for the forward direction of a real graph arc
}

type residualNetwork struct {
	adj map[domain.Node][]*edge
}

func newResidualNetwork() *residualNetwork {
	return &residualNetwork{adj: make(map[domain.Node][]*edge)}
}

func (rn *residualNetwork) addEdge(from, to domain.Node, ordinal, cap, cost int, original bool) *edge {
	fwd := &edge{from: from, to: to, ordinal: ordinal, cap: cap, cost: cost, original: original}
	back := &edge{from: to, to: from, ordinal: ordinal, cap: 0, cost: -cost}
	fwd.rev, back.rev = back, fwd
	rn.adj[from] = append(rn.adj[from], fwd)
	rn.adj[to] = append(rn.adj[to], back)
	return fwd
}

// buildResidualNetwork copies every positive-capacity arc of g into a fresh
// residual network, and fans a virtual super-source out to each of
// sources with capacity equal to that source's (positive) demand.
func buildResidualNetwork(g *graph.Graph, nodes []domain.Node, sources map[domain.Node]int) *residualNetwork {
	rn := newResidualNetwork()
	seen := make(map[domain.Node]bool)
	queue := append([]domain.Node(nil), nodes...)
	for len(queue) > 0 {
		n := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		for _, a := range g.Out(n) {
			if a.Capacity > 0 {
				rn.addEdge(n, a.To, a.Ordinal, a.Capacity, a.Weight, true)
			}
			if !seen[a.To] {
				queue = append(queue, a.To)
			}
		}
	}
	vs := virtualSource()
	for src, demand := range sources {
		rn.addEdge(vs, src, 0, demand, 0, false)
	}
	return rn
}

// result is the outcome of solving one commodity: the net flow pushed
// across every original (persistent-graph) arc, and the flow's total cost
// under the graph's arc weights.
type result struct {
	flow map[FlowArcKey]int
	cost int
	sent int
}

// solve runs SSP from the virtual super-source to sink, pushing at most
// required units, over a residual network seeded from g restricted to the
// reachable node set starting at roots (every commodity source plus sink).
func solve(g *graph.Graph, roots []domain.Node, sources map[domain.Node]int, sink domain.Node, required int) result {
	rn := buildResidualNetwork(g, roots, sources)
	vs := virtualSource()

	potentials := bellmanFord(rn, vs)

	sent := 0
	totalCost := 0
	for sent < required {
		dist, parent := dijkstraWithPotentials(rn, vs, potentials)
		sinkDist, reached := dist[sink]
		if !reached || sinkDist >= infCost {
			break
		}
		for n, d := range dist {
			if d < infCost && potentials[n] < infCost {
				potentials[n] = d
			}
		}

		bottleneck := required - sent
		for cur := sink; cur != vs; {
			e := parent[cur]
			if e.cap < bottleneck {
				bottleneck = e.cap
			}
			cur = e.from
		}
		if bottleneck <= 0 {
			break
		}

		for cur := sink; cur != vs; {
			e := parent[cur]
			e.cap -= bottleneck
			e.rev.cap += bottleneck
			totalCost += e.cost * bottleneck
			cur = e.from
		}
		sent += bottleneck
	}

	flow := make(map[FlowArcKey]int)
	for _, edges := range rn.adj {
		for _, e := range edges {
			if !e.original {
				continue
			}
			used := e.rev.cap // reverse capacity accumulates exactly the forward flow pushed
			if used > 0 {
				flow[FlowArcKey{From: e.from, To: e.to, Ordinal: e.ordinal}] = used
			}
		}
	}
	return result{flow: flow, cost: totalCost, sent: sent}
}

// bellmanFord computes shortest distances from src over rn, tolerating
// negative edges (the delay-track reverse and per-day chain arcs). Returns
// infCost for unreachable nodes.
func bellmanFord(rn *residualNetwork, src domain.Node) map[domain.Node]int {
	allNodes := make(map[domain.Node]bool)
	for from, edges := range rn.adj {
		allNodes[from] = true
		for _, e := range edges {
			allNodes[e.to] = true
		}
	}

	dist := map[domain.Node]int{src: 0}
	for i := 0; i < len(allNodes); i++ {
		changed := false
		for from, edges := range rn.adj {
			du, ok := dist[from]
			if !ok {
				continue
			}
			for _, e := range edges {
				if e.cap <= 0 {
					continue
				}
				nd := du + e.cost
				if cur, ok := dist[e.to]; !ok || nd < cur {
					dist[e.to] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	for n := range allNodes {
		if _, ok := dist[n]; !ok {
			dist[n] = infCost
		}
	}
	if _, ok := dist[src]; !ok {
		dist[src] = infCost
	}
	return dist
}

type pqItem struct {
	node domain.Node
	dist int
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstraWithPotentials finds shortest distances from src using Johnson's
// reduced costs c'(u,v) = c(u,v) + potential[u] - potential[v], which are
// non-negative for every residual edge as long as potentials satisfy the
// standard SSP invariant.
func dijkstraWithPotentials(rn *residualNetwork, src domain.Node, potentials map[domain.Node]int) (map[domain.Node]int, map[domain.Node]*edge) {
	dist := map[domain.Node]int{src: 0}
	parent := make(map[domain.Node]*edge)
	visited := make(map[domain.Node]bool)

	pq := &priorityQueue{{node: src, dist: 0}}
	heap.Init(pq)
	for pq.Len() > 0 {
		top := heap.Pop(pq).(pqItem)
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range rn.adj[u] {
			if e.cap <= 0 || visited[e.to] {
				continue
			}
			pu, pv := potentials[u], potentials[e.to]
			if pu >= infCost || pv >= infCost {
				continue
			}
			reduced := e.cost + pu - pv
			nd := dist[u] + reduced
			if cur, ok := dist[e.to]; !ok || nd < cur {
				dist[e.to] = nd
				parent[e.to] = e
				heap.Push(pq, pqItem{node: e.to, dist: nd})
			}
		}
	}

	// Translate back from reduced-cost distances to true distances.
	trueDist := make(map[domain.Node]int, len(dist))
	for n, d := range dist {
		if potentials[src] >= infCost || potentials[n] >= infCost {
			trueDist[n] = infCost
			continue
		}
		trueDist[n] = d - potentials[src] + potentials[n]
	}
	return trueDist, parent
}
