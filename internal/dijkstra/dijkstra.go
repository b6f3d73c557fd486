// Package dijkstra computes, and caches, single-source shortest-path label
// trees over an internal/graph.Graph, so that Engine.BuildRoute can
// reconstruct any path in time proportional to its edge count.
//
// Built around a lazy-decrease-key min-heap over container/heap with a
// pre-scan for negative weights, generalized into an all-pairs, integer-
// vertex, cached engine: the transport router calls BuildRoute many times
// against the same graph, so the label tables are computed once in Update
// and reused rather than recomputed per query.
package dijkstra

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/avlasov/transcat/internal/graph"
)

// ErrNilGraph indicates a nil *graph.Graph was passed to NewEngine.
var ErrNilGraph = errors.New("dijkstra: graph is nil")

// ErrNegativeWeight indicates a negative edge weight was found while
// building shortest-path labels; Dijkstra requires non-negative weights.
var ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

// label records the best known distance to reach a vertex and the edge id
// used to reach it on that best path ("none" is represented by -1).
type label struct {
	weight   float64
	hasLabel bool
	prevEdge int
}

// Path is the result of a successful BuildRoute: the total weight of the
// shortest path and the ordered list of edge ids from source to destination.
type Path struct {
	Weight float64
	Edges  []int
}

// Engine precomputes and caches all-pairs shortest-path labels over a graph.
// It holds a borrowed reference and never mutates it: the graph is read-only
// for the engine's entire lifetime.
type Engine struct {
	g      *graph.Graph
	labels [][]label // labels[source][v]
}

// NewEngine returns an Engine bound to g. Call Update before BuildRoute.
func NewEngine(g *graph.Graph) (*Engine, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	return &Engine{g: g}, nil
}

// Update runs Dijkstra from every vertex in the graph and caches the
// resulting label tables. It must be called once after the graph is fully
// built (and before any BuildRoute call), and again only if the graph
// changes afterward.
//
// Complexity: O(V * (V+E) log V).
func (e *Engine) Update() error {
	v := e.g.VertexCount()
	e.labels = make([][]label, v)

	for _, edge := range e.allEdges() {
		if edge.Weight < 0 {
			return fmt.Errorf("%w: weight=%v", ErrNegativeWeight, edge.Weight)
		}
	}

	for s := 0; s < v; s++ {
		e.labels[s] = e.runFrom(s)
	}

	return nil
}

func (e *Engine) allEdges() []graph.Edge {
	edges := make([]graph.Edge, 0, e.g.EdgeCount())
	for id := 0; id < e.g.EdgeCount(); id++ {
		edge, _ := e.g.GetEdge(id)
		edges = append(edges, edge)
	}

	return edges
}

// runFrom runs single-source Dijkstra from vertex s and returns the label
// table. Ties in the priority queue are broken by push order: every item
// carries a push sequence number that decides between equal distances, and
// edges are relaxed in IncidentEdges (insertion) order.
func (e *Engine) runFrom(s int) []label {
	n := e.g.VertexCount()
	labels := make([]label, n)
	for v := range labels {
		labels[v] = label{weight: math.Inf(1), prevEdge: -1}
	}
	labels[s] = label{weight: 0, hasLabel: true, prevEdge: -1}

	visited := make([]bool, n)
	pq := make(vertexPQ, 0, n)
	heap.Init(&pq)
	seq := 0
	heap.Push(&pq, &pqItem{vertex: s, dist: 0, seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pqItem)
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, eid := range e.g.IncidentEdges(u) {
			edge, _ := e.g.GetEdge(eid)
			newDist := labels[u].weight + edge.Weight
			if newDist >= labels[edge.To].weight {
				continue
			}
			labels[edge.To] = label{weight: newDist, hasLabel: true, prevEdge: eid}
			seq++
			heap.Push(&pq, &pqItem{vertex: edge.To, dist: newDist, seq: seq})
		}
	}

	return labels
}

// BuildRoute reconstructs the shortest path from → to using the cached
// labels. It returns (nil, false) if to is unreachable from from, or if
// Update has not been called.
//
// Complexity: O(path length).
func (e *Engine) BuildRoute(from, to int) (*Path, bool) {
	if from < 0 || from >= len(e.labels) || to < 0 || to >= len(e.labels) {
		return nil, false
	}

	tree := e.labels[from]
	if !tree[to].hasLabel {
		return nil, false
	}

	var edges []int
	v := to
	for v != from {
		l := tree[v]
		if l.prevEdge == -1 {
			break
		}
		edges = append(edges, l.prevEdge)
		edge, _ := e.g.GetEdge(l.prevEdge)
		v = edge.From
	}

	// edges were collected to→from; reverse to from→to.
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return &Path{Weight: tree[to].weight, Edges: edges}, true
}

// pqItem is an entry in the vertex priority queue: a vertex and its
// candidate distance from the source, plus its push sequence number.
type pqItem struct {
	vertex int
	dist   float64
	seq    int
}

// vertexPQ is a min-heap of *pqItem ordered by ascending dist, then by
// ascending push sequence, using the lazy-decrease-key strategy: stale
// entries are skipped via the visited set in runFrom rather than removed
// from the heap.
type vertexPQ []*pqItem

func (pq vertexPQ) Len() int { return len(pq) }
func (pq vertexPQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}
func (pq vertexPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *vertexPQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *vertexPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
