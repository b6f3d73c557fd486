package router

import (
	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/dijkstra"
	"github.com/avlasov/transcat/internal/graph"
	"github.com/avlasov/transcat/internal/transcaterr"
)

// Router answers shortest-itinerary queries over the transfer graph built
// from a Catalogue. It is built once (Build, or restored via FromParts) and
// is read-only thereafter.
type Router struct {
	state    state
	settings Settings

	g      *graph.Graph
	engine *dijkstra.Engine

	waitVertex map[string]int    // stop name -> wait vertex id; ride = wait+1
	stepByEdge map[int]Step
}

// minutesFromMeters converts a meter distance traveled at velocityKMH into
// minutes. Distances are accumulated in meters before this single
// multiplication, so rounding only happens once per segment.
func minutesFromMeters(meters, velocityKMH float64) float64 {
	return meters * 60.0 / (velocityKMH * 1000.0)
}

// Build constructs the transfer graph from cat and settings: two vertices
// per stop, one wait edge per stop, and one ride edge per (i,j) pair with
// i<j in each bus's effective traversal.
func Build(cat *catalogue.Catalogue, settings Settings) (*Router, error) {
	r := &Router{settings: settings}

	stops := cat.Stops()
	n := len(stops)

	g := graph.New()
	g.SetVertexCount(2 * n)

	waitVertex := make(map[string]int, n)
	stepByEdge := make(map[int]Step)

	for i, stop := range stops {
		wait := 2 * i
		ride := wait + 1
		waitVertex[stop.Name] = wait

		eid, err := g.AddEdge(wait, ride, float64(settings.BusWaitTimeMin))
		if err != nil {
			r.state = stateInvalid

			return r, transcaterr.Wrap(transcaterr.KindInternal, err, "router: adding wait edge for %q", stop.Name)
		}
		stepByEdge[eid] = Step{Kind: StepWait, StopName: stop.Name, Time: float64(settings.BusWaitTimeMin)}
	}

	for _, bus := range cat.Buses() {
		traversal := catalogue.EffectiveTraversal(bus)
		m := len(traversal)

		prefix := make([]float64, m)
		for k := 1; k < m; k++ {
			prefix[k] = prefix[k-1] + cat.SegmentDistance(traversal[k-1], traversal[k])
		}

		for i := 0; i < m; i++ {
			for j := i + 1; j < m; j++ {
				meters := prefix[j] - prefix[i]
				minutes := minutesFromMeters(meters, settings.BusVelocityKMH)

				from := waitVertex[traversal[i]] + 1 // ride vertex
				to := waitVertex[traversal[j]]        // wait vertex

				eid, err := g.AddEdge(from, to, minutes)
				if err != nil {
					r.state = stateInvalid

					return r, transcaterr.Wrap(transcaterr.KindInternal, err, "router: adding ride edge for bus %q", bus.Name)
				}
				stepByEdge[eid] = Step{
					Kind:      StepRide,
					BusName:   bus.Name,
					SpanCount: j - i,
					Time:      minutes,
				}
			}
		}
	}

	engine, err := dijkstra.NewEngine(g)
	if err != nil {
		r.state = stateInvalid

		return r, transcaterr.Wrap(transcaterr.KindInternal, err, "router: building dijkstra engine")
	}
	if err := engine.Update(); err != nil {
		r.state = stateInvalid

		return r, transcaterr.Wrap(transcaterr.KindInternal, err, "router: computing shortest-path labels")
	}

	r.g = g
	r.engine = engine
	r.waitVertex = waitVertex
	r.stepByEdge = stepByEdge
	r.state = stateBuilt

	return r, nil
}

// FromParts rebuilds a Router from a previously serialized snapshot,
// replaying edges in order (preserving edge ids) and recomputing Dijkstra
// labels. It must answer queries identically to a freshly built router,
// without re-running the O(bus * stops^2) edge-generation pass.
func FromParts(settings Settings, vertexCount int, edges []graph.Edge, waitVertex map[string]int, stepByEdge map[int]Step) (*Router, error) {
	g := graph.New()
	g.SetVertexCount(vertexCount)
	for _, e := range edges {
		if _, err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return &Router{state: stateInvalid}, transcaterr.Wrap(transcaterr.KindCorrupt, err, "router: replaying edge %+v", e)
		}
	}

	engine, err := dijkstra.NewEngine(g)
	if err != nil {
		return &Router{state: stateInvalid}, transcaterr.Wrap(transcaterr.KindInternal, err, "router: building dijkstra engine")
	}
	if err := engine.Update(); err != nil {
		return &Router{state: stateInvalid}, transcaterr.Wrap(transcaterr.KindInternal, err, "router: computing shortest-path labels")
	}

	return &Router{
		state:      stateBuilt,
		settings:   settings,
		g:          g,
		engine:     engine,
		waitVertex: waitVertex,
		stepByEdge: stepByEdge,
	}, nil
}

// Route answers the time-minimizing itinerary query from stop fromName to
// stop toName. Only a Built router accepts queries.
func (r *Router) Route(fromName, toName string) (RouteInfo, error) {
	if r.state != stateBuilt {
		return RouteInfo{}, transcaterr.Wrap(transcaterr.KindInternal, ErrNotBuilt, "router.Route")
	}

	fromWait, ok := r.waitVertex[fromName]
	if !ok {
		return RouteInfo{}, transcaterr.New(transcaterr.KindNotFound, "stop %q not found", fromName)
	}
	toWait, ok := r.waitVertex[toName]
	if !ok {
		return RouteInfo{}, transcaterr.New(transcaterr.KindNotFound, "stop %q not found", toName)
	}

	if fromName == toName {
		return RouteInfo{TotalTime: 0, Items: nil}, nil
	}

	path, ok := r.engine.BuildRoute(fromWait, toWait)
	if !ok {
		return RouteInfo{}, transcaterr.New(transcaterr.KindNotFound, "no route from %q to %q", fromName, toName)
	}

	items := make([]Step, 0, len(path.Edges))
	for _, eid := range path.Edges {
		items = append(items, r.stepByEdge[eid])
	}

	return RouteInfo{TotalTime: path.Weight, Items: items}, nil
}

// Settings returns the routing settings the router was built with.
func (r *Router) Settings() Settings { return r.settings }

// VertexCount returns the transfer graph's vertex count (2 * stop count).
func (r *Router) VertexCount() int { return r.g.VertexCount() }

// Edges returns every edge in the transfer graph, in insertion order.
func (r *Router) Edges() []graph.Edge {
	edges := make([]graph.Edge, r.g.EdgeCount())
	for i := range edges {
		edges[i], _ = r.g.GetEdge(i)
	}

	return edges
}

// WaitVertices returns the stop-name -> wait-vertex-id table.
func (r *Router) WaitVertices() map[string]int { return r.waitVertex }

// StepByEdge returns the edge-id -> RouteStep table.
func (r *Router) StepByEdge() map[int]Step { return r.stepByEdge }

// Built reports whether the router reached the Built state.
func (r *Router) Built() bool { return r.state == stateBuilt }
