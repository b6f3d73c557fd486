// Package catalogue owns the in-memory transit ground truth: stops, buses,
// and the directed pairwise distance table, and answers the per-bus and
// per-stop statistics queries.
package catalogue

import "github.com/avlasov/transcat/internal/geo"

// Stop is a named geographic point. A Stop may be "dummy" — auto-created
// because some other stop declared it as a neighbor or some bus references
// it — in which case HasCoords is false until a later AddStop supplies real
// coordinates.
type Stop struct {
	Name      string
	Coords    geo.Coordinates
	HasCoords bool
	// NeighborDistances declares directed road distances from this stop to
	// named neighbors, in meters. Every key eventually resolves to a real
	// stop: unknown neighbors are auto-created as dummies.
	NeighborDistances map[string]float64
}

// Bus is a named, ordered sequence of stop names forming a fixed route.
type Bus struct {
	Name       string
	Stops      []string
	IsCircular bool
}

// StopInfo is the result of GetStopInfo: the stop's name and the
// lexicographically sorted, deduplicated list of buses that visit it.
type StopInfo struct {
	Name  string
	Buses []string
}

// BusInfo is the result of GetBusInfo: route statistics for one bus.
type BusInfo struct {
	Name             string
	StopsCount       int
	UniqueStopsCount int
	RouteLength      float64
	Curvature        float64
}

// stopRecord is the internal, mutable representation of a Stop plus its
// directed neighbor distances and the dense ids of buses visiting it.
type stopRecord struct {
	stop      Stop
	neighbors map[string]float64 // directed: this stop -> neighbor name -> meters
	busIDs    map[int]struct{}   // dense bus ids visiting this stop, as arena ids rather than pointers
}

// busRecord is the internal, mutable representation of a Bus plus its dense
// arena id.
type busRecord struct {
	id  int
	bus Bus
}
