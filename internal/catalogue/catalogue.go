package catalogue

import (
	"sort"

	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/transcaterr"
)

// Catalogue owns the ground-truth transit data: stops, buses, and the
// directed pairwise distance table. It accepts additions idempotently and
// answers StopInfo/BusInfo/GetDistance queries.
//
// Stop and bus records are held in insertion-ordered arenas so that dense
// integer ids (used for back-references and for the wire format) stay
// address-stable across further ingestion.
type Catalogue struct {
	stopOrder []string               // insertion order of stop names
	stops     map[string]*stopRecord // name -> record

	busOrder []string // insertion order of bus names
	buses    map[string]*busRecord

	distances map[string]map[string]float64 // distances[from][to] = meters, declared or mirrored only
}

// New returns an empty Catalogue.
func New() *Catalogue {
	return &Catalogue{
		stops:     make(map[string]*stopRecord),
		buses:     make(map[string]*busRecord),
		distances: make(map[string]map[string]float64),
	}
}

// getOrCreateStop returns the record for name, creating a dummy (unset
// coordinates) record if this is the first reference to it.
func (c *Catalogue) getOrCreateStop(name string) *stopRecord {
	if rec, ok := c.stops[name]; ok {
		return rec
	}

	rec := &stopRecord{
		stop:      Stop{Name: name},
		neighbors: make(map[string]float64),
		busIDs:    make(map[int]struct{}),
	}
	c.stops[name] = rec
	c.stopOrder = append(c.stopOrder, name)

	return rec
}

// setDistance records the directed distance from->to, and mirrors it to
// to->from if and only if that reverse direction is not yet present.
func (c *Catalogue) setDistance(from, to string, meters float64) {
	if c.distances[from] == nil {
		c.distances[from] = make(map[string]float64)
	}
	c.distances[from][to] = meters

	if c.distances[to] == nil {
		c.distances[to] = make(map[string]float64)
	}
	if _, ok := c.distances[to][from]; !ok {
		c.distances[to][from] = meters
	}
}

// AddStop inserts or updates a stop. If a stop of this name already exists,
// its coordinates are updated and its declared neighbor distances are merged
// (later declaration wins on key collisions). Every declared neighbor not
// yet known is auto-created as a dummy stop, and the directed distance to it
// is recorded, mirroring the reverse direction when it is still unset.
//
// Fails only when stop.Name is empty.
func (c *Catalogue) AddStop(stop Stop) error {
	if stop.Name == "" {
		return transcaterr.New(transcaterr.KindInvalidInput, "stop name must not be empty")
	}

	rec := c.getOrCreateStop(stop.Name)
	rec.stop.Coords = stop.Coords
	rec.stop.HasCoords = true

	names := make([]string, 0, len(stop.NeighborDistances))
	for name := range stop.NeighborDistances {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic application order for "later wins"

	for _, name := range names {
		meters := stop.NeighborDistances[name]
		c.getOrCreateStop(name)
		rec.neighbors[name] = meters
		c.setDistance(stop.Name, name, meters)
	}

	return nil
}

// AddBus inserts or replaces a bus. Every stop name referenced is
// auto-created as a dummy if absent, and the bus is indexed into each
// referenced stop's back-set, from which GetStopInfo builds its sorted list.
func (c *Catalogue) AddBus(bus Bus) error {
	if bus.Name == "" {
		return transcaterr.New(transcaterr.KindInvalidInput, "bus name must not be empty")
	}
	if len(bus.Stops) < 2 {
		return transcaterr.New(transcaterr.KindInvalidInput, "bus %q must declare at least 2 stops", bus.Name)
	}

	rec, exists := c.buses[bus.Name]
	if !exists {
		id := len(c.busOrder)
		rec = &busRecord{id: id}
		c.buses[bus.Name] = rec
		c.busOrder = append(c.busOrder, bus.Name)
	} else {
		// Re-declaration: drop stale back-references before re-indexing.
		for _, name := range rec.bus.Stops {
			if stopRec, ok := c.stops[name]; ok {
				delete(stopRec.busIDs, rec.id)
			}
		}
	}
	rec.bus = bus

	seen := make(map[string]struct{}, len(bus.Stops))
	for _, name := range bus.Stops {
		stopRec := c.getOrCreateStop(name)
		if _, dup := seen[name]; !dup {
			stopRec.busIDs[rec.id] = struct{}{}
			seen[name] = struct{}{}
		}
	}

	return nil
}

// GetStopInfo returns the lexicographically sorted, deduplicated list of
// buses visiting the named stop. A stop with no buses returns an empty,
// non-error list.
func (c *Catalogue) GetStopInfo(name string) (StopInfo, error) {
	rec, ok := c.stops[name]
	if !ok {
		return StopInfo{}, transcaterr.New(transcaterr.KindNotFound, "stop %q not found", name)
	}

	buses := make([]string, 0, len(rec.busIDs))
	for id := range rec.busIDs {
		buses = append(buses, c.busOrder[id])
	}
	sort.Strings(buses)

	return StopInfo{Name: name, Buses: buses}, nil
}

// EffectiveTraversal returns the ordered stop-name sequence a bus actually
// visits: the declared sequence for circular buses, or the declared sequence
// concatenated with its reverse (sharing the turnaround stop) for
// there-and-back buses.
func EffectiveTraversal(bus Bus) []string {
	if bus.IsCircular {
		out := make([]string, len(bus.Stops))
		copy(out, bus.Stops)

		return out
	}

	n := len(bus.Stops)
	out := make([]string, 0, 2*n-1)
	out = append(out, bus.Stops...)
	for i := n - 2; i >= 0; i-- {
		out = append(out, bus.Stops[i])
	}

	return out
}

// SegmentDistance resolves the directed road distance for one traversal
// hop a->b: the declared/mirrored value if present, else the reverse
// declared value, else the great-circle fallback. This is strictly internal
// bookkeeping for route-length computation; the public GetDistance never
// falls back to geo.
func (c *Catalogue) SegmentDistance(a, b string) float64 {
	if m, ok := c.distances[a][b]; ok {
		return m
	}
	if m, ok := c.distances[b][a]; ok {
		return m
	}

	return geo.Distance(c.stops[a].stop.Coords, c.stops[b].stop.Coords)
}

// GetBusInfo returns route statistics for the named bus: effective stop
// count, unique stop count, total road length along the effective
// traversal, and curvature (road length / great-circle length along the
// same traversal).
func (c *Catalogue) GetBusInfo(name string) (BusInfo, error) {
	rec, ok := c.buses[name]
	if !ok {
		return BusInfo{}, transcaterr.New(transcaterr.KindNotFound, "bus %q not found", name)
	}

	traversal := EffectiveTraversal(rec.bus)

	unique := make(map[string]struct{}, len(rec.bus.Stops))
	for _, s := range rec.bus.Stops {
		unique[s] = struct{}{}
	}

	var routeLength, geoLength float64
	for i := 0; i+1 < len(traversal); i++ {
		a, b := traversal[i], traversal[i+1]
		routeLength += c.SegmentDistance(a, b)
		geoLength += geo.Distance(c.stops[a].stop.Coords, c.stops[b].stop.Coords)
	}

	curvature := 1.0
	if geoLength > 0 {
		curvature = routeLength / geoLength
	}

	return BusInfo{
		Name:             name,
		StopsCount:       len(traversal),
		UniqueStopsCount: len(unique),
		RouteLength:      routeLength,
		Curvature:        curvature,
	}, nil
}

// StopCoords is one entry of GetBusExtendedInfo's result.
type StopCoords struct {
	Name   string
	Coords geo.Coordinates
}

// GetBusExtendedInfo returns the ordered list of (stop name, coordinates)
// exactly as the bus declares them, with no expansion of the return leg —
// the renderer collaborator handles any duplication it needs.
func (c *Catalogue) GetBusExtendedInfo(name string) ([]StopCoords, error) {
	rec, ok := c.buses[name]
	if !ok {
		return nil, transcaterr.New(transcaterr.KindNotFound, "bus %q not found", name)
	}

	out := make([]StopCoords, len(rec.bus.Stops))
	for i, s := range rec.bus.Stops {
		out[i] = StopCoords{Name: s, Coords: c.stops[s].stop.Coords}
	}

	return out, nil
}

// GetDistance returns the stored directed distance from->to. It never falls
// back to the great-circle distance; that fallback is reserved for
// bus-segment length computation only (see SegmentDistance).
func (c *Catalogue) GetDistance(from, to string) (float64, error) {
	if m, ok := c.distances[from][to]; ok {
		return m, nil
	}

	return 0, transcaterr.New(transcaterr.KindNotFound, "no distance recorded %s->%s", from, to)
}

// Stops returns every stop in insertion order (used by the wire serializer
// to assign compact ids, and by the router to size the transfer graph).
func (c *Catalogue) Stops() []Stop {
	out := make([]Stop, len(c.stopOrder))
	for i, name := range c.stopOrder {
		out[i] = c.stops[name].stop
	}

	return out
}

// Buses returns every bus in insertion order.
func (c *Catalogue) Buses() []Bus {
	out := make([]Bus, len(c.busOrder))
	for i, name := range c.busOrder {
		out[i] = c.buses[name].bus
	}

	return out
}

// HasStop reports whether name has been declared or auto-created.
func (c *Catalogue) HasStop(name string) bool {
	_, ok := c.stops[name]

	return ok
}

// Distances returns the full resolved directed distance table (declared
// plus mirrored entries), for the wire serializer. Callers must not mutate
// the returned maps.
func (c *Catalogue) Distances() map[string]map[string]float64 {
	return c.distances
}

// RestoreStop inserts a stop record exactly as given, with no neighbor
// merging or mirroring — used only by the wire deserializer, which replays
// an already-fully-resolved catalogue snapshot.
func (c *Catalogue) RestoreStop(stop Stop) {
	rec := c.getOrCreateStop(stop.Name)
	rec.stop = stop
}

// RestoreDistance sets the directed distance from->to exactly as given,
// with no mirroring — used only by the wire deserializer.
func (c *Catalogue) RestoreDistance(from, to string, meters float64) {
	if c.distances[from] == nil {
		c.distances[from] = make(map[string]float64)
	}
	c.distances[from][to] = meters
}
