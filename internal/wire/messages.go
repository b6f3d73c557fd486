package wire

import (
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/graph"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/transcaterr"
)

// Field numbers for the Stop message.
const (
	stopFieldID        protowire.Number = 1
	stopFieldName      protowire.Number = 2
	stopFieldLat       protowire.Number = 3
	stopFieldLon       protowire.Number = 4
	stopFieldHasCoords protowire.Number = 5
	stopFieldNeighbor  protowire.Number = 6
)

// Field numbers for the Stop.Neighbor message.
const (
	neighborFieldToID   protowire.Number = 1
	neighborFieldMeters protowire.Number = 2
)

// Field numbers for the Bus message.
const (
	busFieldName       protowire.Number = 1
	busFieldIsCircular protowire.Number = 2
	busFieldStopID     protowire.Number = 3
)

// Field numbers for the Catalogue message.
const (
	catalogueFieldStop protowire.Number = 1
	catalogueFieldBus  protowire.Number = 2
)

func encodeStop(id int, stop catalogue.Stop, neighbors map[string]float64, nameToID map[string]int) []byte {
	var b []byte
	b = appendVarint(b, stopFieldID, uint64(id))
	b = appendString(b, stopFieldName, stop.Name)
	b = appendDouble(b, stopFieldLat, stop.Coords.Latitude)
	b = appendDouble(b, stopFieldLon, stop.Coords.Longitude)
	b = appendBool(b, stopFieldHasCoords, stop.HasCoords)

	names := make([]string, 0, len(neighbors))
	for name := range neighbors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var nb []byte
		nb = appendVarint(nb, neighborFieldToID, uint64(nameToID[name]))
		nb = appendDouble(nb, neighborFieldMeters, neighbors[name])
		b = appendMessage(b, stopFieldNeighbor, nb)
	}

	return b
}

// decodedStop is a Stop plus its serialized id and outgoing neighbor
// distances (by neighbor id, resolved to names by the caller once every
// stop's id is known).
type decodedStop struct {
	id        int
	stop      catalogue.Stop
	neighbors map[int]float64
}

func decodeStop(b []byte) (decodedStop, error) {
	var out decodedStop
	out.neighbors = make(map[int]float64)

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case stopFieldID:
			out.id = int(raw)
		case stopFieldName:
			out.stop.Name = string(bytesVal)
		case stopFieldLat:
			out.stop.Coords.Latitude = fixed64ToFloat64(raw)
		case stopFieldLon:
			out.stop.Coords.Longitude = fixed64ToFloat64(raw)
		case stopFieldHasCoords:
			out.stop.HasCoords = raw != 0
		case stopFieldNeighbor:
			toID, meters, err := decodeNeighbor(bytesVal)
			if err != nil {
				return err
			}
			out.neighbors[toID] = meters
		}

		return nil
	})

	return out, err
}

func decodeNeighbor(b []byte) (toID int, meters float64, err error) {
	err = walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case neighborFieldToID:
			toID = int(raw)
		case neighborFieldMeters:
			meters = fixed64ToFloat64(raw)
		}

		return nil
	})

	return toID, meters, err
}

func encodeBus(bus catalogue.Bus, nameToID map[string]int) []byte {
	var b []byte
	b = appendString(b, busFieldName, bus.Name)
	b = appendBool(b, busFieldIsCircular, bus.IsCircular)
	for _, name := range bus.Stops {
		b = appendVarint(b, busFieldStopID, uint64(nameToID[name]))
	}

	return b
}

type decodedBus struct {
	name       string
	isCircular bool
	stopIDs    []int
}

func decodeBus(b []byte) (decodedBus, error) {
	var out decodedBus
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case busFieldName:
			out.name = string(bytesVal)
		case busFieldIsCircular:
			out.isCircular = raw != 0
		case busFieldStopID:
			out.stopIDs = append(out.stopIDs, int(raw))
		}

		return nil
	})

	return out, err
}

// encodeCatalogue serializes every stop (in insertion order, with compact
// integer ids) and every bus (referencing those ids) from cat.
func encodeCatalogue(cat *catalogue.Catalogue) []byte {
	stops := cat.Stops()
	nameToID := make(map[string]int, len(stops))
	for i, s := range stops {
		nameToID[s.Name] = i
	}

	distances := cat.Distances()

	var b []byte
	for i, s := range stops {
		sb := encodeStop(i, s, distances[s.Name], nameToID)
		b = appendMessage(b, catalogueFieldStop, sb)
	}
	for _, bus := range cat.Buses() {
		bb := encodeBus(bus, nameToID)
		b = appendMessage(b, catalogueFieldBus, bb)
	}

	return b
}

// decodeCatalogue rebuilds a *catalogue.Catalogue from its serialized form:
// stops first (so ids resolve), then buses.
func decodeCatalogue(b []byte) (*catalogue.Catalogue, error) {
	var stopMsgs [][]byte
	var busMsgs [][]byte

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case catalogueFieldStop:
			stopMsgs = append(stopMsgs, bytesVal)
		case catalogueFieldBus:
			busMsgs = append(busMsgs, bytesVal)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	decodedStops := make([]decodedStop, len(stopMsgs))
	idToName := make(map[int]string, len(stopMsgs))
	for i, sb := range stopMsgs {
		ds, err := decodeStop(sb)
		if err != nil {
			return nil, err
		}
		decodedStops[i] = ds
		idToName[ds.id] = ds.stop.Name
	}

	cat := catalogue.New()
	for _, ds := range decodedStops {
		cat.RestoreStop(ds.stop)
	}
	for _, ds := range decodedStops {
		for toID, meters := range ds.neighbors {
			toName, ok := idToName[toID]
			if !ok {
				return nil, transcaterr.New(transcaterr.KindCorrupt, "wire: neighbor references unknown stop id %d", toID)
			}
			cat.RestoreDistance(ds.stop.Name, toName, meters)
		}
	}

	for _, bb := range busMsgs {
		db, err := decodeBus(bb)
		if err != nil {
			return nil, err
		}
		stopsNames := make([]string, len(db.stopIDs))
		for i, id := range db.stopIDs {
			name, ok := idToName[id]
			if !ok {
				return nil, transcaterr.New(transcaterr.KindCorrupt, "wire: bus %q references unknown stop id %d", db.name, id)
			}
			stopsNames[i] = name
		}
		if err := cat.AddBus(catalogue.Bus{Name: db.name, Stops: stopsNames, IsCircular: db.isCircular}); err != nil {
			return nil, transcaterr.Wrap(transcaterr.KindCorrupt, err, "wire: restoring bus %q", db.name)
		}
	}

	return cat, nil
}

// Field numbers for the RenderSettings message.
const (
	renderFieldWidth           protowire.Number = 1
	renderFieldHeight          protowire.Number = 2
	renderFieldPadding         protowire.Number = 3
	renderFieldLineWidth       protowire.Number = 4
	renderFieldStopRadius      protowire.Number = 5
	renderFieldStopLabelFont   protowire.Number = 6
	renderFieldBusLabelFont    protowire.Number = 7
	renderFieldUnderlayerWidth protowire.Number = 8
	renderFieldUnderlayerColor protowire.Number = 9
	renderFieldColorPalette    protowire.Number = 10
	renderFieldBusOffsetDX     protowire.Number = 11
	renderFieldBusOffsetDY     protowire.Number = 12
	renderFieldStopOffsetDX    protowire.Number = 13
	renderFieldStopOffsetDY    protowire.Number = 14
)

func encodeRenderSettings(s svgrender.Settings) []byte {
	var b []byte
	b = appendDouble(b, renderFieldWidth, s.Width)
	b = appendDouble(b, renderFieldHeight, s.Height)
	b = appendDouble(b, renderFieldPadding, s.Padding)
	b = appendDouble(b, renderFieldLineWidth, s.LineWidth)
	b = appendDouble(b, renderFieldStopRadius, s.StopRadius)
	b = appendDouble(b, renderFieldStopLabelFont, s.StopLabelFont)
	b = appendDouble(b, renderFieldBusLabelFont, s.BusLabelFont)
	b = appendDouble(b, renderFieldUnderlayerWidth, s.UnderlayerWidth)
	b = appendString(b, renderFieldUnderlayerColor, s.UnderlayerColor)
	for _, c := range s.ColorPalette {
		b = appendString(b, renderFieldColorPalette, c)
	}
	b = appendDouble(b, renderFieldBusOffsetDX, s.BusLabelOffset[0])
	b = appendDouble(b, renderFieldBusOffsetDY, s.BusLabelOffset[1])
	b = appendDouble(b, renderFieldStopOffsetDX, s.StopLabelOffset[0])
	b = appendDouble(b, renderFieldStopOffsetDY, s.StopLabelOffset[1])

	return b
}

func decodeRenderSettings(b []byte) (svgrender.Settings, error) {
	var s svgrender.Settings
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case renderFieldWidth:
			s.Width = fixed64ToFloat64(raw)
		case renderFieldHeight:
			s.Height = fixed64ToFloat64(raw)
		case renderFieldPadding:
			s.Padding = fixed64ToFloat64(raw)
		case renderFieldLineWidth:
			s.LineWidth = fixed64ToFloat64(raw)
		case renderFieldStopRadius:
			s.StopRadius = fixed64ToFloat64(raw)
		case renderFieldStopLabelFont:
			s.StopLabelFont = fixed64ToFloat64(raw)
		case renderFieldBusLabelFont:
			s.BusLabelFont = fixed64ToFloat64(raw)
		case renderFieldUnderlayerWidth:
			s.UnderlayerWidth = fixed64ToFloat64(raw)
		case renderFieldUnderlayerColor:
			s.UnderlayerColor = string(bytesVal)
		case renderFieldColorPalette:
			s.ColorPalette = append(s.ColorPalette, string(bytesVal))
		case renderFieldBusOffsetDX:
			s.BusLabelOffset[0] = fixed64ToFloat64(raw)
		case renderFieldBusOffsetDY:
			s.BusLabelOffset[1] = fixed64ToFloat64(raw)
		case renderFieldStopOffsetDX:
			s.StopLabelOffset[0] = fixed64ToFloat64(raw)
		case renderFieldStopOffsetDY:
			s.StopLabelOffset[1] = fixed64ToFloat64(raw)
		}

		return nil
	})

	return s, err
}

// routerStateT bundles decodeRouterState's return values for wire.go, which
// only needs to stash them until it knows whether a router state was present
// at all.
type routerStateT struct {
	settings    router.Settings
	vertexCount int
	edges       []graph.Edge
	waitVertex  map[string]int
	stepByEdge  map[int]router.Step
}

// Field numbers for the RouterState message and its nested Edge/WaitVertex/
// StepEntry messages.
const (
	routerFieldVelocity    protowire.Number = 1
	routerFieldWaitTime    protowire.Number = 2
	routerFieldVertexCount protowire.Number = 3
	routerFieldEdge        protowire.Number = 4
	routerFieldWaitVertex  protowire.Number = 5
	routerFieldStepEntry   protowire.Number = 6

	edgeFieldFrom   protowire.Number = 1
	edgeFieldTo     protowire.Number = 2
	edgeFieldWeight protowire.Number = 3

	waitVertexFieldStopName protowire.Number = 1
	waitVertexFieldVertexID protowire.Number = 2

	stepFieldEdgeID    protowire.Number = 1
	stepFieldKind      protowire.Number = 2
	stepFieldStopName  protowire.Number = 3
	stepFieldBusName   protowire.Number = 4
	stepFieldSpanCount protowire.Number = 5
	stepFieldTime      protowire.Number = 6
)

func encodeRouterState(r *router.Router) []byte {
	var b []byte
	b = appendDouble(b, routerFieldVelocity, r.Settings().BusVelocityKMH)
	b = appendVarint(b, routerFieldWaitTime, uint64(r.Settings().BusWaitTimeMin))
	b = appendVarint(b, routerFieldVertexCount, uint64(r.VertexCount()))

	for _, e := range r.Edges() {
		var eb []byte
		eb = appendVarint(eb, edgeFieldFrom, uint64(e.From))
		eb = appendVarint(eb, edgeFieldTo, uint64(e.To))
		eb = appendDouble(eb, edgeFieldWeight, e.Weight)
		b = appendMessage(b, routerFieldEdge, eb)
	}

	names := make([]string, 0, len(r.WaitVertices()))
	for name := range r.WaitVertices() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var wb []byte
		wb = appendString(wb, waitVertexFieldStopName, name)
		wb = appendVarint(wb, waitVertexFieldVertexID, uint64(r.WaitVertices()[name]))
		b = appendMessage(b, routerFieldWaitVertex, wb)
	}

	edgeIDs := make([]int, 0, len(r.StepByEdge()))
	for id := range r.StepByEdge() {
		edgeIDs = append(edgeIDs, id)
	}
	sort.Ints(edgeIDs)
	for _, id := range edgeIDs {
		step := r.StepByEdge()[id]
		var sb []byte
		sb = appendVarint(sb, stepFieldEdgeID, uint64(id))
		sb = appendVarint(sb, stepFieldKind, uint64(step.Kind))
		sb = appendString(sb, stepFieldStopName, step.StopName)
		sb = appendString(sb, stepFieldBusName, step.BusName)
		sb = appendVarint(sb, stepFieldSpanCount, uint64(step.SpanCount))
		sb = appendDouble(sb, stepFieldTime, step.Time)
		b = appendMessage(b, routerFieldStepEntry, sb)
	}

	return b
}

func decodeRouterState(b []byte) (router.Settings, int, []graph.Edge, map[string]int, map[int]router.Step, error) {
	var settings router.Settings
	var vertexCount int
	var edges []graph.Edge
	waitVertex := make(map[string]int)
	stepByEdge := make(map[int]router.Step)

	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case routerFieldVelocity:
			settings.BusVelocityKMH = fixed64ToFloat64(raw)
		case routerFieldWaitTime:
			settings.BusWaitTimeMin = int(raw)
		case routerFieldVertexCount:
			vertexCount = int(raw)
		case routerFieldEdge:
			e, err := decodeEdge(bytesVal)
			if err != nil {
				return err
			}
			edges = append(edges, e)
		case routerFieldWaitVertex:
			name, id, err := decodeWaitVertex(bytesVal)
			if err != nil {
				return err
			}
			waitVertex[name] = id
		case routerFieldStepEntry:
			id, step, err := decodeStepEntry(bytesVal)
			if err != nil {
				return err
			}
			stepByEdge[id] = step
		}

		return nil
	})

	return settings, vertexCount, edges, waitVertex, stepByEdge, err
}

func decodeEdge(b []byte) (graph.Edge, error) {
	var e graph.Edge
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case edgeFieldFrom:
			e.From = int(raw)
		case edgeFieldTo:
			e.To = int(raw)
		case edgeFieldWeight:
			e.Weight = fixed64ToFloat64(raw)
		}

		return nil
	})

	return e, err
}

func decodeWaitVertex(b []byte) (name string, id int, err error) {
	err = walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case waitVertexFieldStopName:
			name = string(bytesVal)
		case waitVertexFieldVertexID:
			id = int(raw)
		}

		return nil
	})

	return name, id, err
}

func decodeStepEntry(b []byte) (edgeID int, step router.Step, err error) {
	err = walkFields(b, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case stepFieldEdgeID:
			edgeID = int(raw)
		case stepFieldKind:
			step.Kind = router.StepKind(raw)
		case stepFieldStopName:
			step.StopName = string(bytesVal)
		case stepFieldBusName:
			step.BusName = string(bytesVal)
		case stepFieldSpanCount:
			step.SpanCount = int(raw)
		case stepFieldTime:
			step.Time = fixed64ToFloat64(raw)
		}

		return nil
	})

	return edgeID, step, err
}
