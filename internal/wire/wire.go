package wire

import (
	"io"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/transcaterr"
)

// Field numbers for the top-level Snapshot message.
const (
	snapshotFieldCatalogue      protowire.Number = 1
	snapshotFieldRenderSettings protowire.Number = 2
	snapshotFieldRouterState    protowire.Number = 3
)

// Snapshot is a fully assembled base: the catalogue, the render settings in
// effect at make-base time, and the router's transfer graph plus precomputed
// edge-to-step table. Serialize/Deserialize round-trip this without ever
// re-deriving it from scratch.
type Snapshot struct {
	Catalogue *catalogue.Catalogue
	Render    svgrender.Settings
	Router    *router.Router
}

// Serialize writes snap to w as a single length-delimited message: a 4-byte
// little-endian length prefix followed by the tagged-field body.
func Serialize(w io.Writer, snap Snapshot) error {
	var body []byte
	body = appendMessage(body, snapshotFieldCatalogue, encodeCatalogue(snap.Catalogue))
	body = appendMessage(body, snapshotFieldRenderSettings, encodeRenderSettings(snap.Render))
	if snap.Router != nil {
		body = appendMessage(body, snapshotFieldRouterState, encodeRouterState(snap.Router))
	}

	length := uint32(len(body))
	header := []byte{byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24)}

	if _, err := w.Write(header); err != nil {
		return transcaterr.Wrap(transcaterr.KindInternal, err, "wire: writing length header")
	}
	if _, err := w.Write(body); err != nil {
		return transcaterr.Wrap(transcaterr.KindInternal, err, "wire: writing body")
	}

	return nil
}

// Deserialize reads a Snapshot previously written by Serialize. The router
// state is rebuilt by replaying edges and recomputing Dijkstra labels
// (router.FromParts), never by re-running catalogue-to-graph construction.
// Any truncation or malformed field is reported as transcaterr.KindCorrupt.
func Deserialize(r io.Reader) (Snapshot, error) {
	header := make([]byte, 4)
	if _, err := io.ReadFull(r, header); err != nil {
		return Snapshot{}, transcaterr.Wrap(transcaterr.KindCorrupt, err, "wire: reading length header")
	}
	length := uint32(header[0]) | uint32(header[1])<<8 | uint32(header[2])<<16 | uint32(header[3])<<24

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return Snapshot{}, transcaterr.Wrap(transcaterr.KindCorrupt, err, "wire: reading body (want %d bytes)", length)
	}

	var snap Snapshot
	var routerState routerStateT
	var haveRouterState bool

	err := walkFields(body, func(num protowire.Number, typ protowire.Type, raw uint64, bytesVal []byte) error {
		switch num {
		case snapshotFieldCatalogue:
			cat, err := decodeCatalogue(bytesVal)
			if err != nil {
				return err
			}
			snap.Catalogue = cat
		case snapshotFieldRenderSettings:
			render, err := decodeRenderSettings(bytesVal)
			if err != nil {
				return err
			}
			snap.Render = render
		case snapshotFieldRouterState:
			settings, vertexCount, edges, waitVertex, stepByEdge, err := decodeRouterState(bytesVal)
			if err != nil {
				return err
			}
			routerState = routerStateT{settings, vertexCount, edges, waitVertex, stepByEdge}
			haveRouterState = true
		}

		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	if snap.Catalogue == nil {
		snap.Catalogue = catalogue.New()
	}

	if haveRouterState {
		r, err := router.FromParts(routerState.settings, routerState.vertexCount, routerState.edges, routerState.waitVertex, routerState.stepByEdge)
		if err != nil {
			return Snapshot{}, transcaterr.Wrap(transcaterr.KindCorrupt, err, "wire: rebuilding router from snapshot")
		}
		snap.Router = r
	}

	return snap, nil
}
