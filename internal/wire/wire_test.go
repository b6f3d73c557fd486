package wire_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/wire"
)

func buildSnapshot(t *testing.T) wire.Snapshot {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop(catalogue.Stop{
		Name: "A", Coords: geo.Coordinates{Latitude: 55.611087, Longitude: 37.20829},
		NeighborDistances: map[string]float64{"B": 3000},
	}))
	require.NoError(t, cat.AddStop(catalogue.Stop{
		Name: "B", Coords: geo.Coordinates{Latitude: 55.595884, Longitude: 37.209755},
	}))
	require.NoError(t, cat.AddBus(catalogue.Bus{Name: "1", Stops: []string{"A", "B"}, IsCircular: true}))

	r, err := router.Build(cat, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	return wire.Snapshot{Catalogue: cat, Render: svgrender.DefaultSettings(), Router: r}
}

func TestSerializeDeserialize_Roundtrip(t *testing.T) {
	snap := buildSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, wire.Serialize(&buf, snap))

	restored, err := wire.Deserialize(&buf)
	require.NoError(t, err)

	assert.ElementsMatch(t, snap.Catalogue.Stops(), restored.Catalogue.Stops())
	assert.ElementsMatch(t, snap.Catalogue.Buses(), restored.Catalogue.Buses())
	assert.Equal(t, snap.Render, restored.Render)

	want, err := snap.Router.Route("A", "B")
	require.NoError(t, err)
	got, err := restored.Router.Route("A", "B")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDeserialize_TruncatedInputIsCorrupt(t *testing.T) {
	snap := buildSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, wire.Serialize(&buf, snap))

	truncated := buf.Bytes()[:buf.Len()-2]
	_, err := wire.Deserialize(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestDeserialize_EmptyInputIsCorrupt(t *testing.T) {
	_, err := wire.Deserialize(bytes.NewReader(nil))
	assert.Error(t, err)
}
