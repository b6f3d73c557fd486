package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/graph"
	"github.com/avlasov/transcat/internal/router"
)

func buildTestCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	c := catalogue.New()
	require.NoError(t, c.AddStop(catalogue.Stop{
		Name: "A", Coords: geo.Coordinates{Latitude: 55.611087, Longitude: 37.20829},
		NeighborDistances: map[string]float64{"B": 3000},
	}))
	require.NoError(t, c.AddStop(catalogue.Stop{
		Name: "B", Coords: geo.Coordinates{Latitude: 55.595884, Longitude: 37.209755},
		NeighborDistances: map[string]float64{"C": 2000},
	}))
	require.NoError(t, c.AddStop(catalogue.Stop{
		Name: "C", Coords: geo.Coordinates{Latitude: 55.632761, Longitude: 37.333324},
	}))
	require.NoError(t, c.AddBus(catalogue.Bus{Name: "1", Stops: []string{"A", "B", "C"}, IsCircular: true}))

	return c
}

func TestBuild_VertexCountIsTwicePerStop(t *testing.T) {
	c := buildTestCatalogue(t)
	r, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	assert.Equal(t, 6, r.VertexCount())
	assert.True(t, r.Built())
}

func TestRoute_SameStopIsZero(t *testing.T) {
	c := buildTestCatalogue(t)
	r, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	info, err := r.Route("A", "A")
	require.NoError(t, err)
	assert.Equal(t, 0.0, info.TotalTime)
	assert.Empty(t, info.Items)
}

func TestRoute_WellFormedAlternation(t *testing.T) {
	c := buildTestCatalogue(t)
	r, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	info, err := r.Route("A", "C")
	require.NoError(t, err)
	require.NotEmpty(t, info.Items)

	assert.Equal(t, router.StepWait, info.Items[0].Kind, "an itinerary always begins with Wait")
	for i, item := range info.Items {
		if i%2 == 0 {
			assert.Equal(t, router.StepWait, item.Kind)
			assert.Equal(t, 5.0, item.Time, "every Wait costs exactly bus_wait_time")
		} else {
			assert.Equal(t, router.StepRide, item.Kind)
		}
	}
}

func TestRoute_UnknownStop(t *testing.T) {
	c := buildTestCatalogue(t)
	r, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	_, err = r.Route("X", "A")
	assert.Error(t, err)
}

func TestFromParts_EdgeOutOfRangeRejected(t *testing.T) {
	c := buildTestCatalogue(t)
	r, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	badEdges := []graph.Edge{{From: 0, To: 99, Weight: 1}}
	_, err = router.FromParts(r.Settings(), 1, badEdges, r.WaitVertices(), r.StepByEdge())
	assert.Error(t, err, "FromParts replaying an edge referencing an out-of-range vertex must fail")
}

func TestFromParts_ReplaysEdgesIdentically(t *testing.T) {
	c := buildTestCatalogue(t)
	original, err := router.Build(c, router.Settings{BusVelocityKMH: 30, BusWaitTimeMin: 5})
	require.NoError(t, err)

	restored, err := router.FromParts(original.Settings(), original.VertexCount(), original.Edges(), original.WaitVertices(), original.StepByEdge())
	require.NoError(t, err)

	want, err := original.Route("A", "C")
	require.NoError(t, err)
	got, err := restored.Route("A", "C")
	require.NoError(t, err)

	assert.Equal(t, want.TotalTime, got.TotalTime)
	assert.Equal(t, want.Items, got.Items)
}
