package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/reqresp"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/wire"
)

func buildTestSnapshot(t *testing.T) wire.Snapshot {
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

func TestAnswer_Stop(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Stop", Name: "A"})
	assert.Equal(t, []string{"1"}, resp.Buses)
	assert.Empty(t, resp.ErrorMessage)
}

func TestAnswer_StopNotFound(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Stop", Name: "nope"})
	assert.Equal(t, "not found", resp.ErrorMessage)
}

func TestAnswer_Bus(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Bus", Name: "1"})
	require.NotNil(t, resp.RouteLength)
	assert.Equal(t, 3000, *resp.RouteLength)
}

func TestAnswer_BusNotFound(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Bus", Name: "nope"})
	assert.Equal(t, "not found", resp.ErrorMessage)
}

func TestAnswer_Map(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Map"})
	require.NotNil(t, resp.Map)
	assert.Contains(t, *resp.Map, "<svg")
}

func TestAnswer_Route(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Route", From: "A", To: "B"})
	require.NotNil(t, resp.TotalTime)
	assert.NotEmpty(t, resp.Items)
	assert.Equal(t, "Wait", resp.Items[0].Type)
}

func TestAnswer_RouteUnknownStop(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Route", From: "X", To: "A"})
	assert.Equal(t, "not found", resp.ErrorMessage)
}

func TestAnswer_UnknownType(t *testing.T) {
	snap := buildTestSnapshot(t)
	resp := answer(snap, reqresp.StatRequest{ID: 1, Type: "Weather"})
	assert.Equal(t, "not found", resp.ErrorMessage)
}
