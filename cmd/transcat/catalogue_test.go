package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avlasov/transcat/internal/reqresp"
)

func TestBuildCatalogue_StopsBeforeBuses(t *testing.T) {
	requests := []reqresp.BaseRequest{
		{Type: "Bus", Name: "1", Stops: []string{"A", "B"}, IsRoundtrip: true},
		{Type: "Stop", Name: "A", Latitude: 1, Longitude: 1, RoadDistances: map[string]float64{"B": 500}},
		{Type: "Stop", Name: "B", Latitude: 2, Longitude: 2},
	}

	cat, err := buildCatalogue(requests)
	require.NoError(t, err)

	info, err := cat.GetBusInfo("1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, info.RouteLength, "bus declared before its stops must still resolve correctly")
}

func TestBuildCatalogue_InvalidBusRejected(t *testing.T) {
	requests := []reqresp.BaseRequest{
		{Type: "Stop", Name: "A", Latitude: 1, Longitude: 1},
		{Type: "Bus", Name: "1", Stops: []string{"A"}},
	}

	_, err := buildCatalogue(requests)
	assert.Error(t, err)
}

func TestRenderSettingsFromBlob_ZeroFallsBackToDefault(t *testing.T) {
	s := renderSettingsFromBlob(reqresp.RenderSettings{})
	assert.NotZero(t, s.Width)
	assert.NotEmpty(t, s.ColorPalette)
}

func TestRenderSettingsFromBlob_PassesThroughNonZero(t *testing.T) {
	rs := reqresp.RenderSettings{Width: 1000, Height: 500, ColorPalette: []string{"gray"}}
	s := renderSettingsFromBlob(rs)
	assert.Equal(t, 1000.0, s.Width)
	assert.Equal(t, []string{"gray"}, s.ColorPalette)
}
