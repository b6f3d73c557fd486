package svgrender_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/svgrender"
)

func TestRender_ProducesSVGDocument(t *testing.T) {
	coords := map[string]geo.Coordinates{
		"A": {Latitude: 55.611087, Longitude: 37.20829},
		"B": {Latitude: 55.595884, Longitude: 37.209755},
	}
	routes := []svgrender.BusRoute{{Name: "1", Stops: []string{"A", "B"}}}

	svg := svgrender.Render(routes, coords, svgrender.Settings{})

	assert.True(t, strings.Contains(svg, "<svg"), "output must be an SVG document")
	assert.True(t, strings.Contains(svg, "</svg>"))
	assert.True(t, strings.Contains(svg, "A"))
	assert.True(t, strings.Contains(svg, "1"))
}

func TestRender_EmptyRoutes(t *testing.T) {
	svg := svgrender.Render(nil, nil, svgrender.DefaultSettings())
	assert.True(t, strings.Contains(svg, "<svg"))
}

func TestDefaultSettings_UsedWhenZero(t *testing.T) {
	assert.True(t, svgrender.Settings{}.IsZero())
	assert.False(t, svgrender.DefaultSettings().IsZero())
}
