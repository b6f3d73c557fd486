package svgrender

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/avlasov/transcat/internal/geo"
)

// BusRoute is the minimal shape svgrender needs for one bus: its name and
// the ordered stop names it declares. Neither the caller (cmd/transcat) nor
// svgrender expands the return leg of a there-and-back bus; the polyline is
// drawn through the declared stops only.
type BusRoute struct {
	Name  string
	Stops []string // ordered stop names, as declared (no return-leg expansion)
}

// Render draws every bus route and every stop onto an SVG canvas sized by
// settings, projecting geographic coordinates into pixel space, and returns
// the serialized SVG document.
func Render(routes []BusRoute, coords map[string]geo.Coordinates, settings Settings) string {
	if settings.IsZero() {
		settings = DefaultSettings()
	}

	proj := newProjection(coords, settings)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(int(settings.Width), int(settings.Height))

	for i, route := range routes {
		drawRoute(canvas, route, proj, settings, i)
	}

	stopNames := make([]string, 0, len(coords))
	for name := range coords {
		stopNames = append(stopNames, name)
	}
	sort.Strings(stopNames)

	for _, name := range stopNames {
		x, y := proj.project(coords[name])
		canvas.Circle(int(x), int(y), int(settings.StopRadius), "fill:white")
	}
	for _, name := range stopNames {
		x, y := proj.project(coords[name])
		drawLabel(canvas, x+settings.StopLabelOffset[0], y+settings.StopLabelOffset[1], name, settings.StopLabelFont, settings.UnderlayerColor, settings.UnderlayerWidth, "black")
	}

	canvas.End()

	return buf.String()
}

func drawRoute(canvas *svg.SVG, route BusRoute, proj projection, settings Settings, colorIndex int) {
	if len(route.Stops) == 0 {
		return
	}

	color := settings.ColorPalette[colorIndex%len(settings.ColorPalette)]

	xs := make([]int, len(route.Stops))
	ys := make([]int, len(route.Stops))
	for i, name := range route.Stops {
		x, y := proj.project(proj.coords[name])
		xs[i], ys[i] = int(x), int(y)
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", color, settings.LineWidth)
	canvas.Polyline(xs, ys, style)

	first, last := route.Stops[0], route.Stops[len(route.Stops)-1]
	fx, fy := proj.project(proj.coords[first])
	drawLabel(canvas, fx+settings.BusLabelOffset[0], fy+settings.BusLabelOffset[1], route.Name, settings.BusLabelFont, settings.UnderlayerColor, settings.UnderlayerWidth, color)
	if last != first {
		lx, ly := proj.project(proj.coords[last])
		drawLabel(canvas, lx+settings.BusLabelOffset[0], ly+settings.BusLabelOffset[1], route.Name, settings.BusLabelFont, settings.UnderlayerColor, settings.UnderlayerWidth, color)
	}
}

func drawLabel(canvas *svg.SVG, x, y float64, text string, fontSize float64, underlayerColor string, underlayerWidth float64, fill string) {
	underlayStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%g;font-size:%gpx", underlayerColor, underlayerColor, underlayerWidth, fontSize)
	canvas.Text(int(x), int(y), text, underlayStyle)
	fillStyle := fmt.Sprintf("fill:%s;font-size:%gpx", fill, fontSize)
	canvas.Text(int(x), int(y), text, fillStyle)
}

// projection maps geographic coordinates linearly into the padded pixel
// rectangle [padding, width-padding] x [padding, height-padding], flipping
// latitude so north is up.
type projection struct {
	coords         map[string]geo.Coordinates
	minLat, maxLat float64
	minLon, maxLon float64
	xScale, yScale float64
	padding        float64
}

func newProjection(coords map[string]geo.Coordinates, settings Settings) projection {
	p := projection{coords: coords, padding: settings.Padding}
	first := true
	for _, c := range coords {
		if c.IsZero() {
			continue
		}
		if first {
			p.minLat, p.maxLat = c.Latitude, c.Latitude
			p.minLon, p.maxLon = c.Longitude, c.Longitude
			first = false

			continue
		}
		p.minLat = math.Min(p.minLat, c.Latitude)
		p.maxLat = math.Max(p.maxLat, c.Latitude)
		p.minLon = math.Min(p.minLon, c.Longitude)
		p.maxLon = math.Max(p.maxLon, c.Longitude)
	}

	innerW := settings.Width - 2*settings.Padding
	innerH := settings.Height - 2*settings.Padding
	if p.maxLon > p.minLon {
		p.xScale = innerW / (p.maxLon - p.minLon)
	}
	if p.maxLat > p.minLat {
		p.yScale = innerH / (p.maxLat - p.minLat)
	}

	return p
}

func (p projection) project(c geo.Coordinates) (x, y float64) {
	x = (c.Longitude-p.minLon)*p.xScale + p.padding
	y = (p.maxLat-c.Latitude)*p.yScale + p.padding

	return x, y
}
