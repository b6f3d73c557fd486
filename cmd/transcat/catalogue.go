package main

import (
	"github.com/avlasov/transcat/internal/catalogue"
	"github.com/avlasov/transcat/internal/geo"
	"github.com/avlasov/transcat/internal/reqresp"
	"github.com/avlasov/transcat/internal/transcaterr"
)

// buildCatalogue ingests base_requests into a fresh Catalogue: every Stop
// entry first (so coordinates are in place before any bus references them),
// then every Bus entry, regardless of the order they appear in the input.
func buildCatalogue(requests []reqresp.BaseRequest) (*catalogue.Catalogue, error) {
	cat := catalogue.New()

	for _, req := range requests {
		if req.Type != "Stop" {
			continue
		}
		if err := cat.AddStop(catalogue.Stop{
			Name:              req.Name,
			Coords:            geo.Coordinates{Latitude: req.Latitude, Longitude: req.Longitude},
			NeighborDistances: req.RoadDistances,
		}); err != nil {
			return nil, transcaterr.Wrap(transcaterr.KindInvalidInput, err, "base_requests: adding stop %q", req.Name)
		}
	}

	for _, req := range requests {
		if req.Type != "Bus" {
			continue
		}
		if err := cat.AddBus(catalogue.Bus{
			Name:       req.Name,
			Stops:      req.Stops,
			IsCircular: req.IsRoundtrip,
		}); err != nil {
			return nil, transcaterr.Wrap(transcaterr.KindInvalidInput, err, "base_requests: adding bus %q", req.Name)
		}
	}

	return cat, nil
}

// stopCoords collects every stop's coordinates, for the renderer; dummy
// stops that were never declared appear with zero coordinates.
func stopCoords(cat *catalogue.Catalogue) map[string]geo.Coordinates {
	out := make(map[string]geo.Coordinates)
	for _, s := range cat.Stops() {
		out[s.Name] = s.Coords
	}

	return out
}
