package main

import (
	"math"

	"github.com/avlasov/transcat/internal/reqresp"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/transcaterr"
	"github.com/avlasov/transcat/internal/wire"
)

// answer dispatches one stat_request against snap across its four query
// types. A NotFound/InvalidInput failure becomes a per-request error_message
// and never aborts the batch.
func answer(snap wire.Snapshot, req reqresp.StatRequest) reqresp.Response {
	switch req.Type {
	case "Stop":
		return answerStop(snap, req)
	case "Bus":
		return answerBus(snap, req)
	case "Map":
		return answerMap(snap, req)
	case "Route":
		return answerRoute(snap, req)
	default:
		return reqresp.NotFound(req.ID)
	}
}

func answerStop(snap wire.Snapshot, req reqresp.StatRequest) reqresp.Response {
	info, err := snap.Catalogue.GetStopInfo(req.Name)
	if err != nil {
		return errResponse(req.ID, err)
	}

	return reqresp.Response{RequestID: req.ID, Buses: info.Buses}
}

func answerBus(snap wire.Snapshot, req reqresp.StatRequest) reqresp.Response {
	info, err := snap.Catalogue.GetBusInfo(req.Name)
	if err != nil {
		return errResponse(req.ID, err)
	}

	routeLength := int(math.Round(info.RouteLength))
	curvature := info.Curvature
	stopCount := info.StopsCount
	uniqueStopCount := info.UniqueStopsCount

	return reqresp.Response{
		RequestID:       req.ID,
		Curvature:       &curvature,
		RouteLength:     &routeLength,
		StopCount:       &stopCount,
		UniqueStopCount: &uniqueStopCount,
	}
}

func answerMap(snap wire.Snapshot, req reqresp.StatRequest) reqresp.Response {
	buses := snap.Catalogue.Buses()
	routes := make([]svgrender.BusRoute, 0, len(buses))
	for _, bus := range buses {
		extended, err := snap.Catalogue.GetBusExtendedInfo(bus.Name)
		if err != nil {
			return errResponse(req.ID, err)
		}

		names := make([]string, len(extended))
		for i, sc := range extended {
			names[i] = sc.Name
		}
		routes = append(routes, svgrender.BusRoute{Name: bus.Name, Stops: names})
	}

	svg := svgrender.Render(routes, stopCoords(snap.Catalogue), snap.Render)

	return reqresp.Response{RequestID: req.ID, Map: &svg}
}

func answerRoute(snap wire.Snapshot, req reqresp.StatRequest) reqresp.Response {
	if snap.Router == nil || !snap.Router.Built() {
		return errResponse(req.ID, transcaterr.New(transcaterr.KindNotFound, "router not built"))
	}

	info, err := snap.Router.Route(req.From, req.To)
	if err != nil {
		return errResponse(req.ID, err)
	}

	total := info.TotalTime
	items := make([]reqresp.RouteItem, 0, len(info.Items))
	for _, step := range info.Items {
		items = append(items, routeItemFromStep(step))
	}

	return reqresp.Response{RequestID: req.ID, TotalTime: &total, Items: items}
}

func routeItemFromStep(step router.Step) reqresp.RouteItem {
	if step.Kind == router.StepWait {
		return reqresp.RouteItem{Type: "Wait", StopName: step.StopName, Time: step.Time}
	}

	return reqresp.RouteItem{Type: "Bus", Bus: step.BusName, SpanCount: step.SpanCount, Time: step.Time}
}

// errResponse translates a NotFound/InvalidInput core error into the
// output blob's fixed "not found" shape: both kinds are reported identically
// at the per-query level.
func errResponse(requestID int, _ error) reqresp.Response {
	return reqresp.NotFound(requestID)
}
