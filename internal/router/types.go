// Package router builds a transfer-aware transport graph: each stop expands
// to a wait vertex and a ride vertex, wait edges model boarding cost, and
// ride edges always land on a wait vertex so that changing buses forces
// exactly one extra wait. Dijkstra (cached by internal/dijkstra) then
// reconstructs an itinerary of Wait/Ride steps for any (from, to) query.
package router

import "errors"

// ErrNotBuilt is returned by Route when the router has not reached the
// Built state.
var ErrNotBuilt = errors.New("router: not built")

// Settings configures the wait/ride cost model.
type Settings struct {
	// BusVelocityKMH is the constant bus speed, in km/h. Must be positive.
	BusVelocityKMH float64
	// BusWaitTimeMin is the minutes a passenger waits at a stop before
	// boarding. Must be non-negative.
	BusWaitTimeMin int
}

// StepKind distinguishes the two Step variants: waiting at a stop, or
// riding a bus between two stops.
type StepKind int

const (
	// StepWait is time spent standing at a stop before boarding.
	StepWait StepKind = iota
	// StepRide is time spent riding a bus between two stops.
	StepRide
)

// Step is one leg of an itinerary: either Wait{StopName, Time} or
// Ride{BusName, SpanCount, Time}, discriminated by Kind.
type Step struct {
	Kind StepKind

	// Wait fields.
	StopName string

	// Ride fields.
	BusName   string
	SpanCount int

	// Time is meaningful for both kinds: wait minutes or ride minutes.
	Time float64
}

// RouteInfo is the result of a successful Route query: total itinerary time
// in minutes, and the ordered Wait/Ride legs that produce it.
type RouteInfo struct {
	TotalTime float64
	Items     []Step
}

// state is the router's lifecycle: Empty just after construction, Built
// after a successful Build/restore, Invalid if construction failed. Only
// Built accepts Route.
type state int

const (
	stateEmpty state = iota
	stateBuilt
	stateInvalid
)
