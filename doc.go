// Package transcat is a transport-catalogue query engine: it ingests stop
// and bus definitions, builds a directed distance graph and a cached
// wait/ride router over it, and answers Stop, Bus, Route and Map queries.
//
// The engine is split into small internal packages composed by cmd/transcat:
//
//	internal/geo        — great-circle distance between coordinates
//	internal/catalogue  — Stop/Bus storage and the declared distance table
//	internal/graph      — dense-integer-id weighted directed multigraph
//	internal/dijkstra   — cached all-pairs shortest-path engine
//	internal/router     — wait/ride transfer graph and route reconstruction
//	internal/wire       — binary snapshot serialization (make-base output)
//	internal/reqresp    — JSON request/response blobs
//	internal/svgrender  — SVG rendering for Map queries
//	internal/transcaterr — shared error kind taxonomy
//
// cmd/transcat exposes two subcommands: make-base reads base_requests and
// routing/render settings from stdin and writes a serialized snapshot to
// disk; process-requests reads that snapshot back and answers stat_requests
// read from stdin, writing JSON responses to stdout.
package transcat
