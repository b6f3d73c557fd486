// Package reqresp translates the textual JSON input/output blob into and out
// of the core's types. It is deliberately kept outside internal/catalogue
// and internal/router, which have no JSON concerns of their own.
package reqresp

// Input is the top-level decoded request blob.
type Input struct {
	BaseRequests          []BaseRequest         `json:"base_requests"`
	StatRequests          []StatRequest         `json:"stat_requests"`
	RenderSettings        RenderSettings        `json:"render_settings"`
	RoutingSettings       RoutingSettings       `json:"routing_settings"`
	SerializationSettings SerializationSettings `json:"serialization_settings"`
}

// BaseRequest is one entry of base_requests: either a Stop or a Bus
// declaration, discriminated by Type.
type BaseRequest struct {
	Type string `json:"type"`

	// Stop fields.
	Name          string             `json:"name"`
	Latitude      float64            `json:"latitude"`
	Longitude     float64            `json:"longitude"`
	RoadDistances map[string]float64 `json:"road_distances,omitempty"`

	// Bus fields.
	Stops       []string `json:"stops,omitempty"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

// StatRequest is one entry of stat_requests: a tagged query with an id the
// corresponding Response must echo back.
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`

	// Stop / Bus queries.
	Name string `json:"name,omitempty"`

	// Route queries.
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// RenderSettings is the opaque-to-the-core map handed through to
// internal/svgrender, given a concrete shape here (SPEC_FULL.md §3).
type RenderSettings struct {
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Padding         float64    `json:"padding"`
	LineWidth       float64    `json:"line_width"`
	StopRadius      float64    `json:"stop_radius"`
	StopLabelFont   float64    `json:"stop_label_font_size"`
	BusLabelFont    float64    `json:"bus_label_font_size"`
	UnderlayerWidth float64    `json:"underlayer_width"`
	UnderlayerColor string     `json:"underlayer_color"`
	ColorPalette    []string   `json:"color_palette"`
	BusLabelOffset  [2]float64 `json:"bus_label_offset"`
	StopLabelOffset [2]float64 `json:"stop_label_offset"`
}

// RoutingSettings mirrors router.Settings in wire-blob form.
type RoutingSettings struct {
	BusVelocity float64 `json:"bus_velocity"`
	BusWaitTime int     `json:"bus_wait_time"`
}

// SerializationSettings names the persistent file both CLI subcommands
// operate on.
type SerializationSettings struct {
	File string `json:"file"`
}

// Response is one entry of the output blob, tagged by RequestID. Exactly one
// of the type-specific groups below is populated, matching which StatRequest
// it answers; ErrorMessage is set instead when the query failed.
type Response struct {
	RequestID int `json:"request_id"`

	ErrorMessage string `json:"error_message,omitempty"`

	// Bus response fields.
	Curvature       *float64 `json:"curvature,omitempty"`
	RouteLength     *int     `json:"route_length,omitempty"`
	StopCount       *int     `json:"stop_count,omitempty"`
	UniqueStopCount *int     `json:"unique_stop_count,omitempty"`

	// Stop response field.
	Buses []string `json:"buses,omitempty"`

	// Map response field.
	Map *string `json:"map,omitempty"`

	// Route response fields.
	TotalTime *float64    `json:"total_time,omitempty"`
	Items     []RouteItem `json:"items,omitempty"`
}

// RouteItem is one alternating Wait/Bus leg of a Route response.
type RouteItem struct {
	Type string `json:"type"` // "Wait" or "Bus"

	// Wait fields.
	StopName string `json:"stop_name,omitempty"`

	// Bus (ride) fields.
	Bus       string `json:"bus,omitempty"`
	SpanCount int    `json:"span_count,omitempty"`

	Time float64 `json:"time"`
}
