package trace

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Defaults substituted for missing source fields.
const (
	DefaultTime       = "00:00"
	DefaultPOIName    = "Unknown Location"
	DefaultAction     = "Unknown Action"
	DefaultTravelMode = "Unknown"
)

// Well-known actions; any other label is allowed.
const (
	ActionArrival   = "arrival"
	ActionDeparture = "departure"
)

// SegmentAlpha is the alpha applied to a trace color for its paths and points.
const SegmentAlpha uint8 = 204

// Color is an RGB triple.
type Color [3]uint8

// RGBA is a color with alpha, as consumed by the rendering layers.
type RGBA [4]uint8

// WithAlpha returns c extended with alpha a.
func (c Color) WithAlpha(a uint8) RGBA {
	return RGBA{c[0], c[1], c[2], a}
}

// CSS returns c as an rgb() string for the timeline panel.
func (c Color) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c[0], c[1], c[2])
}

// Profile is static metadata about the person behind a trace.
type Profile struct {
	Age         int    `json:"age"`
	Occupation  string `json:"occupation"`
	Description string `json:"description"`
}

// Trace is one tracked person for the session.
type Trace struct {
	Index   int     `json:"traceIndex"`
	Name    string  `json:"name"`
	Color   Color   `json:"color"`
	Profile Profile `json:"profile"`
}

// TripSegment is one continuous path of a trace on a given day.
type TripSegment struct {
	TraceIndex int            `json:"traceIndex"`
	Path       orb.LineString `json:"path"`
	Day        Day            `json:"day"`
	Color      RGBA           `json:"color"`
}

// TraceIdx returns the owning trace index.
func (s TripSegment) TraceIdx() int { return s.TraceIndex }

// DayLabel returns the segment's day.
func (s TripSegment) DayLabel() string { return s.Day }

// PointEvent is one timestamped activity of a trace.
type PointEvent struct {
	TraceIndex int       `json:"traceIndex"`
	Position   orb.Point `json:"position"`
	Day        Day       `json:"day"`
	Time       string    `json:"time"`
	Action     string    `json:"action"`
	POIName    string    `json:"poiName"`
	TravelMode string    `json:"travelMode"`
}

// TraceIdx returns the owning trace index.
func (e PointEvent) TraceIdx() int { return e.TraceIndex }

// DayLabel returns the event's day.
func (e PointEvent) DayLabel() string { return e.Day }
