package presentation

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/tracemap/filter"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
	"github.com/theoremus-urban-solutions/tracemap/viewport"
)

// Layer ids and styling shared with the renderer.
const (
	PathLayerID  = "trips"
	PointLayerID = "points"

	LayerOpacity       = 0.8
	PathWidthMinPixels = 2
	PathTrailLength    = 1000
	PathCurrentTime    = 1000

	PointRadius         = 100
	SelectedPointRadius = 200
	PointTransitionMS   = 500
)

// SelectedPointColor highlights members of the selected group.
var SelectedPointColor = trace.RGBA{0, 153, 255, 255}

// PathDatum is one rendered trip segment.
type PathDatum struct {
	TraceIndex int            `json:"traceIndex"`
	Day        trace.Day      `json:"day"`
	Path       orb.LineString `json:"path"`
	Color      trace.RGBA     `json:"color"`
}

// PathLayer describes the trips layer.
type PathLayer struct {
	ID             string      `json:"id"`
	Data           []PathDatum `json:"data"`
	Opacity        float64     `json:"opacity"`
	WidthMinPixels int         `json:"widthMinPixels"`
	TrailLength    int         `json:"trailLength"`
	CurrentTime    int         `json:"currentTime"`
	FadeTrail      bool        `json:"fadeTrail"`
}

// PointDatum is one rendered point event with its resolved style.
type PointDatum struct {
	trace.PointEvent
	Color    trace.RGBA `json:"color"`
	Radius   int        `json:"radius"`
	Selected bool       `json:"selected"`
}

// AttributeTransition animates one layer attribute.
type AttributeTransition struct {
	DurationMS int    `json:"durationMs"`
	Easing     string `json:"easing"`
}

// PointLayer describes the scatterplot of point events.
type PointLayer struct {
	ID          string                         `json:"id"`
	Data        []PointDatum                   `json:"data"`
	Opacity     float64                        `json:"opacity"`
	Pickable    bool                           `json:"pickable"`
	Transitions map[string]AttributeTransition `json:"transitions"`
}

// Layers is the full set handed to the renderer.
type Layers struct {
	Paths  PathLayer  `json:"paths"`
	Points PointLayer `json:"points"`
}

// BuildPathLayer returns the trips layer for the visible segments.
func BuildPathLayer(ds *trace.Dataset, snap session.Snapshot) PathLayer {
	visible := filter.Visible(ds.Segments, snap.Filter())
	data := make([]PathDatum, 0, len(visible))
	for _, s := range visible {
		data = append(data, PathDatum{TraceIndex: s.TraceIndex, Day: s.Day, Path: s.Path, Color: s.Color})
	}
	return PathLayer{
		ID:             PathLayerID,
		Data:           data,
		Opacity:        LayerOpacity,
		WidthMinPixels: PathWidthMinPixels,
		TrailLength:    PathTrailLength,
		CurrentTime:    PathCurrentTime,
		FadeTrail:      false,
	}
}

// BuildPointLayer returns the points layer for the visible events, with
// selected events highlighted by key.
func BuildPointLayer(ds *trace.Dataset, snap session.Snapshot) PointLayer {
	visible := filter.Visible(ds.Events, snap.Filter())
	data := make([]PointDatum, 0, len(visible))
	for _, e := range visible {
		d := PointDatum{PointEvent: e, Radius: PointRadius}
		if snap.IsSelected(e) {
			d.Selected = true
			d.Color = SelectedPointColor
			d.Radius = SelectedPointRadius
		} else {
			d.Color = traceColor(ds, e.TraceIndex).WithAlpha(trace.SegmentAlpha)
		}
		data = append(data, d)
	}
	tr := AttributeTransition{DurationMS: PointTransitionMS, Easing: viewport.EasingCubicInOut}
	return PointLayer{
		ID:       PointLayerID,
		Data:     data,
		Opacity:  LayerOpacity,
		Pickable: true,
		Transitions: map[string]AttributeTransition{
			"getColor":  tr,
			"getRadius": tr,
		},
	}
}

// BuildLayers returns both layers.
func BuildLayers(ds *trace.Dataset, snap session.Snapshot) Layers {
	return Layers{Paths: BuildPathLayer(ds, snap), Points: BuildPointLayer(ds, snap)}
}

func traceColor(ds *trace.Dataset, i int) trace.Color {
	if t, ok := ds.Trace(i); ok {
		return t.Color
	}
	return trace.Color{}
}
