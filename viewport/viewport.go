// Package viewport computes damped camera moves toward selected locations.
package viewport

import (
	"math"
	"time"
)

// Interpolator and easing names understood by the map renderer.
const (
	InterpolatorFlyTo = "flyTo"
	EasingCubicInOut  = "cubicInOut"
)

// Defaults for the initial view and the damped move.
const (
	DefaultLongitude    = -0.1278
	DefaultLatitude     = 51.5574
	DefaultZoom         = 11.0
	DefaultRetainFactor = 0.3
	DefaultZoomStep     = 0.3
	DefaultMaxZoom      = 13.0
	DefaultDuration     = 1000 * time.Millisecond
)

// Viewport is the camera state.
type Viewport struct {
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Zoom      float64 `json:"zoom" validate:"gte=0"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
}

// Default returns the initial view.
func Default() Viewport {
	return Viewport{Longitude: DefaultLongitude, Latitude: DefaultLatitude, Zoom: DefaultZoom}
}

// Transition describes how the renderer animates to the next viewport.
type Transition struct {
	DurationMS   int    `json:"durationMs"`
	Interpolator string `json:"interpolator"`
	Easing       string `json:"easing"`
	// Interactive is always true: free pan and zoom resume after the move.
	Interactive bool `json:"interactive"`
}

// Controller computes camera moves.
type Controller struct {
	RetainFactor float64
	ZoomStep     float64
	MaxZoom      float64
	Duration     time.Duration
}

// NewController returns a Controller with the default tuning.
func NewController() *Controller {
	return &Controller{
		RetainFactor: DefaultRetainFactor,
		ZoomStep:     DefaultZoomStep,
		MaxZoom:      DefaultMaxZoom,
		Duration:     DefaultDuration,
	}
}

// MoveToward returns the next viewport on the way from current to the
// target. Each axis keeps RetainFactor of its remaining distance, and zoom
// steps up, capped at MaxZoom. Pitch and bearing are kept.
func (c *Controller) MoveToward(targetLon, targetLat float64, current Viewport) Viewport {
	next := current
	next.Longitude = targetLon + (current.Longitude-targetLon)*c.RetainFactor
	next.Latitude = targetLat + (current.Latitude-targetLat)*c.RetainFactor
	next.Zoom = math.Min(current.Zoom+c.ZoomStep, c.MaxZoom)
	return next
}

// Transition returns the animation applied to every controller move.
func (c *Controller) Transition() Transition {
	return Transition{
		DurationMS:   int(c.Duration / time.Millisecond),
		Interpolator: InterpolatorFlyTo,
		Easing:       EasingCubicInOut,
		Interactive:  true,
	}
}
