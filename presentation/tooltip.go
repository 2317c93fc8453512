package presentation

import (
	"fmt"

	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Tooltip describes the hover card.
type Tooltip struct {
	Title      string  `json:"title"`
	Person     string  `json:"person"`
	Location   string  `json:"location"`
	Action     string  `json:"action"`
	Day        string  `json:"day"`
	TravelMode string  `json:"travelMode"`
	Time       string  `json:"time"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// BuildTooltip returns the hover card, or nil when nothing is hovered.
func BuildTooltip(ds *trace.Dataset, snap session.Snapshot) *Tooltip {
	if snap.Hover == nil {
		return nil
	}
	e := snap.Hover.Event
	profile := trace.Profile{}
	if t, ok := ds.Trace(e.TraceIndex); ok {
		profile = t.Profile
	}
	return &Tooltip{
		Title:      fmt.Sprintf("Trace %d", e.TraceIndex+1),
		Person:     fmt.Sprintf("%d years old, %s", profile.Age, profile.Occupation),
		Location:   e.POIName,
		Action:     e.Action,
		Day:        e.Day,
		TravelMode: e.TravelMode,
		Time:       e.Time,
		X:          snap.Hover.X,
		Y:          snap.Hover.Y,
	}
}
