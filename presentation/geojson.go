package presentation

import (
	"slices"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/tracemap/filter"
	"github.com/theoremus-urban-solutions/tracemap/selection"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// FeatureCollection exports the visible segments as LineStrings and the
// visible events as Points. An active selection adds one "selection" Point
// per distinct key in the selected group.
func FeatureCollection(ds *trace.Dataset, snap session.Snapshot) *geojson.FeatureCollection {
	f := snap.Filter()
	fc := geojson.NewFeatureCollection()

	for _, s := range filter.Visible(ds.Segments, f) {
		feat := geojson.NewFeature(s.Path)
		feat.Properties["kind"] = "segment"
		feat.Properties["traceIndex"] = s.TraceIndex
		feat.Properties["day"] = s.Day
		feat.Properties["lengthMeters"] = geo.Length(s.Path)
		feat.Properties["color"] = []int{int(s.Color[0]), int(s.Color[1]), int(s.Color[2]), int(s.Color[3])}
		if t, ok := ds.Trace(s.TraceIndex); ok {
			feat.Properties["trace"] = t.Name
		}
		fc.Append(feat)
	}

	for _, e := range filter.Visible(ds.Events, f) {
		feat := geojson.NewFeature(e.Position)
		feat.Properties["kind"] = "event"
		feat.Properties["traceIndex"] = e.TraceIndex
		feat.Properties["day"] = e.Day
		feat.Properties["time"] = e.Time
		feat.Properties["action"] = e.Action
		feat.Properties["poiName"] = e.POIName
		feat.Properties["travelMode"] = e.TravelMode
		feat.Properties["selected"] = snap.IsSelected(e)
		if t, ok := ds.Trace(e.TraceIndex); ok {
			feat.Properties["trace"] = t.Name
		}
		fc.Append(feat)
	}

	for _, e := range selection.Dedup(snap.SelectedGroup) {
		key := selection.KeyOf(e)
		var members int
		var traces []int
		for _, m := range snap.SelectedGroup {
			if selection.KeyOf(m) != key {
				continue
			}
			members++
			if !slices.Contains(traces, m.TraceIndex) {
				traces = append(traces, m.TraceIndex)
			}
		}
		slices.Sort(traces)

		feat := geojson.NewFeature(e.Position)
		feat.Properties["kind"] = "selection"
		feat.Properties["day"] = key.Day
		feat.Properties["action"] = key.Action
		feat.Properties["members"] = members
		feat.Properties["traceIndices"] = traces
		fc.Append(feat)
	}
	return fc
}
