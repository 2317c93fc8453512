package normalize

import (
	"strings"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/loader"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Normalize builds the dataset from settled loader results. Failed results
// are skipped; the surviving documents are indexed in order, so the trace
// index is the position among successful loads. Structural gaps are logged
// and never returned as errors.
func Normalize(results []loader.Result, meta map[string]Meta, log *zap.Logger) *trace.Dataset {
	log = internal.OrNop(log)
	ds := &trace.Dataset{
		Traces:   []trace.Trace{},
		Segments: []trace.TripSegment{},
		Events:   []trace.PointEvent{},
	}

	for _, r := range results {
		if r.Err != nil || r.Document == nil {
			continue
		}
		idx := len(ds.Traces)
		t := buildTrace(idx, r.Source.Name, meta[r.Source.Name])
		ds.Traces = append(ds.Traces, t)

		l := log.With(zap.String("source", r.Source.Name), zap.Int("traceIndex", idx))
		ds.Segments = append(ds.Segments, segments(t, r.Document.TripLayer, l)...)
		ds.Events = append(ds.Events, events(t, r.Document.PointLayer, l)...)
	}

	log.Info("dataset normalized",
		zap.Int("traces", len(ds.Traces)),
		zap.Int("segments", len(ds.Segments)),
		zap.Int("events", len(ds.Events)))
	return ds
}

func buildTrace(idx int, name string, m Meta) trace.Trace {
	t := trace.Trace{Index: idx, Name: name, Color: PaletteColor(idx), Profile: UnknownProfile}
	if m.Color != nil {
		t.Color = *m.Color
	}
	if m.Profile != nil {
		t.Profile = *m.Profile
	}
	return t
}

func segments(t trace.Trace, layer *loader.RawTripLayer, log *zap.Logger) []trace.TripSegment {
	if layer == nil {
		log.Warn("document has no trip layer")
		return nil
	}
	color := t.Color.WithAlpha(trace.SegmentAlpha)
	out := make([]trace.TripSegment, 0, len(layer.Routes))
	for i, route := range layer.Routes {
		path := make(orb.LineString, 0, len(route))
		for _, c := range route {
			if p, ok := point(c); ok {
				path = append(path, p)
			}
		}
		if len(path) < 2 {
			log.Warn("dropping route with fewer than two valid coordinates", zap.Int("route", i))
			continue
		}
		out = append(out, trace.TripSegment{
			TraceIndex: t.Index,
			Path:       path,
			Day:        day(at(layer.Day, i), log),
			Color:      color,
		})
	}
	return out
}

func events(t trace.Trace, layer *loader.RawPointLayer, log *zap.Logger) []trace.PointEvent {
	if layer == nil {
		log.Warn("document has no point layer")
		return nil
	}
	out := make([]trace.PointEvent, 0, len(layer.Coordinates))
	for i, c := range layer.Coordinates {
		p, ok := point(c)
		if !ok {
			log.Warn("dropping event with invalid coordinates", zap.Int("event", i))
			continue
		}
		out = append(out, trace.PointEvent{
			TraceIndex: t.Index,
			Position:   p,
			Day:        day(at(layer.Day, i), log),
			Time:       orDefault(at(layer.Time, i), trace.DefaultTime),
			Action:     orDefault(at(layer.Action, i), trace.DefaultAction),
			POIName:    orDefault(at(layer.POIName, i), trace.DefaultPOIName),
			TravelMode: orDefault(at(layer.TravelMode, i), trace.DefaultTravelMode),
		})
	}
	return out
}

func point(c []float64) (orb.Point, bool) {
	if len(c) < 2 {
		return orb.Point{}, false
	}
	return orb.Point{c[0], c[1]}, true
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func day(s string, log *zap.Logger) trace.Day {
	if strings.TrimSpace(s) == "" {
		return trace.FirstDay
	}
	d, ok := trace.ParseDay(s)
	if !ok {
		log.Warn("unrecognized day label", zap.String("day", s), zap.String("replacement", trace.FirstDay))
		return trace.FirstDay
	}
	return d
}
