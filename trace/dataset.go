package trace

import (
	"sort"

	"github.com/paulmach/orb"
)

// Dataset is the normalized, read-only result of one bulk load.
type Dataset struct {
	Traces   []Trace
	Segments []TripSegment
	Events   []PointEvent
}

// Trace returns the trace with index i.
func (d *Dataset) Trace(i int) (Trace, bool) {
	if d == nil || i < 0 || i >= len(d.Traces) {
		return Trace{}, false
	}
	return d.Traces[i], true
}

// TraceIndices returns every trace index in ascending order.
func (d *Dataset) TraceIndices() []int {
	if d == nil {
		return nil
	}
	out := make([]int, len(d.Traces))
	for i, t := range d.Traces {
		out[i] = t.Index
	}
	return out
}

// DaysPresent returns the distinct event days in calendar order.
func (d *Dataset) DaysPresent() []Day {
	if d == nil {
		return nil
	}
	seen := map[Day]struct{}{}
	out := []Day{}
	for _, e := range d.Events {
		if _, ok := seen[e.Day]; ok {
			continue
		}
		seen[e.Day] = struct{}{}
		out = append(out, e.Day)
	}
	sort.SliceStable(out, func(i, j int) bool { return DayOrder(out[i]) < DayOrder(out[j]) })
	return out
}

// Bounds returns the bounding box over all paths and positions.
// ok is false for an empty dataset.
func (d *Dataset) Bounds() (b orb.Bound, ok bool) {
	if d == nil {
		return orb.Bound{}, false
	}
	for _, s := range d.Segments {
		if !ok {
			b, ok = s.Path.Bound(), true
			continue
		}
		b = b.Union(s.Path.Bound())
	}
	for _, e := range d.Events {
		if !ok {
			b, ok = e.Position.Bound(), true
			continue
		}
		b = b.Extend(e.Position)
	}
	return b, ok
}
