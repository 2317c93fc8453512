// Package selection resolves which point events are selected. The map and
// the timeline render events independently, so membership is decided by a
// value key rather than by identity.
package selection

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Key identifies an interaction target. Events from different traces that
// share a key are selected together.
type Key struct {
	Position orb.Point `json:"position"`
	Day      trace.Day `json:"day"`
	Action   string    `json:"action"`
}

// KeyOf returns the key of e.
func KeyOf(e trace.PointEvent) Key {
	return Key{Position: e.Position, Day: e.Day, Action: e.Action}
}

// Outcome reports what a click did.
type Outcome struct {
	// Entered is set when the resolver moved into a new group; the caller
	// runs the expand and camera side effects only then.
	Entered bool
	// Cleared is set when the click left the resolver with nothing selected.
	Cleared bool
	Key     Key
}

// Resolver holds the current selection. The zero value has nothing selected.
type Resolver struct {
	active bool
	key    Key
	group  []trace.PointEvent
}

// Click applies a click on clicked. events is the candidate set and enabled
// reports whether a trace may join the group.
func (r *Resolver) Click(clicked trace.PointEvent, events []trace.PointEvent, enabled func(int) bool) Outcome {
	k := KeyOf(clicked)
	if r.active && r.key == k {
		r.Clear()
		return Outcome{Cleared: true, Key: k}
	}

	var group []trace.PointEvent
	for _, e := range events {
		if enabled != nil && !enabled(e.TraceIndex) {
			continue
		}
		if KeyOf(e) == k {
			group = append(group, e)
		}
	}
	if len(group) == 0 {
		r.Clear()
		return Outcome{Cleared: true, Key: k}
	}

	r.active, r.key, r.group = true, k, group
	return Outcome{Entered: true, Key: k}
}

// Clear returns to nothing selected.
func (r *Resolver) Clear() {
	r.active, r.key, r.group = false, Key{}, nil
}

// Key returns the selected key; ok is false when nothing is selected.
func (r *Resolver) Key() (k Key, ok bool) {
	return r.key, r.active
}

// Contains reports whether e matches the selected key.
func (r *Resolver) Contains(e trace.PointEvent) bool {
	return r.active && KeyOf(e) == r.key
}

// Group returns a copy of the selected events.
func (r *Resolver) Group() []trace.PointEvent {
	if !r.active {
		return nil
	}
	out := make([]trace.PointEvent, len(r.group))
	copy(out, r.group)
	return out
}

// Dedup collapses events sharing a key, keeping the first of each.
func Dedup(events []trace.PointEvent) []trace.PointEvent {
	seen := make(map[Key]struct{}, len(events))
	out := make([]trace.PointEvent, 0, len(events))
	for _, e := range events {
		k := KeyOf(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
