package selection

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tracemap/trace"
)

func event(traceIdx int, lon, lat float64, day, action string) trace.PointEvent {
	return trace.PointEvent{
		TraceIndex: traceIdx,
		Position:   orb.Point{lon, lat},
		Day:        day,
		Action:     action,
		Time:       "08:00",
	}
}

func enabledSet(idx ...int) func(int) bool {
	set := map[int]bool{}
	for _, i := range idx {
		set[i] = true
	}
	return func(i int) bool { return set[i] }
}

func active(r *Resolver) bool {
	_, ok := r.Key()
	return ok
}

func TestClick_TogglesOnSameKey(t *testing.T) {
	e := event(0, 1, 2, "Monday", trace.ActionArrival)
	events := []trace.PointEvent{e}
	var r Resolver

	out := r.Click(e, events, enabledSet(0))
	assert.True(t, out.Entered)
	assert.True(t, active(&r))
	assert.True(t, r.Contains(e))

	// a different but equal-keyed value also toggles off
	again := e
	again.Time = "09:30"
	out = r.Click(again, events, enabledSet(0))
	assert.False(t, out.Entered)
	assert.True(t, out.Cleared)
	assert.False(t, active(&r))
	assert.Nil(t, r.Group())

	t.Log("✓ Second click on the same key clears the selection")
}

func TestClick_GroupsAcrossTraces(t *testing.T) {
	a := event(0, 5, 5, "Monday", trace.ActionArrival)
	b := event(1, 5, 5, "Monday", trace.ActionArrival)
	other := event(1, 5, 5, "Monday", trace.ActionDeparture)
	events := []trace.PointEvent{a, other, b}
	var r Resolver

	out := r.Click(a, events, enabledSet(0, 1))
	require.True(t, out.Entered)
	assert.Equal(t, []trace.PointEvent{a, b}, r.Group())
	assert.True(t, r.Contains(b))
	assert.False(t, r.Contains(other))

	k, ok := r.Key()
	assert.True(t, ok)
	assert.Equal(t, KeyOf(a), k)
}

func TestClick_DifferentKeyReplacesGroup(t *testing.T) {
	a := event(0, 1, 1, "Monday", "arrival")
	b := event(0, 2, 2, "Monday", "arrival")
	events := []trace.PointEvent{a, b}
	var r Resolver

	r.Click(a, events, enabledSet(0))
	out := r.Click(b, events, enabledSet(0))
	assert.True(t, out.Entered)
	assert.Equal(t, []trace.PointEvent{b}, r.Group())
	assert.False(t, r.Contains(a))
}

func TestClick_DisabledTraceYieldsNothingSelected(t *testing.T) {
	a := event(0, 1, 1, "Monday", "arrival")
	b := event(1, 2, 2, "Monday", "arrival")
	events := []trace.PointEvent{a, b}
	var r Resolver

	r.Click(a, events, enabledSet(0, 1))
	require.True(t, active(&r))

	out := r.Click(b, events, enabledSet(0))
	assert.False(t, out.Entered)
	assert.True(t, out.Cleared)
	assert.False(t, active(&r))
}

// Disabling every member's trace leaves the selection in place until the
// next click.
func TestClick_StaleSelectionAfterDisable(t *testing.T) {
	a := event(0, 1, 1, "Monday", "arrival")
	b := event(1, 1, 1, "Monday", "arrival")
	events := []trace.PointEvent{a, b}
	enabled := map[int]bool{0: true, 1: true}
	isEnabled := func(i int) bool { return enabled[i] }
	var r Resolver

	r.Click(a, events, isEnabled)
	enabled[0], enabled[1] = false, false

	assert.True(t, active(&r))
	assert.Len(t, r.Group(), 2)
	assert.True(t, r.Contains(a))

	out := r.Click(a, events, isEnabled)
	assert.True(t, out.Cleared)
	assert.False(t, active(&r))

	t.Log("✓ Stale selection kept until the next click")
}

func TestGroup_ReturnsCopy(t *testing.T) {
	a := event(0, 1, 1, "Monday", "arrival")
	var r Resolver
	r.Click(a, []trace.PointEvent{a}, nil)

	g := r.Group()
	g[0].POIName = "changed"
	assert.Equal(t, "", r.Group()[0].POIName)

	r.Clear()
	assert.Nil(t, r.Group())
}

func TestDedup(t *testing.T) {
	a := event(0, 1, 1, "Monday", "arrival")
	b := event(1, 1, 1, "Monday", "arrival")
	c := event(0, 1, 1, "Tuesday", "arrival")
	d := event(0, 2, 2, "Monday", "arrival")

	got := Dedup([]trace.PointEvent{a, b, c, a, d})
	assert.Equal(t, []trace.PointEvent{a, c, d}, got)
	assert.Empty(t, Dedup(nil))
}
