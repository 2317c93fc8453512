package trace

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	testCases := []struct {
		in   string
		want Day
		ok   bool
	}{
		{"Monday", "Monday", true},
		{"  tuesday ", "Tuesday", true},
		{"SUNDAY", "Sunday", true},
		{"Funday", "", false},
		{"", "", false},
	}
	for _, tc := range testCases {
		got, ok := ParseDay(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestDataset_DaysPresentCalendarOrder(t *testing.T) {
	ds := &Dataset{Events: []PointEvent{
		{Day: "Friday"}, {Day: "Monday"}, {Day: "Friday"}, {Day: "Wednesday"},
	}}

	assert.Equal(t, []Day{"Monday", "Wednesday", "Friday"}, ds.DaysPresent())
}

func TestDataset_TraceLookup(t *testing.T) {
	ds := &Dataset{Traces: []Trace{{Index: 0, Name: "a"}, {Index: 1, Name: "b"}}}

	tr, ok := ds.Trace(1)
	require.True(t, ok)
	assert.Equal(t, "b", tr.Name)

	_, ok = ds.Trace(2)
	assert.False(t, ok)
	_, ok = ds.Trace(-1)
	assert.False(t, ok)
	assert.Equal(t, []int{0, 1}, ds.TraceIndices())
}

func TestDataset_Bounds(t *testing.T) {
	var empty *Dataset
	_, ok := empty.Bounds()
	assert.False(t, ok)

	ds := &Dataset{
		Segments: []TripSegment{{Path: orb.LineString{{0, 0}, {1, 1}}}},
		Events:   []PointEvent{{Position: orb.Point{-2, 3}}},
	}
	b, ok := ds.Bounds()
	require.True(t, ok)
	assert.Equal(t, orb.Point{-2, 0}, b.Min)
	assert.Equal(t, orb.Point{1, 3}, b.Max)
}

func TestColor_WithAlphaAndCSS(t *testing.T) {
	c := Color{65, 182, 196}
	assert.Equal(t, RGBA{65, 182, 196, SegmentAlpha}, c.WithAlpha(SegmentAlpha))
	assert.Equal(t, "rgb(65,182,196)", c.CSS())
}
