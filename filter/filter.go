// Package filter computes which trace records are visible under the
// current trace and day selection.
package filter

import (
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Record is anything owned by a trace and labelled with a day.
type Record interface {
	TraceIdx() int
	DayLabel() string
}

var (
	_ Record = trace.TripSegment{}
	_ Record = trace.PointEvent{}
)

// State is the user's filter choice.
type State struct {
	EnabledTraces map[int]struct{}
	SelectedDay   trace.Day
	ShowAllDays   bool
}

// NewState enables every given trace and selects day.
func NewState(traces []int, day trace.Day) State {
	s := State{EnabledTraces: make(map[int]struct{}, len(traces)), SelectedDay: day}
	for _, i := range traces {
		s.EnabledTraces[i] = struct{}{}
	}
	return s
}

// Visible returns the records admitted by s, in their original order.
// The result is always a fresh slice.
func Visible[T Record](records []T, s State) []T {
	out := make([]T, 0, len(records))
	if len(s.EnabledTraces) == 0 {
		return out
	}
	day := strings.TrimSpace(s.SelectedDay)
	for _, r := range records {
		if !s.IsEnabled(r.TraceIdx()) {
			continue
		}
		if !s.ShowAllDays && strings.TrimSpace(r.DayLabel()) != day {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsEnabled reports whether trace i is enabled.
func (s State) IsEnabled(i int) bool {
	_, ok := s.EnabledTraces[i]
	return ok
}

// ToggleTrace flips trace i and reports whether it is now enabled.
func (s *State) ToggleTrace(i int) bool {
	if s.EnabledTraces == nil {
		s.EnabledTraces = map[int]struct{}{}
	}
	if _, ok := s.EnabledTraces[i]; ok {
		delete(s.EnabledTraces, i)
		return false
	}
	s.EnabledTraces[i] = struct{}{}
	return true
}

// SetDay selects a single day.
func (s *State) SetDay(d trace.Day) {
	s.SelectedDay = d
}

// ToggleShowAllDays flips the all-days override.
func (s *State) ToggleShowAllDays() {
	s.ShowAllDays = !s.ShowAllDays
}

// SetShowAllDays sets the all-days override.
func (s *State) SetShowAllDays(b bool) {
	s.ShowAllDays = b
}

// Enabled returns the enabled trace indices in ascending order.
func (s State) Enabled() []int {
	out := make([]int, 0, len(s.EnabledTraces))
	for i := range s.EnabledTraces {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.EnabledTraces = make(map[int]struct{}, len(s.EnabledTraces))
	for i := range s.EnabledTraces {
		c.EnabledTraces[i] = struct{}{}
	}
	return c
}
