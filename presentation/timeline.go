package presentation

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/tracemap/filter"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// TimelineEntry is one activity row of an expanded trace.
type TimelineEntry struct {
	trace.PointEvent
	Selected bool `json:"selected"`
}

// TimelineGroup is the panel section of one trace.
type TimelineGroup struct {
	TraceIndex int             `json:"traceIndex"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle"`
	Profile    trace.Profile   `json:"profile"`
	Color      string          `json:"color"`
	Enabled    bool            `json:"enabled"`
	Expanded   bool            `json:"expanded"`
	Entries    []TimelineEntry `json:"entries,omitempty"`
}

// Timeline is the model of the side panel.
type Timeline struct {
	Panel       session.Panel   `json:"panel"`
	DayOptions  []trace.Day     `json:"dayOptions"`
	SelectedDay trace.Day       `json:"selectedDay"`
	ShowAllDays bool            `json:"showAllDays"`
	Groups      []TimelineGroup `json:"groups"`
}

// BuildTimeline lists every trace, enabled or not, so each stays
// reachable from its checkbox. Expanded traces carry their visible events.
func BuildTimeline(ds *trace.Dataset, snap session.Snapshot) Timeline {
	f := snap.Filter()
	tl := Timeline{
		Panel:       snap.Panel,
		DayOptions:  ds.DaysPresent(),
		SelectedDay: snap.SelectedDay,
		ShowAllDays: snap.ShowAllDays,
		Groups:      make([]TimelineGroup, 0, len(ds.Traces)),
	}

	byTrace := map[int][]trace.PointEvent{}
	for _, e := range filter.Visible(ds.Events, f) {
		byTrace[e.TraceIndex] = append(byTrace[e.TraceIndex], e)
	}

	for _, t := range ds.Traces {
		g := TimelineGroup{
			TraceIndex: t.Index,
			Title:      fmt.Sprintf("Trace %d - %s", t.Index+1, t.Profile.Occupation),
			Subtitle:   fmt.Sprintf("%d years old - %s", t.Profile.Age, t.Profile.Description),
			Profile:    t.Profile,
			Color:      t.Color.CSS(),
			Enabled:    f.IsEnabled(t.Index),
			Expanded:   snap.IsExpanded(t.Index),
		}
		if g.Expanded {
			for _, e := range timelineEvents(byTrace[t.Index]) {
				g.Entries = append(g.Entries, TimelineEntry{PointEvent: e, Selected: snap.IsSelected(e)})
			}
		}
		tl.Groups = append(tl.Groups, g)
	}
	return tl
}

type timelineKey struct {
	time     string
	position orb.Point
	day      trace.Day
}

// timelineEvents drops repeated (time, position, day) rows and orders the
// rest by time.
func timelineEvents(events []trace.PointEvent) []trace.PointEvent {
	seen := map[timelineKey]struct{}{}
	out := make([]trace.PointEvent, 0, len(events))
	for _, e := range events {
		k := timelineKey{time: e.Time, position: e.Position, day: e.Day}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
