package session

import (
	"slices"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/tracemap/filter"
	"github.com/theoremus-urban-solutions/tracemap/selection"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// Snapshot is a read-only copy of a session for rendering.
type Snapshot struct {
	ID            uuid.UUID          `json:"id"`
	EnabledTraces []int              `json:"enabledTraces"`
	SelectedDay   trace.Day          `json:"selectedDay"`
	ShowAllDays   bool               `json:"showAllDays"`
	Selected      *selection.Key     `json:"selected"`
	SelectedGroup []trace.PointEvent `json:"selectedGroup,omitempty"`
	Expanded      []int              `json:"expanded"`
	Camera        Camera             `json:"viewState"`
	Panel         Panel              `json:"panel"`
	Hover         *Hover             `json:"hover"`

	filter filter.State
}

// Filter returns the filter state captured in the snapshot.
func (s Snapshot) Filter() filter.State { return s.filter.Clone() }

// IsSelected reports whether e belongs to the selected group, by key.
func (s Snapshot) IsSelected(e trace.PointEvent) bool {
	return s.Selected != nil && selection.KeyOf(e) == *s.Selected
}

// IsExpanded reports whether trace i is open in the timeline.
func (s Snapshot) IsExpanded(i int) bool {
	return slices.Contains(s.Expanded, i)
}
