package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/filter"
	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/metrics"
	"github.com/theoremus-urban-solutions/tracemap/selection"
	"github.com/theoremus-urban-solutions/tracemap/trace"
	"github.com/theoremus-urban-solutions/tracemap/viewport"
)

// InitialPanelPosition is where the timeline panel opens.
var InitialPanelPosition = Point{X: 20, Y: 20}

// Point is a screen position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Panel is the timeline panel state.
type Panel struct {
	Visible  bool  `json:"visible"`
	Position Point `json:"position"`
	Dragging bool  `json:"dragging"`
}

// Hover is the point under the cursor and where the cursor is.
type Hover struct {
	Event trace.PointEvent `json:"event"`
	X     float64          `json:"x"`
	Y     float64          `json:"y"`
}

// Camera is the current viewport plus the animation that produced it, if any.
type Camera struct {
	viewport.Viewport
	Transition *viewport.Transition `json:"transition,omitempty"`
}

// Options configures new sessions.
type Options struct {
	InitialDay  trace.Day
	InitialView viewport.Viewport
	Controller  *viewport.Controller
	Logger      *zap.Logger
	Metrics     *metrics.Metrics

	// MaxSessions caps the store; the least recently used session is
	// evicted to make room. Zero means unbounded.
	MaxSessions int
	// IdleTimeout evicts sessions not used for this long. Zero disables it.
	IdleTimeout time.Duration
}

// Session is the state of one viewer over a shared dataset.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	data    *trace.Dataset
	ctrl    *viewport.Controller
	log     *zap.Logger
	metrics *metrics.Metrics

	filter    filter.State
	selection selection.Resolver
	expanded  map[int]struct{}
	view      viewport.Viewport
	// transition animates the camera move made by the latest interaction
	// only; every other interaction clears it.
	transition *viewport.Transition
	panel      Panel
	dragOffset Point
	hover      *Hover
}

// New creates a session with every trace enabled and nothing selected.
func New(id uuid.UUID, data *trace.Dataset, opts Options) *Session {
	if data == nil {
		data = &trace.Dataset{}
	}
	day := opts.InitialDay
	if day == "" {
		day = trace.FirstDay
	}
	view := opts.InitialView
	if view == (viewport.Viewport{}) {
		view = viewport.Default()
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = viewport.NewController()
	}
	return &Session{
		id:       id,
		data:     data,
		ctrl:     ctrl,
		log:      internal.OrNop(opts.Logger).With(zap.String("session", id.String())),
		metrics:  opts.Metrics,
		filter:   filter.NewState(data.TraceIndices(), day),
		expanded: map[int]struct{}{},
		view:     view,
		panel:    Panel{Visible: true, Position: InitialPanelPosition},
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Dataset returns the shared, read-only dataset.
func (s *Session) Dataset() *trace.Dataset { return s.data }

// ToggleTrace enables or disables trace i. The selection is left alone even
// when all of its members become disabled.
func (s *Session) ToggleTrace(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	enabled := s.filter.ToggleTrace(i)
	s.log.Debug("trace toggled", zap.Int("trace", i), zap.Bool("enabled", enabled))
}

// SetDay selects the day shown when ShowAllDays is off.
func (s *Session) SetDay(d trace.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	if canonical, ok := trace.ParseDay(d); ok {
		d = canonical
	}
	s.filter.SetDay(d)
}

// ToggleShowAllDays flips the all-days override.
func (s *Session) ToggleShowAllDays() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	s.filter.ToggleShowAllDays()
}

// Click selects the group sharing e's key, or clears the selection when
// that group is already selected. Entering a group expands e's trace and
// moves the camera toward e.
func (s *Session) Click(e trace.PointEvent) selection.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	out := s.selection.Click(e, s.data.Events, s.filter.IsEnabled)
	if !out.Entered {
		s.log.Debug("selection cleared")
		return out
	}
	s.expanded[e.TraceIndex] = struct{}{}
	s.view = s.ctrl.MoveToward(e.Position.Lon(), e.Position.Lat(), s.view)
	t := s.ctrl.Transition()
	s.transition = &t
	s.log.Debug("selection entered",
		zap.Int("trace", e.TraceIndex),
		zap.Float64("lon", e.Position.Lon()),
		zap.Float64("lat", e.Position.Lat()),
		zap.String("day", e.Day),
		zap.String("action", e.Action))
	return out
}

// Hover records the hovered event; nil clears it.
func (s *Session) Hover(e *trace.PointEvent, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	if e == nil {
		s.hover = nil
		return
	}
	s.hover = &Hover{Event: *e, X: x, Y: y}
}

// ToggleExpanded opens or closes trace i in the timeline.
func (s *Session) ToggleExpanded(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	if _, ok := s.expanded[i]; ok {
		delete(s.expanded, i)
		return
	}
	s.expanded[i] = struct{}{}
}

// ShowPanel opens the timeline panel.
func (s *Session) ShowPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	s.panel.Visible = true
}

// HidePanel closes the timeline panel and drops any drag in progress.
func (s *Session) HidePanel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	s.panel.Visible = false
	s.panel.Dragging = false
}

// BeginDrag starts moving the panel. It only starts from the panel header
// and never while another drag is active. It reports whether a drag started.
func (s *Session) BeginDrag(pointer Point, onHeader bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	if !onHeader || s.panel.Dragging || !s.panel.Visible {
		return false
	}
	s.panel.Dragging = true
	s.dragOffset = Point{X: pointer.X - s.panel.Position.X, Y: pointer.Y - s.panel.Position.Y}
	return true
}

// Drag moves the panel with the pointer while a drag is active.
func (s *Session) Drag(pointer Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	if !s.panel.Dragging {
		return
	}
	s.panel.Position = Point{X: pointer.X - s.dragOffset.X, Y: pointer.Y - s.dragOffset.Y}
}

// EndDrag releases the panel.
func (s *Session) EndDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transition = nil
	s.panel.Dragging = false
	s.dragOffset = Point{}
}

// ViewStateChanged accepts a viewport reported by the renderer after free
// pan or zoom. It replaces any pending animation.
func (s *Session) ViewStateChanged(vp viewport.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = vp
	s.transition = nil
}

// Snapshot returns an independent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.id,
		EnabledTraces: s.filter.Enabled(),
		SelectedDay:   s.filter.SelectedDay,
		ShowAllDays:   s.filter.ShowAllDays,
		SelectedGroup: s.selection.Group(),
		Expanded:      make([]int, 0, len(s.expanded)),
		Camera:        Camera{Viewport: s.view},
		Panel:         s.panel,
		filter:        s.filter.Clone(),
	}
	if k, ok := s.selection.Key(); ok {
		snap.Selected = &k
	}
	for i := range s.expanded {
		snap.Expanded = append(snap.Expanded, i)
	}
	sort.Ints(snap.Expanded)
	if s.transition != nil {
		t := *s.transition
		snap.Camera.Transition = &t
	}
	if s.hover != nil {
		h := *s.hover
		snap.Hover = &h
	}
	return snap
}
