package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/tracemap/trace"
	"github.com/theoremus-urban-solutions/tracemap/viewport"
)

// Interaction event types.
const (
	EventToggleTrace       = "toggleTrace"
	EventSetDay            = "setDay"
	EventToggleShowAllDays = "toggleShowAllDays"
	EventShowPanel         = "showPanel"
	EventHidePanel         = "hidePanel"
	EventDragStart         = "dragStart"
	EventDragMove          = "dragMove"
	EventDragEnd           = "dragEnd"
	EventToggleExpanded    = "toggleExpanded"
	EventClick             = "click"
	EventHover             = "hover"
	EventViewState         = "viewState"
)

var (
	// ErrNotFound is returned for unknown session ids.
	ErrNotFound = errors.New("session not found")
	// ErrUnknownEvent is returned by Apply for an unrecognized event type.
	ErrUnknownEvent = errors.New("unknown event type")
	// ErrInvalidEvent wraps decoding and validation failures.
	ErrInvalidEvent = errors.New("invalid event")
)

// Event is one user interaction posted by the viewer.
type Event struct {
	Type     string             `json:"type" validate:"required,oneof=toggleTrace setDay toggleShowAllDays showPanel hidePanel dragStart dragMove dragEnd toggleExpanded click hover viewState"`
	Trace    *int               `json:"trace,omitempty" validate:"required_if=Type toggleTrace,required_if=Type toggleExpanded"`
	Day      string             `json:"day,omitempty" validate:"required_if=Type setDay,omitempty,day"`
	Point    *trace.PointEvent  `json:"point,omitempty" validate:"required_if=Type click"`
	X        float64            `json:"x,omitempty"`
	Y        float64            `json:"y,omitempty"`
	OnHeader bool               `json:"onHeader,omitempty"`
	View     *viewport.Viewport `json:"view,omitempty" validate:"required_if=Type viewState"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, ok := trace.ParseDay(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks the fields required by the event type.
func (e Event) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if _, err := canonicalPoint(e.Point); err != nil {
		return err
	}
	return nil
}

// canonicalPoint returns a copy of p with its day label canonicalised.
// A nil point stays nil.
func canonicalPoint(p *trace.PointEvent) (*trace.PointEvent, error) {
	if p == nil {
		return nil, nil
	}
	day, ok := trace.ParseDay(p.Day)
	if !ok {
		return nil, fmt.Errorf("%w: point day %q", ErrInvalidEvent, p.Day)
	}
	c := *p
	c.Day = day
	return &c, nil
}

// DecodeEvent parses and validates a JSON event.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Apply dispatches e to the matching transition.
func (s *Session) Apply(e Event) error {
	switch e.Type {
	case EventToggleTrace, EventToggleExpanded:
		if e.Trace == nil {
			return fmt.Errorf("%w: %s needs a trace", ErrInvalidEvent, e.Type)
		}
		if e.Type == EventToggleTrace {
			s.ToggleTrace(*e.Trace)
		} else {
			s.ToggleExpanded(*e.Trace)
		}
	case EventSetDay:
		s.SetDay(e.Day)
	case EventToggleShowAllDays:
		s.ToggleShowAllDays()
	case EventShowPanel:
		s.ShowPanel()
	case EventHidePanel:
		s.HidePanel()
	case EventDragStart:
		s.BeginDrag(Point{X: e.X, Y: e.Y}, e.OnHeader)
	case EventDragMove:
		s.Drag(Point{X: e.X, Y: e.Y})
	case EventDragEnd:
		s.EndDrag()
	case EventClick:
		if e.Point == nil {
			return fmt.Errorf("%w: click needs a point", ErrInvalidEvent)
		}
		p, err := canonicalPoint(e.Point)
		if err != nil {
			return err
		}
		s.Click(*p)
	case EventHover:
		p, err := canonicalPoint(e.Point)
		if err != nil {
			return err
		}
		s.Hover(p, e.X, e.Y)
	case EventViewState:
		if e.View == nil {
			return fmt.Errorf("%w: viewState needs a view", ErrInvalidEvent)
		}
		s.ViewStateChanged(*e.View)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	s.metrics.Interaction(e.Type)
	return nil
}
