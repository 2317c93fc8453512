package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tracemap/metrics"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"toggle trace", `{"type":"toggleTrace","trace":1}`, false},
		{"toggle trace without index", `{"type":"toggleTrace"}`, true},
		{"toggle expanded without index", `{"type":"toggleExpanded"}`, true},
		{"set day", `{"type":"setDay","day":"Friday"}`, false},
		{"set day lower case", `{"type":"setDay","day":"friday"}`, false},
		{"set day unknown", `{"type":"setDay","day":"Funday"}`, true},
		{"set day missing", `{"type":"setDay"}`, true},
		{"click", `{"type":"click","point":{"traceIndex":0,"position":[1,2],"day":"Monday","action":"arrival"}}`, false},
		{"click without point", `{"type":"click"}`, true},
		{"click day padded", `{"type":"click","point":{"traceIndex":0,"position":[1,2],"day":"monday ","action":"arrival"}}`, false},
		{"click day unknown", `{"type":"click","point":{"traceIndex":0,"position":[1,2],"day":"Funday","action":"arrival"}}`, true},
		{"hover day unknown", `{"type":"hover","point":{"traceIndex":0,"position":[1,2],"day":"","action":"arrival"}}`, true},
		{"hover clear", `{"type":"hover"}`, false},
		{"drag start", `{"type":"dragStart","x":10,"y":12,"onHeader":true}`, false},
		{"view state", `{"type":"viewState","view":{"longitude":1,"latitude":2,"zoom":3}}`, false},
		{"view state out of range", `{"type":"viewState","view":{"longitude":500,"latitude":2,"zoom":3}}`, true},
		{"view state missing", `{"type":"viewState"}`, true},
		{"unknown type", `{"type":"explode"}`, true},
		{"missing type", `{}`, true},
		{"bad json", `{"type":`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEvent)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func apply(t *testing.T, s *Session, body string) {
	t.Helper()
	e, err := DecodeEvent([]byte(body))
	require.NoError(t, err)
	require.NoError(t, s.Apply(e))
}

func TestApply_Dispatch(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.Register(reg)
	s := New(uuid.New(), testDataset(), Options{Metrics: m})

	apply(t, s, `{"type":"toggleTrace","trace":2}`)
	apply(t, s, `{"type":"setDay","day":"tuesday"}`)
	apply(t, s, `{"type":"toggleShowAllDays"}`)
	apply(t, s, `{"type":"toggleExpanded","trace":1}`)
	apply(t, s, `{"type":"click","point":{"traceIndex":0,"position":[10,10],"day":"Monday","action":"arrival"}}`)
	apply(t, s, `{"type":"hover","point":{"traceIndex":1,"position":[10,10],"day":"Monday","action":"arrival"},"x":3,"y":4}`)
	apply(t, s, `{"type":"dragStart","x":30,"y":30,"onHeader":true}`)
	apply(t, s, `{"type":"dragMove","x":40,"y":50}`)
	apply(t, s, `{"type":"dragEnd"}`)
	apply(t, s, `{"type":"hidePanel"}`)

	snap := s.Snapshot()
	assert.Equal(t, []int{0, 1}, snap.EnabledTraces)
	assert.Equal(t, "Tuesday", snap.SelectedDay)
	assert.True(t, snap.ShowAllDays)
	assert.Equal(t, []int{0, 1}, snap.Expanded)
	require.NotNil(t, snap.Selected)
	assert.Len(t, snap.SelectedGroup, 2)
	require.NotNil(t, snap.Hover)
	assert.Equal(t, 1, snap.Hover.Event.TraceIndex)
	assert.Equal(t, Point{X: 30, Y: 40}, snap.Panel.Position)
	assert.False(t, snap.Panel.Visible)

	apply(t, s, `{"type":"showPanel"}`)
	apply(t, s, `{"type":"viewState","view":{"longitude":1,"latitude":2,"zoom":3}}`)
	snap = s.Snapshot()
	assert.True(t, snap.Panel.Visible)
	assert.Equal(t, 3.0, snap.Camera.Zoom)

	families, err := reg.Gather()
	require.NoError(t, err)
	var interactions float64
	for _, f := range families {
		if f.GetName() == "tracemap_interaction_events_total" {
			for _, m := range f.GetMetric() {
				interactions += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 12.0, interactions)

	t.Log("✓ Every event type dispatched")
}

func TestApply_ClickCanonicalisesDay(t *testing.T) {
	s := New(uuid.New(), testDataset(), Options{})

	apply(t, s, `{"type":"click","point":{"traceIndex":0,"position":[10,10],"day":"monday ","action":"arrival"}}`)
	snap := s.Snapshot()
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "Monday", snap.Selected.Day)
	assert.Len(t, snap.SelectedGroup, 2)

	apply(t, s, `{"type":"hover","point":{"traceIndex":1,"position":[10,10],"day":" MONDAY","action":"arrival"}}`)
	require.NotNil(t, s.Snapshot().Hover)
	assert.Equal(t, "Monday", s.Snapshot().Hover.Event.Day)

	// an unknown day leaves the selection alone
	err := s.Apply(Event{Type: EventClick, Point: &trace.PointEvent{Position: orb.Point{10, 10}, Day: "someday", Action: "arrival"}})
	assert.ErrorIs(t, err, ErrInvalidEvent)
	assert.NotNil(t, s.Snapshot().Selected)

	t.Log("✓ Click day labels canonicalised before selection")
}

func TestApply_Errors(t *testing.T) {
	s := New(uuid.New(), testDataset(), Options{})

	assert.ErrorIs(t, s.Apply(Event{Type: "explode"}), ErrUnknownEvent)
	assert.ErrorIs(t, s.Apply(Event{Type: EventClick}), ErrInvalidEvent)
	assert.ErrorIs(t, s.Apply(Event{Type: EventToggleTrace}), ErrInvalidEvent)
	assert.ErrorIs(t, s.Apply(Event{Type: EventViewState}), ErrInvalidEvent)
}
