package tracemap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tracemap/metrics"
	"github.com/theoremus-urban-solutions/tracemap/presentation"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

func testDataset() *trace.Dataset {
	return &trace.Dataset{
		Traces: []trace.Trace{
			{Index: 0, Name: "alice", Color: trace.Color{65, 182, 196}, Profile: trace.Profile{Age: 30, Occupation: "Librarian"}},
			{Index: 1, Name: "bob", Color: trace.Color{255, 127, 14}, Profile: trace.Profile{Age: 25, Occupation: "Courier"}},
		},
		Segments: []trace.TripSegment{
			{TraceIndex: 0, Day: "Monday", Path: orb.LineString{{-0.12, 51.5}, {-0.13, 51.51}}, Color: trace.RGBA{65, 182, 196, 204}},
		},
		Events: []trace.PointEvent{
			{TraceIndex: 0, Position: orb.Point{-0.12, 51.5}, Day: "Monday", Time: "08:00", Action: "departure", POIName: "Home", TravelMode: "Walk"},
			{TraceIndex: 1, Position: orb.Point{-0.12, 51.5}, Day: "Monday", Time: "08:15", Action: "departure", POIName: "Home", TravelMode: "Bike"},
		},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.Register(reg)
	ds := testDataset()
	srv := NewServer(Options{
		Dataset:  ds,
		Sessions: session.NewStore(ds, session.Options{Metrics: m}),
		Gatherer: reg,
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, reg
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/api/sessions", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[map[string]any](t, resp)
	id, ok := snap["id"].(string)
	require.True(t, ok)
	return id
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	h := decode[healthResponse](t, resp)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 2, h.Traces)
	assert.Equal(t, 1, h.Segments)
	assert.Equal(t, 2, h.Events)
	require.Len(t, h.Bounds, 4)
	assert.InDeltaSlice(t, []float64{-0.13, 51.5, -0.12, 51.51}, h.Bounds, 1e-9)

	t.Log("✓ Health endpoint reports the dataset")
}

func TestSessionLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[map[string]any](t, resp)
	assert.Equal(t, "Monday", snap["selectedDay"])
	assert.Equal(t, []any{0.0, 1.0}, snap["enabledTraces"])

	resp = do(t, http.MethodDelete, ts.URL+"/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	e := decode[errorResponse](t, resp)
	assert.Equal(t, session.ErrNotFound.Error(), e.Error)
}

func TestEvents_ClickSelectsAcrossTraces(t *testing.T) {
	ts, reg := newTestServer(t)
	id := createSession(t, ts)

	click := `{"type":"click","point":{"traceIndex":0,"position":[-0.12,51.5],"day":"Monday","action":"departure"}}`
	resp := do(t, http.MethodPost, ts.URL+"/api/sessions/"+id+"/events", click)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[map[string]any](t, resp)
	require.NotNil(t, snap["selected"])
	assert.Len(t, snap["selectedGroup"], 2)
	assert.Equal(t, []any{0.0}, snap["expanded"])

	resp = do(t, http.MethodGet, ts.URL+"/api/sessions/"+id+"/layers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	layers := decode[presentation.Layers](t, resp)
	assert.Equal(t, "trips", layers.Paths.ID)
	require.Len(t, layers.Points.Data, 2)
	for _, d := range layers.Points.Data {
		assert.True(t, d.Selected)
		assert.Equal(t, 200, d.Radius)
	}

	resp = do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "tracemap_interaction_events_total" {
			found = true
		}
	}
	assert.True(t, found)

	t.Log("✓ Click event round-trips through the HTTP host")
}

func TestEvents_Rejected(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/api/sessions/" + id + "/events", `{"type":`, http.StatusBadRequest},
		{"unknown type", "/api/sessions/" + id + "/events", `{"type":"explode"}`, http.StatusBadRequest},
		{"missing field", "/api/sessions/" + id + "/events", `{"type":"toggleTrace"}`, http.StatusBadRequest},
		{"click unknown day", "/api/sessions/" + id + "/events", `{"type":"click","point":{"traceIndex":0,"position":[-0.12,51.5],"day":"Someday","action":"departure"}}`, http.StatusBadRequest},
		{"bad session id", "/api/sessions/not-a-uuid/events", `{"type":"showPanel"}`, http.StatusBadRequest},
		{"unknown session", "/api/sessions/" + uuid.NewString() + "/events", `{"type":"showPanel"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			e := decode[errorResponse](t, resp)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestTimelineTooltipAndGeoJSON(t *testing.T) {
	ts, _ := newTestServer(t)
	id := createSession(t, ts)
	base := ts.URL + "/api/sessions/" + id

	resp := do(t, http.MethodGet, base+"/tooltip", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, decode[*presentation.Tooltip](t, resp))

	hover := `{"type":"hover","point":{"traceIndex":1,"position":[-0.12,51.5],"day":"Monday","time":"08:15","action":"departure","poiName":"Home","travelMode":"Bike"},"x":5,"y":6}`
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, base+"/events", hover).StatusCode)

	resp = do(t, http.MethodGet, base+"/tooltip", "")
	tip := decode[*presentation.Tooltip](t, resp)
	require.NotNil(t, tip)
	assert.Equal(t, "Trace 2", tip.Title)
	assert.Equal(t, "25 years old, Courier", tip.Person)

	require.Equal(t, http.StatusOK, do(t, http.MethodPost, base+"/events", `{"type":"toggleExpanded","trace":1}`).StatusCode)
	resp = do(t, http.MethodGet, base+"/timeline", "")
	tl := decode[presentation.Timeline](t, resp)
	require.Len(t, tl.Groups, 2)
	assert.True(t, tl.Groups[1].Expanded)
	assert.Len(t, tl.Groups[1].Entries, 1)
	assert.Equal(t, []trace.Day{"Monday"}, tl.DayOptions)

	resp = do(t, http.MethodGet, base+"/geojson", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))
	fc := decode[map[string]any](t, resp)
	assert.Equal(t, "FeatureCollection", fc["type"])
	assert.Len(t, fc["features"], 3)
}
