// Package metrics exposes Prometheus instrumentation for trace loading and
// viewer sessions. All methods are safe on a nil *Metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// prometheusNamespace is the prometheus namespace for the metrics
	prometheusNamespace = "tracemap"
	// eventLabel is the interaction event type label
	eventLabel = "event"
	// sourceLabel is the trace source name label
	sourceLabel = "source"
	// outcomeLabel is either "ok" or "failed"
	outcomeLabel = "outcome"

	traceLoadsMetricName        = "trace_loads_total"
	traceLoadFailuresMetricName = "trace_load_failures_total"
	interactionsMetricName      = "interaction_events_total"
	sessionsMetricName          = "sessions"
	datasetSegmentsMetricName   = "dataset_segments"
	datasetEventsMetricName     = "dataset_events"
	datasetTracesMetricName     = "dataset_traces"
)

// Metrics holds the registered collectors.
type Metrics struct {
	// traceLoads counts settled trace fetches by source and outcome.
	traceLoads *prometheus.CounterVec
	// traceLoadFailures counts failed trace fetches across all sources.
	traceLoadFailures prometheus.Counter
	// interactions counts applied interaction events by type.
	interactions *prometheus.CounterVec
	// sessions is the number of live viewer sessions.
	sessions prometheus.Gauge
	// datasetSegments, datasetEvents and datasetTraces describe the loaded dataset.
	datasetSegments prometheus.Gauge
	datasetEvents   prometheus.Gauge
	datasetTraces   prometheus.Gauge
}

// Register creates the collectors and registers them with reg.
func Register(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		traceLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      traceLoadsMetricName,
			Help:      "Settled trace document fetches.",
		}, []string{sourceLabel, outcomeLabel}),
		traceLoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      traceLoadFailuresMetricName,
			Help:      "Trace documents that failed to fetch or parse.",
		}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: prometheusNamespace,
			Name:      interactionsMetricName,
			Help:      "Interaction events applied to viewer sessions.",
		}, []string{eventLabel}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      sessionsMetricName,
			Help:      "Live viewer sessions.",
		}),
		datasetSegments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      datasetSegmentsMetricName,
			Help:      "Trip segments in the loaded dataset.",
		}),
		datasetEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      datasetEventsMetricName,
			Help:      "Point events in the loaded dataset.",
		}),
		datasetTraces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: prometheusNamespace,
			Name:      datasetTracesMetricName,
			Help:      "Traces in the loaded dataset.",
		}),
	}

	reg.MustRegister(m.traceLoads)
	reg.MustRegister(m.traceLoadFailures)
	reg.MustRegister(m.interactions)
	reg.MustRegister(m.sessions)
	reg.MustRegister(m.datasetSegments)
	reg.MustRegister(m.datasetEvents)
	reg.MustRegister(m.datasetTraces)

	return m
}

// TraceLoaded records one settled fetch.
func (m *Metrics) TraceLoaded(source string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		m.traceLoadFailures.Inc()
	}
	m.traceLoads.With(prometheus.Labels{sourceLabel: source, outcomeLabel: outcome}).Inc()
}

// Interaction records one applied interaction event.
func (m *Metrics) Interaction(eventType string) {
	if m == nil {
		return
	}
	m.interactions.With(prometheus.Labels{eventLabel: eventType}).Inc()
}

// SetSessions sets the live session count.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// SetDataset records the size of the loaded dataset.
func (m *Metrics) SetDataset(traces, segments, events int) {
	if m == nil {
		return
	}
	m.datasetTraces.Set(float64(traces))
	m.datasetSegments.Set(float64(segments))
	m.datasetEvents.Set(float64(events))
}
