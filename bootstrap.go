package tracemap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/config"
	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/loader"
	"github.com/theoremus-urban-solutions/tracemap/metrics"
	"github.com/theoremus-urban-solutions/tracemap/normalize"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
	"github.com/theoremus-urban-solutions/tracemap/viewport"
)

// Sources converts the configured traces into loader sources.
func Sources(traces []config.TraceConfig) []loader.Source {
	out := make([]loader.Source, 0, len(traces))
	for _, t := range traces {
		out = append(out, loader.Source{
			Name:      t.Name,
			Location:  t.Source,
			Format:    t.Format,
			VehicleID: t.VehicleID,
		})
	}
	return out
}

// LoadDataset fetches every configured trace, waits for all of them to
// settle and normalizes the survivors. Individual trace failures are
// logged and skipped; only a bad time zone is returned as an error.
func LoadDataset(ctx context.Context, cfg config.AppConfig, log *zap.Logger, m *metrics.Metrics) (*trace.Dataset, error) {
	log = internal.OrNop(log)
	loc, err := time.LoadLocation(cfg.Loader.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loader timezone: %w", err)
	}
	l := loader.New(loader.Options{
		Timeout:     time.Duration(cfg.Loader.TimeoutMS) * time.Millisecond,
		Concurrency: cfg.Loader.Concurrency,
		Location:    loc,
		Logger:      log,
		Metrics:     m,
	})
	results := l.LoadAll(ctx, Sources(cfg.Traces))
	ds := normalize.Normalize(results, normalize.MetaFromConfig(cfg.Traces), log)
	m.SetDataset(len(ds.Traces), len(ds.Segments), len(ds.Events))
	return ds, nil
}

// SessionOptions derives per-session defaults from the configuration.
func SessionOptions(cfg config.AppConfig, log *zap.Logger, m *metrics.Metrics) session.Options {
	return session.Options{
		InitialDay: cfg.Filter.InitialDay,
		InitialView: viewport.Viewport{
			Longitude: cfg.View.Longitude,
			Latitude:  cfg.View.Latitude,
			Zoom:      cfg.View.Zoom,
		},
		Controller: &viewport.Controller{
			RetainFactor: cfg.View.RetainFactor,
			ZoomStep:     cfg.View.ZoomStep,
			MaxZoom:      cfg.View.MaxZoom,
			Duration:     time.Duration(cfg.View.TransitionMS) * time.Millisecond,
		},
		Logger:      log,
		Metrics:     m,
		MaxSessions: cfg.Server.MaxSessions,
		IdleTimeout: time.Duration(cfg.Server.SessionIdleMinutes) * time.Minute,
	}
}
