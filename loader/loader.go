package loader

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/metrics"
)

// Formats accepted in Source.Format.
const (
	FormatJSON   = "json"
	FormatGTFSRT = "gtfsrt"
)

// Source names one trace document to load.
type Source struct {
	Name      string
	Location  string
	Format    string
	VehicleID string
}

// Result is the settled outcome of loading one Source.
// Exactly one of Document and Err is set.
type Result struct {
	Source   Source
	Document *RawDocument
	Err      error
}

// Options configures a Loader.
type Options struct {
	Timeout     time.Duration
	Concurrency int
	Location    *time.Location
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
}

// Loader fetches and decodes trace documents.
type Loader struct {
	httpClient  *http.Client
	timeout     time.Duration
	concurrency int
	location    *time.Location
	log         *zap.Logger
	metrics     *metrics.Metrics
}

// New creates a Loader.
func New(opts Options) *Loader {
	l := &Loader{
		httpClient:  opts.HTTPClient,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		location:    opts.Location,
		log:         internal.OrNop(opts.Logger),
		metrics:     opts.Metrics,
	}
	if l.httpClient == nil {
		l.httpClient = &http.Client{}
	}
	if l.location == nil {
		l.location = time.UTC
	}
	return l
}

// LoadAll fetches every source concurrently and waits for all of them to
// settle. Results are returned in input order.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))
	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			doc, err := l.Load(ctx, src)
			results[i] = Result{Source: src, Document: doc, Err: err}
			l.metrics.TraceLoaded(src.Name, err)
			if err != nil {
				l.log.Warn("trace load failed",
					zap.String("source", src.Name),
					zap.String("location", src.Location),
					zap.Error(err))
				return nil
			}
			l.log.Info("trace loaded", zap.String("source", src.Name))
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Load fetches and decodes a single source.
func (l *Loader) Load(ctx context.Context, src Source) (*RawDocument, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	data, err := l.fetch(ctx, src.Location)
	if err != nil {
		return nil, err
	}
	switch src.Format {
	case "", FormatJSON:
		return DecodeJSON(data)
	case FormatGTFSRT:
		return DecodeVehiclePositions(bytes.NewReader(data), src.VehicleID, l.location)
	default:
		return nil, fmt.Errorf("unsupported format %q", src.Format)
	}
}
