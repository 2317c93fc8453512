package tracemap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/session"
	"github.com/theoremus-urban-solutions/tracemap/trace"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Port     int
	Dataset  *trace.Dataset
	Sessions *session.Store
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// Server hosts the viewer API over one loaded dataset.
type Server struct {
	data     *trace.Dataset
	sessions *session.Store
	gatherer prometheus.Gatherer
	log      *zap.Logger
	started  time.Time

	server *http.Server
}

// NewServer creates a Server. It does not start listening.
func NewServer(opts Options) *Server {
	s := &Server{
		data:     opts.Dataset,
		sessions: opts.Sessions,
		gatherer: opts.Gatherer,
		log:      internal.OrNop(opts.Logger),
		started:  time.Now(),
	}
	if s.data == nil {
		s.data = &trace.Dataset{}
	}
	if s.sessions == nil {
		s.sessions = session.NewStore(s.data, session.Options{Logger: s.log})
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/sessions", func(sr chi.Router) {
		sr.Post("/", s.handleCreateSession)
		sr.Route("/{id}", func(ir chi.Router) {
			ir.Get("/", s.handleGetSession)
			ir.Delete("/", s.handleDeleteSession)
			ir.Post("/events", s.handleEvent)
			ir.Get("/layers", s.handleLayers)
			ir.Get("/timeline", s.handleTimeline)
			ir.Get("/tooltip", s.handleTooltip)
			ir.Get("/geojson", s.handleGeoJSON)
		})
	})
	return r
}

// Start listens in the background.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Fatal("server error", zap.Error(err))
		}
	}()
	s.log.Info("server listening", zap.String("addr", s.server.Addr))
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then shuts s down.
func HandleGracefulShutdown(s *Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.log.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		s.log.Error("server shutdown error", zap.Error(err))
		return
	}
	s.log.Info("server shut down successfully")
}
