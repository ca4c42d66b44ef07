package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/taskflow/internal/metrics"
	"github.com/alexanderramin/taskflow/internal/planner"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxBodyBytes caps request bodies; a day's task list is a few KB at most.
const maxBodyBytes = 1 << 20

// Server exposes the planner over HTTP.
type Server struct {
	planner    planner.PlanService
	metrics    *metrics.Metrics
	logger     *zap.Logger
	llmEnabled bool
	router     *mux.Router
}

// New wires the routes. llmEnabled is reported by the health endpoint.
func New(svc planner.PlanService, m *metrics.Metrics, logger *zap.Logger, llmEnabled bool) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		planner:    svc,
		metrics:    m,
		logger:     logger,
		llmEnabled: llmEnabled,
		router:     mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.requestID, s.observe, s.recoverPanic)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/plan", s.handlePlan).Methods(http.MethodPost)
	r.HandleFunc("/api/save-plan", s.handleSavePlan).Methods(http.MethodPost)
	r.HandleFunc("/api/load-plan", s.handleLoadPlan).Methods(http.MethodGet)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
// for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
