package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mlebl/timekit/internal/logging"
)

const (
	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout = 5 * time.Second
	// ShutdownTimeout bounds graceful shutdown once the run context ends.
	ShutdownTimeout = 5 * time.Second
)

// Server serves the metrics endpoint for the duration of a run.
type Server struct {
	addr    string
	logger  logging.Logger
	metrics *Metrics
	httpSrv *http.Server
}

// NewServer creates a Server listening on addr. A nil logger falls back to
// the default logger.
func NewServer(addr string, logger logging.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	s := &Server{
		addr:    addr,
		logger:  logger,
		metrics: metrics,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.metricsMiddleware(s.handleMetrics))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
	return s
}

// Start listens on the configured address until ctx is canceled, then shuts
// down gracefully. It blocks; run it in a goroutine alongside the benchmark.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
			return
		}
		errChan <- nil
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("metrics server shutdown failed", err)
		return err
	}
	s.logger.Info("metrics server stopped")
	return nil
}

// metricsMiddleware tracks request counts around the wrapped handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. Only GET is
// allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
