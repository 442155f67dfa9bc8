// Package server exposes the match service over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/matching"
)

const (
	DefaultAddr = ":8000"

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// Searcher is implemented by matching.Service.
type Searcher interface {
	SearchJobs(ctx context.Context, req *matching.SearchRequest) (*matching.SearchResponse, error)
}

type Server struct {
	searcher Searcher
	logger   *zap.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	addr     string
}

// New builds a server. A nil registry gets a fresh one with Go and process collectors.
func New(addr string, searcher Searcher, logger *zap.Logger, registry *prometheus.Registry) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return &Server{
		searcher: searcher,
		logger:   logger,
		metrics:  NewMetrics(registry),
		registry: registry,
		addr:     addr,
	}
}

// Handler returns the routed and instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /search-jobs", s.instrument("/search-jobs", http.HandlerFunc(s.handleSearchJobs)))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s.withRequestID(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
