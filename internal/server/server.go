// Package server exposes the risk register over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/riskreg/riskreg/internal/metrics"
	"github.com/riskreg/riskreg/internal/store"
)

// Options configures a Server.
type Options struct {
	AllowOrigins []string
	Version      string
	Metrics      *metrics.Collector // nil disables /metrics
}

// Server is the HTTP delivery layer over a record store.
type Server struct {
	router  *gin.Engine
	store   store.Store
	logger  hclog.Logger
	metrics *metrics.Collector
	opts    Options
}

// New creates a server and registers its routes.
func New(s store.Store, logger hclog.Logger, opts Options) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}

	srv := &Server{
		store:   s,
		logger:  logger,
		metrics: opts.Metrics,
		opts:    opts,
	}
	srv.setupRoutes()
	return srv
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.loggingMiddleware())

	s.router.GET("/health", s.healthCheck)
	s.router.POST("/assess-risk", s.assessRisk)

	risks := s.router.Group("/risks")
	{
		risks.GET("", s.listRisks)
		risks.GET("/summary", s.getSummary)
		risks.GET("/matrix", s.getMatrix)
		risks.GET("/export", s.exportRisks)
		risks.GET("/:id", s.getRisk)
		risks.DELETE("/:id", s.deleteRisk)
	}

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down within shutdownTimeout.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("risk API listening", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("risk API failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down risk API", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down risk API: %w", err)
	}
	return nil
}
