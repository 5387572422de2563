package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(searcher Searcher, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	RegisterSearchRoutes(r, searcher)
	RegisterHealthRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// Server runs the HTTP API until Shutdown is called.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	errs       chan error
}

// NewServer creates a server for handler listening on port.
func NewServer(handler http.Handler, port string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		},
		logger: logger,
		errs:   make(chan error, 1),
	}
}

// Start serves in the background. A listener failure is reported on Errors.
func (s *Server) Start() {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errs <- err
		}
		close(s.errs)
	}()
}

// Errors yields at most one error if the listener stops unexpectedly.
func (s *Server) Errors() <-chan error { return s.errs }

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}
