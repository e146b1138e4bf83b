// Package server provides the HTTP API for the Fibonacci matrix calculator.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibmatrix/internal/config"
	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/internal/service"
)

// Server represents the HTTP server for the Fibonacci calculator API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	registry       *prometheus.Registry
	metrics        *Metrics
	securityConfig SecurityConfig
	timeouts       Timeouts
}

// NewServer creates a Server for the given configuration.
//
// Parameters:
//   - cfg: The application configuration (port, default policy, timeout).
//   - opts: Optional functional options (e.g., WithLogger, WithService).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server", zerolog.InfoLevel),
		securityConfig: DefaultSecurityConfig(),
		timeouts:       DefaultServerTimeouts(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	s.metrics = NewMetrics(s.registry)

	if s.service == nil {
		s.service = service.NewCalculatorService(
			service.WithMetrics(service.NewMetrics(s.registry)),
			service.WithLogger(s.logger),
		)
	}
	if s.timeouts.RequestTimeout <= 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/fibonacci", s.wrapWithMiddleware(s.handleFibonacci))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// wrapWithMiddleware applies Security -> Logging -> Metrics -> Handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start listens on the configured port and serves until ctx is done.
//
// Returns:
//   - error: A ServerError if listening fails or shutdown is not clean.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperrors.NewServerError("server failed to start", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server",
			logging.String("addr", ln.Addr().String()),
			logging.String("default_overflow", string(s.cfg.Policy())),
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.NewServerError("server failed", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.NewServerError("failed to gracefully shutdown server", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
