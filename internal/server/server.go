package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/config"
	"github.com/matthieukhl/parceltrack/internal/metrics"
	"github.com/matthieukhl/parceltrack/internal/viewmodel"
)

const (
	serviceName = "parceltrack"
	Version     = "0.1.0"
)

type Server struct {
	router     *gin.Engine
	vm         *viewmodel.ViewModel
	dispatcher *actions.Dispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	cfg        config.ServerConfig
}

type Options struct {
	Server  config.ServerConfig
	Metrics config.MetricsConfig
	// Upstream is the tracker service that image and static requests are forwarded to.
	Upstream *url.URL
}

// NewServer creates a new server instance
func NewServer(vm *viewmodel.ViewModel, d *actions.Dispatcher, m *metrics.Metrics, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(RequestID(), Logger(logger), gin.Recovery(), ErrorHandler(logger))

	server := &Server{
		router:     router,
		vm:         vm,
		dispatcher: d,
		metrics:    m,
		logger:     logger,
		cfg:        opts.Server,
	}

	server.setupRoutes(opts)
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes(opts Options) {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
	}

	v := s.router.Group("/view")
	{
		v.GET("/orders", s.listOrders)
		v.GET("/orders/:id", s.getOrder)
		v.GET("/orders/:id/events", s.orderEvents)
		v.GET("/orders/:id/doar-events", s.orderDoarEvents)
		v.GET("/orders/:id/sub-items", s.orderSubItems)
		v.GET("/export", s.exportCSV)
		v.POST("/reload", s.reload)
		v.POST("/clear-filters", s.clearFilters)
	}

	a := s.router.Group("/actions")
	{
		a.POST("/orders", s.addOrder)
		a.PUT("/orders/:id", s.updateOrder)
		a.DELETE("/orders/:id", s.deleteOrder)
		a.POST("/orders/:id/refresh", s.refreshOrder)
		a.POST("/refresh-all", s.refreshAll)
		a.POST("/import", s.importOrders)
		a.GET("/doar-api-key", s.doarAPIKeyStatus)
		a.POST("/doar-api-key", s.saveDoarAPIKey)
		a.GET("/last-updates", s.lastUpdates)
	}

	if opts.Upstream != nil {
		proxy := newUpstreamProxy(opts.Upstream, s.logger)
		api.GET("/image-proxy", proxy)
		s.router.GET("/static/*filepath", proxy)
	}

	if opts.Metrics.Enabled && s.metrics != nil {
		path := opts.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.router.GET(path, gin.WrapH(s.metrics.Handler()))
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	st := s.vm.Store()
	resp := gin.H{
		"status":  "ok",
		"service": serviceName,
		"version": Version,
		"orders":  st.Total(),
	}
	if at := st.LoadedAt(); !at.IsZero() {
		resp["loaded_at"] = at.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctxShut, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctxShut); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
