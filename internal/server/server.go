// Package server exposes the path builder over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/curriculum"
	"github.com/abhisek/learnpath/internal/knowledge"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/metrics"
	"github.com/abhisek/learnpath/internal/store"
)

// Deps are the collaborators the server needs. Paths, Metrics and Gatherer
// are optional.
type Deps struct {
	Builder *curriculum.Builder
	Source  knowledge.Source

	// Paths records every generated path and enables the /v1/paths history routes.
	Paths store.PathRepo

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	Logger      *logger.Logger
	HTTP        config.HTTPConfig
	ServiceName string
}

// Server is the HTTP API.
type Server struct {
	builder *curriculum.Builder
	source  knowledge.Source
	paths   store.PathRepo
	log     *logger.Logger
	cfg     config.HTTPConfig

	Engine *gin.Engine
}

// New builds the router. It fails when the builder or source is missing.
func New(deps Deps) (*Server, error) {
	if deps.Builder == nil || deps.Source == nil {
		return nil, errors.New("server: builder and source are required")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.ServiceName == "" {
		deps.ServiceName = "learnpath"
	}

	s := &Server{
		builder: deps.Builder,
		source:  deps.Source,
		paths:   deps.Paths,
		log:     deps.Logger.With("component", "http"),
		cfg:     deps.HTTP,
	}
	s.Engine = s.routes(deps)
	return s, nil
}

func (s *Server) routes(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(deps.ServiceName))
	r.Use(requestLog(s.log, deps.Metrics))
	r.Use(corsMiddleware(deps.HTTP.AllowedOrigins))

	r.GET("/healthz", healthCheck)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/v1")
	{
		v1.POST("/paths", s.createPath)
		if s.paths != nil {
			v1.GET("/paths", s.listPaths)
			v1.GET("/paths/:id", s.getPath)
		}
		v1.GET("/modules", s.listModules)
		v1.GET("/modules/:id", s.getModule)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
