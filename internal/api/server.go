// Package api exposes the intent pipeline and the calculator over HTTP,
// alongside the health, readiness and metrics endpoints.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"intent-workers/internal/common/config"
	"intent-workers/internal/common/logger"
	"intent-workers/internal/common/metrics"
	"intent-workers/internal/common/observability"
	"intent-workers/internal/intent"
	"intent-workers/internal/intent/audit"
	"intent-workers/internal/intent/cache"
	"intent-workers/pkg/registry"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	routeProcess   = "/v1/intents/process"
	routeCalculate = "/v1/calculate"
)

// ReadyFunc reports whether the backing services are reachable.
type ReadyFunc func(ctx context.Context) error

// Options carries the server collaborators. Only Config is required.
type Options struct {
	Config        config.ServerConfig
	Service       string
	Version       string
	Controller    *intent.Controller
	Cache         *cache.Cache
	Audit         *audit.Store
	Observability *observability.Observability
	Registry      *registry.ActivityRegistry
	Ready         ReadyFunc
	Logger        logger.Logger
}

type Server struct {
	echo       *echo.Echo
	addr       string
	controller *intent.Controller
	cache      *cache.Cache
	audit      *audit.Store
	obs        *observability.Observability
	ready      ReadyFunc
	service    string
	version    string
	schemas    map[string]map[string]interface{}
	logger     logger.Logger
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.With(map[string]interface{}{"component": "http-api"})

	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}
	schemas := make(map[string]map[string]interface{})
	for _, taskType := range []string{registry.TaskProcessUserInput, registry.TaskEvaluateExpression} {
		if activity, ok := reg.Find(taskType); ok {
			schemas[taskType] = activity.InputSchema
		}
	}

	controller := opts.Controller
	if controller == nil {
		controller = intent.NewController(intent.WithLogger(log))
	}

	s := &Server{
		echo:       echo.New(),
		controller: controller,
		cache:      opts.Cache,
		audit:      opts.Audit,
		obs:        opts.Observability,
		ready:      opts.Ready,
		service:    opts.Service,
		version:    opts.Version,
		schemas:    schemas,
		logger:     log,
	}
	s.addr = opts.Config.Addr()

	e := s.echo
	e.Server.ReadTimeout = config.GetDuration(opts.Config.ReadTimeout)
	e.Server.WriteTimeout = config.GetDuration(opts.Config.WriteTimeout)
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.instrument)

	e.GET("/health", s.health)
	e.GET("/ready", s.readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST(routeProcess, s.processIntent)
	e.POST(routeCalculate, s.calculate)

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("HTTP API listening", map[string]interface{}{"addr": s.addr})
	if err := s.echo.Start(s.addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// instrument logs each request and records the route metrics.
func (s *Server) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		elapsed := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Debug("request served", map[string]interface{}{
			"method":    c.Request().Method,
			"route":     route,
			"status":    status,
			"latency":   elapsed.String(),
			"requestId": c.Response().Header().Get(echo.HeaderXRequestID),
		})
		return nil
	}
}
