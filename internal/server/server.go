package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/kcg-rescue/lifesavermap/internal/blob"
	"github.com/kcg-rescue/lifesavermap/internal/catalog"
	"github.com/kcg-rescue/lifesavermap/internal/config"
	"github.com/kcg-rescue/lifesavermap/internal/eventlog"
	"github.com/kcg-rescue/lifesavermap/internal/handler"
	"github.com/kcg-rescue/lifesavermap/internal/metrics"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
	Log    *eventlog.Log
}

// New builds the Echo server over the given blob store and registers routes.
func New(cfg *config.Config, store blob.Store) *Server {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "lifesavermap").Logger()
	if cfg.Primary.Env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request")
			return nil
		},
	}))
	e.Use(metrics.Middleware())

	timed := &metrics.InstrumentedStore{Inner: store}
	log := eventlog.New(timed, cfg.Storage.RequestsKey)
	reader := catalog.NewReader(timed, cfg.Storage.CatalogKey)

	helpHandler := &handler.HelpHandler{
		Log:      log,
		Validate: validator.New(),
		Logger:   logger,
	}
	lifesaverHandler := &handler.LifesaverHandler{
		Catalog: reader,
		Logger:  logger,
	}

	e.POST("/requests", helpHandler.Submit)
	e.POST("/request-help", helpHandler.Submit) // legacy client path
	e.GET("/requests", helpHandler.List)
	e.GET("/lifesavers", lifesaverHandler.List)
	e.GET("/lifesaver_count", lifesaverHandler.Count)
	e.GET("/lifesavers_filtered", lifesaverHandler.Filtered)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	if cfg.Server.StaticDir != "" {
		e.Static("/", cfg.Server.StaticDir)
	}

	return &Server{Echo: e, Config: cfg, Log: log}
}

// Start starts the HTTP server. Blocks until the context is cancelled or the
// server fails.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()
	s.Echo.Server.ReadTimeout = time.Duration(s.Config.Server.ReadTimeout) * time.Second
	s.Echo.Server.WriteTimeout = time.Duration(s.Config.Server.WriteTimeout) * time.Second
	s.Echo.Server.IdleTimeout = time.Duration(s.Config.Server.IdleTimeout) * time.Second
	return s.Echo.Start(":" + s.Config.Server.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Echo.Shutdown(ctx)
}
