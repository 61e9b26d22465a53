package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "GeoPrice/internal/domain/repository"
	"GeoPrice/internal/usecase"
	"GeoPrice/pkg/cache"
	"GeoPrice/pkg/config"
	xhttp "GeoPrice/pkg/http"
	applogger "GeoPrice/pkg/logger"
)

// App encapsulates the serving process lifecycle: warm the model, serve
// estimates over HTTP, shut down cleanly on SIGINT/SIGTERM.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	predictor  *usecase.Predictor
	audit      domrepo.AuditPublisher
	geoCache   cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	predictor *usecase.Predictor,
	audit domrepo.AuditPublisher,
	geoCache cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		predictor: predictor,
		audit:     audit,
		geoCache:  geoCache,
	}
}

// Run starts the application and blocks until interrupted. A missing or
// corrupt model artifact aborts startup: there is no fallback model, so
// serving without one would only turn every request into a 500.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.predictor.Warm(ctx); err != nil {
		a.logger.Error("model artifact unusable, refusing to serve", applogger.Error(err))
		return err
	}
	a.logger.Info("model artifact loaded", applogger.String("path", a.cfg.Model.ArtifactPath))

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	a.httpServer = xhttp.NewServer(a.handler, opts...)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("serving estimates",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops the HTTP server and closes shared resources.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			a.logger.Warn("audit publisher close error", applogger.Error(err))
		}
	}
	if a.geoCache != nil {
		if err := a.geoCache.Close(); err != nil {
			a.logger.Warn("geocode cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
