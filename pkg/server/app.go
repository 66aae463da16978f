package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Denominator/internal/usecase"
	"Denominator/pkg/config"
	xhttp "Denominator/pkg/http"
	applogger "Denominator/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	dash       *usecase.Dashboard
	httpServer *xhttp.Server

	cancelExports context.CancelFunc
	exports       sync.WaitGroup
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, dash *usecase.Dashboard, srv *xhttp.Server) *App {
	return &App{cfg: cfg, log: l, dash: dash, httpServer: srv}
}

// Dashboard exposes the served use case.
func (a *App) Dashboard() *usecase.Dashboard { return a.dash }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done or the HTTP server fails.
func (a *App) RunContext(ctx context.Context) error {
	errCh := a.httpServer.Start()

	exportCtx, cancel := context.WithCancel(ctx)
	a.cancelExports = cancel
	if a.cfg.Export.OnStart {
		a.exports.Add(1)
		go func() {
			defer a.exports.Done()
			a.exportOnStart(exportCtx)
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.log.Error("http server start error", applogger.Error(err))
			runErr = err
		}
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func (a *App) exportOnStart(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Export.Timeout)
	defer cancel()

	report, err := a.dash.Export(ctx)
	switch {
	case errors.Is(err, usecase.ErrNoSinks):
		a.log.Warn("export on start requested but no sink is enabled")
	case err != nil:
		a.log.Error("export on start failed", applogger.Error(err))
	default:
		a.log.Info("export on start complete",
			applogger.Int("rows", report.Rows),
			applogger.Strings("sinks", report.Sinks),
		)
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout+time.Second)
	defer cancel()

	var errs []error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		errs = append(errs, err)
	}

	// sinks close only after in-flight exports return
	if a.cancelExports != nil {
		a.cancelExports()
	}
	a.exports.Wait()

	if err := a.dash.Close(); err != nil {
		a.log.Warn("sink close error", applogger.Error(err))
	}

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}
