package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	epmetrics "CryptoIntel/internal/service/metrics"
	"CryptoIntel/pkg/config"
	xhttp "CryptoIntel/pkg/http"
	applogger "CryptoIntel/pkg/logger"
)

// Worker is a background component started before the HTTP server and stopped after it,
// such as the Kafka consumer or the Redis queue.
type Worker interface {
	Start() error
	Stop(ctx context.Context) error
}

type namedWorker struct {
	name string
	w    Worker
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	opts       []xhttp.ServerOption
	workers    []namedWorker
	httpServer *xhttp.Server
}

// New creates a new App serving handler with the given server options.
func New(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, opts ...xhttp.ServerOption) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:     cfg,
		log:     log,
		handler: handler,
		opts:    opts,
	}
}

// AddWorker registers a background worker. Workers start in order and stop in reverse.
func (a *App) AddWorker(name string, w Worker) {
	a.workers = append(a.workers, namedWorker{name: name, w: w})
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the workers and the HTTP server, then shuts everything down when ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	epmetrics.Register()

	for i, nw := range a.workers {
		if err := nw.w.Start(); err != nil {
			a.stopWorkers(context.Background(), a.workers[:i])
			return fmt.Errorf("start %s: %w", nw.name, err)
		}
		a.log.Info("worker started", applogger.String("worker", nw.name))
	}

	a.httpServer = xhttp.NewServer(a.handler, a.opts...)
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		a.stopWorkers(context.Background(), a.workers)
		return err
	}
	a.log.Info("cryptointel started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("base_path", a.cfg.Server.BasePath),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown stops the HTTP server first so no request can publish after the workers are gone.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		firstErr = err
	}
	a.stopWorkers(shutdownCtx, a.workers)

	a.log.Info("shutdown complete")
	return firstErr
}

func (a *App) stopWorkers(ctx context.Context, workers []namedWorker) {
	for i := len(workers) - 1; i >= 0; i-- {
		nw := workers[i]
		if err := nw.w.Stop(ctx); err != nil {
			a.log.Warn("worker stop error", applogger.String("worker", nw.name), applogger.Error(err))
		}
	}
}
