package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	healthhandler "dopo/internal/health/handler"
	"dopo/pkg/config"
	"dopo/pkg/contracts"
	apperrors "dopo/pkg/errors"
	httputil "dopo/pkg/http"
	"dopo/pkg/logger"
	"dopo/pkg/middleware"
)

type Application struct {
	cfg              *config.Config
	log              *logger.Logger
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	healthHandler    http.Handler
	appHttpHandler   http.Handler
	onShutdown       []func()
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{
		cfg: cfg,
		log: cfg.Log.Component(logger.ComponentServer),
	}
}

// SetApp wires the health endpoints and every domain handler into one server.
func (a *Application) SetApp(appHandlers ...contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(appHandlers...)
	a.setAppServer()
}

// OnShutdown registers fn to run after the server has stopped accepting requests.
func (a *Application) OnShutdown(fn func()) {
	a.onShutdown = append(a.onShutdown, fn)
}

// Handler returns the root handler that the server serves.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	httpLog := a.cfg.Log.Component(logger.ComponentHTTP)

	healthRouter := httprouter.New()
	healthHandler := healthhandler.NewHealthHandler(a.cfg.Client, httpLog)
	healthHandler.RegisterRoutes(healthRouter)
	a.configureRouter(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(httpLog)(healthHTTPHandler)
	healthHTTPHandler = middleware.CORS(a.cfg.CORSAllowedOrigins)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(httpLog)(healthHTTPHandler)
	a.healthHandler = healthHTTPHandler
	a.log.Info("Health endpoints configured with minimal middleware (Recovery + CORS + Logging only)")
}

func (a *Application) setAppHandler(appHandlers ...contracts.Handler) {
	httpLog := a.cfg.Log.Component(logger.ComponentHTTP)

	appRouter := httprouter.New()
	a.configureRouter(appRouter)
	for _, h := range appHandlers {
		h.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)

	var appHttpHandler http.Handler = appRouter
	appHttpHandler = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(appHttpHandler)
	appHttpHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHttpHandler)
	appHttpHandler = middleware.ContentTypeValidation(httpLog)(appHttpHandler)
	appHttpHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHttpHandler)
	appHttpHandler = middleware.RequestLogging(httpLog)(appHttpHandler)
	appHttpHandler = middleware.CORS(a.cfg.CORSAllowedOrigins)(appHttpHandler)
	appHttpHandler = middleware.Recovery(httpLog)(appHttpHandler)
	a.appHttpHandler = appHttpHandler
	a.log.Info("Application endpoints configured with full middleware stack")
}

// configureRouter makes unmatched routes and methods answer with JSON errors.
func (a *Application) configureRouter(router *httprouter.Router) {
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := httputil.WriteError(w, apperrors.NotFound("Resource")); err != nil {
			a.log.Error("failed to write not found response", "error", err)
		}
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := httputil.WriteError(w, apperrors.MethodNotAllowed(r.Method, r.URL.Path)); err != nil {
			a.log.Error("failed to write method not allowed response", "error", err)
		}
	})
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/{$}", a.healthHandler)
	mux.Handle("/", a.appHttpHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("Server listening",
			"timestamp", logger.Now(),
			"address", a.server.Addr,
			"url", "http://localhost:"+a.cfg.Port,
		)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.runShutdownHooks()
			a.log.Fatal("HTTP server failed", "timestamp", logger.Now(), "error", err)
		}

	case sig := <-shutdown:
		a.log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.log.Error("Could not stop server gracefully", "error", err)
		}
	}

	a.log.Info("Stopping background workers...")
	a.idempotencyStore.Stop()
	a.runShutdownHooks()
	a.log.Info("Server stopped gracefully")
}

func (a *Application) runShutdownHooks() {
	for i := len(a.onShutdown) - 1; i >= 0; i-- {
		a.onShutdown[i]()
	}
	a.onShutdown = nil
}
