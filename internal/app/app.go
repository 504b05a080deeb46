package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaumene/personal-backend/internal/auth"
	"github.com/amaumene/personal-backend/internal/config"
	"github.com/amaumene/personal-backend/internal/handler"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	shutdownTimeout   = 30 * time.Second
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
}

type App struct {
	cfg    *config.Config
	server *http.Server
}

func New(cfg *config.Config) *App {
	configureLogging(cfg)

	return &App{
		cfg: cfg,
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           newRouter(cfg),
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
	}
}

func configureLogging(cfg *config.Config) {
	log.SetOutput(os.Stdout)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func newRouter(cfg *config.Config) http.Handler {
	router := mux.NewRouter()
	handler.NewHTTPHandler(auth.NewGate(cfg)).RegisterRoutes(router)
	return withMiddleware(cfg, router)
}

// withMiddleware wraps next with request ids, access logging, panic
// recovery and CORS, outermost first.
func withMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log.StandardLogger()),
		handlers.PrintRecoveryStack(true),
	)
	return handler.RequestID(handler.LogRequests(recovery(newCORS(cfg).Handler(next))))
}

// newCORS allows every origin and header. The origin is echoed back rather
// than answered with "*" because credentials are allowed.
func newCORS(cfg *config.Config) *cors.Cors {
	opts := cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}
	if cfg.Level() >= log.DebugLevel {
		opts.Logger = log.WithField("component", "cors")
	}
	return cors.New(opts)
}

func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run listens on the configured address and serves until ctx is cancelled
// or the process receives SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	addr := a.cfg.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return a.Serve(ctx, listener)
}

func (a *App) Serve(ctx context.Context, listener net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	go a.startServer(listener, serverErr)

	return a.waitForShutdown(ctx, serverErr)
}

func (a *App) startServer(listener net.Listener, serverErr chan<- error) {
	log.WithFields(log.Fields{
		"component": "server",
		"address":   listener.Addr().String(),
	}).Info("http server listening")

	if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		serverErr <- err
	}
	close(serverErr)
}

func (a *App) waitForShutdown(ctx context.Context, serverErr <-chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		log.WithField("reason", "context_cancelled").Info("initiating graceful shutdown")
	case sig := <-sigChan:
		log.WithField("signal", sig).Info("received shutdown signal")
	case err, ok := <-serverErr:
		if ok {
			log.WithFields(log.Fields{
				"component": "server",
				"error":     err,
			}).Error("http server failed")
			return fmt.Errorf("serving http: %w", err)
		}
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	log.Info("graceful shutdown started")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.WithFields(log.Fields{
			"component": "server",
			"error":     err,
		}).Error("http server shutdown failed")
		return err
	}

	log.Info("graceful shutdown completed")
	return nil
}
