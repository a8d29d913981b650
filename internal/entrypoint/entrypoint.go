// Package entrypoint wires the application together and runs the HTTP
// server until the process is asked to stop.
package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avolkov/librarian/internal/config"
	"github.com/avolkov/librarian/internal/database"
	"github.com/avolkov/librarian/internal/events"
	http_controllers "github.com/avolkov/librarian/internal/http"
	"github.com/avolkov/librarian/internal/library"
	"github.com/avolkov/librarian/internal/logging"
)

// Serve runs the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT; SIGKILL cannot
	// be caught so there is no point registering it.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server exited")
}

// Run builds every component from the configuration and serves requests.
func Run(cfg *config.Config, version string) {
	log, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting librarian", zap.String("version", version))

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("error closing database", zap.Error(err))
		}
	}()

	bus := events.NewBus()
	service := library.NewService(db, bus, log)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Service:  service,
		Database: db,
		Bus:      bus,
		Logger:   log,
		Version:  version,
	})

	Serve(router, cfg, log)
}
