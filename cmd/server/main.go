package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/config"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/di"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/health"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/logger"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/observability"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/pkg/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := config.New()

	appLogger := logger.New(logger.Config{
		Level: cfg.Logging.Level,
		JSON:  cfg.Logging.Format == "json",
	})
	logger.SetGlobal(appLogger)

	// Connect to the conversation warehouse
	db, err := config.NewDB()
	if err != nil {
		appLogger.Error("failed to connect to warehouse", "error", err)
		os.Exit(1)
	}

	container, err := di.New(db, cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to build dependency container", "error", err)
		os.Exit(1)
	}

	// Observability: prometheus always, tracing only when enabled
	meterProvider := observability.SetupPrometheusMetrics()
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			appLogger.Warn("meter provider shutdown failed", "error", err)
		}
	}()
	if cfg.Observability.TracingEnabled {
		shutdownTracing := observability.SetupTracing(cfg.Observability.ServiceName)
		defer shutdownTracing()
	}

	checker := health.NewChecker(appLogger, 30*time.Second)
	checker.RegisterDatabaseCheck(container.Warehouse.Ping)
	checker.Start()

	r := router.New(container, checker)
	r.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r.Engine,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		appLogger.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	appLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("server shutdown failed", "error", err)
	}
	if err := container.Close(); err != nil {
		appLogger.Warn("failed to close container resources", "error", err)
	}

	appLogger.Info("server shutdown complete")
}
