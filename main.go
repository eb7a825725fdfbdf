package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wanderbase/wanderbase/internal/pkg/config"
	"github.com/wanderbase/wanderbase/internal/pkg/logger"
	"github.com/wanderbase/wanderbase/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	if err := logger.Init(zap.InfoLevel); err != nil {
		return err
	}
	l := logger.Log
	defer l.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	otelShutdown, err := server.InitObservability("wanderbase", ":"+cfg.MetricsPort, l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv := server.New(cfg, l)
	defer srv.Close()

	router := server.SetupRouter(srv.Store(), cfg, l)
	srv.SetRouter(router)

	// Pprof on a separate port, not exposed publicly
	server.StartPprofServer(":6060", l)

	httpServer := srv.HTTPServer()

	done := make(chan struct{})
	go srv.AwaitShutdown(httpServer, done)

	l.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil {
		l.Error("Server error", zap.Error(err))
	}

	<-done
	l.Info("Graceful shutdown complete")

	return nil
}
