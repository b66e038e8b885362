package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcatalog/config"
	"eventcatalog/internal/app"
)

const shutdownTimeout = 10 * time.Second

// @title Event Catalog API
// @version 1.0
// @description Organizers create, update, publish and cancel events; the public browses published ones.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, ctxCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer ctxCancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	application := app.NewApp(cfg, logger)
	if err := application.Run(ctx); err != nil {
		logger.Error("failed to start", "err", err)
		shutdown(application)
		os.Exit(1)
	}

	<-ctx.Done()
	shutdown(application)
}

func shutdown(application *app.App) {
	shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCtxCancel()
	application.Stop(shutdownCtx)
}
