package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Adda-Baaj/portal-client/internal/app"
	"github.com/Adda-Baaj/portal-client/internal/config"
	"github.com/Adda-Baaj/portal-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mockapi start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := app.NewMockAPI(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize mock api", "error", err)
		return err
	}

	if err := api.Run(ctx); err != nil {
		return fmt.Errorf("mock api run: %w", err)
	}
	return nil
}
