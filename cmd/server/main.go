package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/turnherald/internal/api"
	"github.com/mcoot/turnherald/internal/config"
	"github.com/mcoot/turnherald/internal/factory"
	redisstorage "github.com/mcoot/turnherald/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mapping, err := cfg.Mapping()
	if err != nil {
		logger.Error("failed to load user mapping", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(mapping) == 0 {
		logger.Warn("no user mapping configured; all notifications will use plain names")
	}

	if cfg.DiscordWebhookURL == "" {
		logger.Error("DISCORD_WEBHOOK_URL not configured")
		os.Exit(1)
	}

	// Build factory config
	factoryCfg := factory.Config{
		Logger:            logger,
		StorageType:       cfg.StorageType,
		Mapping:           mapping,
		Blackout:          cfg.Blackout(),
		Reminder:          cfg.Reminder(),
		DiscordWebhookURL: cfg.DiscordWebhookURL,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		TurnProcessor:  app.TurnProcessor,
		HistoryService: app.HistoryService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Run the reminder scheduler alongside the server
	go app.ReminderScheduler.Run(ctx)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
