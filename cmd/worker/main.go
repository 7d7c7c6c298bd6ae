package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fooddash/cmd"
	"fooddash/config"
	"fooddash/infrastructure/notification"
	"fooddash/infrastructure/persistence/mysql"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

// worker 只投递 outbox，不对外提供 HTTP；API 进程可通过 worker.enabled=false 关闭内置投递
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "outbox worker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := parseConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Database.Type == "memory" {
		logger.Info("Memory backend dispatches notifications in-process; nothing to do")
		return nil
	}

	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer cmd.CloseDatabase(db)

	notifier, client := cmd.NewNotifier(cfg)
	if client != nil {
		defer client.Close()
	}

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		notification.NewOutboxPublisher(notifier),
		cfg.Worker,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox worker: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Standalone outbox worker",
		zap.String("backend", cfg.Database.Type),
		zap.String("notification_driver", cfg.Notification.Driver),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
	)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("outbox worker exited with error: %w", err)
	}
	return nil
}

func parseConfigPath() string {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()
	return configPath
}
