package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fooddash/cmd"
	"fooddash/config"
	"fooddash/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		port       string
		demo       bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&port, "port", "", "Server port (overrides server.port)")
	flag.BoolVar(&demo, "demo", false, "Seed a demo restaurant, customer, rider and coupon")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if port != "" {
		cfg.Server.Port = port
	}

	if err := logger.Init(&cfg.Log, cfg.App); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	builder := cmd.NewBuilder(cfg)
	if demo {
		builder.WithDemoData()
	}
	app, err := builder.Build()
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx); err != nil {
		logger.Error("Application exited with error", zap.Error(err))
		os.Exit(1)
	}
}
