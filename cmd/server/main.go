// Package main implements the entry point for the weeklist API server, which
// tracks users' week-scoped task lists behind a JWT-authenticated HTTP API.
package main

import (
	"log"
	"log/slog"

	"github.com/weeklisthq/weeklist-api/internal/config"
	"github.com/weeklisthq/weeklist-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	slog.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"sweep_cron", cfg.Sweep.CronSpec)

	app, err := newApplication(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(); err != nil {
		slog.Error("server exited with error", "error", err)
		log.Fatalf("Server error: %v", err)
	}
}
