package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/agents"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/repl"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Logs go to stderr so they never interleave with the chat on stdout.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	logging.SetupWriter(os.Stderr, level, "text")

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	_, registry, err := apps.Bootstrap(database.DB, catalog.Default())
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	agentConfig, err := agents.Load(cfg.AgentsConfigPath)
	if err != nil {
		slog.Error("failed to load agents config", "path", cfg.AgentsConfigPath, "error", err)
		os.Exit(1)
	}
	if err := agentConfig.CheckTools(registry); err != nil {
		slog.Error("invalid agents config", "error", err)
		os.Exit(1)
	}
	orch := agents.NewOrchestrator(agentConfig, registry, agents.NewDirectResponder(registry))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := repl.New(orch, cfg.DefaultUser, cfg.DefaultSession, os.Stdin, os.Stdout)
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("chat ended with error", "error", err)
		os.Exit(1)
	}
}
