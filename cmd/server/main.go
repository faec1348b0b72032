package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/agents"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/services"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	// Structured logging (JSON to stdout)
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required for postgres")
		os.Exit(1)
	}
	if !cfg.AuthEnabled() {
		slog.Warn("JWT_SECRET not set; callers are identified by the X-User-Email header")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Shared models, plugins and their tools
	cat := catalog.Default()
	plugins, registry, err := apps.Bootstrap(database.DB, cat)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("tools registered", "plugins", len(plugins), "tools", len(registry.List()))

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewHandler(os.Stdout, cfg.LogLevel, cfg.LogFormat),
		dbLogHandler,
	)))

	// Log cleanup
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Agents
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

	// Services
	userService := services.NewUserService(database.DB)
	authService := services.NewAuthService(userService, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(database.DB, registry)
	catalogHandler := handlers.NewCatalogHandler(cat)
	toolHandler := handlers.NewToolHandler(registry)
	chatHandler := handlers.NewChatHandler(orch, cfg)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, authHandler, healthHandler, catalogHandler, toolHandler, chatHandler, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}
