package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	catalogHandler *handlers.CatalogHandler,
	toolHandler *handlers.ToolHandler,
	chatHandler *handlers.ChatHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/token", authHandler.IssueToken)

	// Catalog and discovery (public)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id/stock", catalogHandler.CheckStock)
	api.Post("/products/recommend", catalogHandler.Recommend)
	api.Get("/tools", toolHandler.List)
	api.Get("/agents", chatHandler.ListAgents)

	// Identified routes - apply middleware to individual routes
	// so public routes above stay open
	identified := middleware.Identified(cfg)
	api.Post("/tools/:name", append(identified, toolHandler.Call)...)
	api.Post("/chat", append(identified, chatHandler.Chat)...)

	// Plugin routes
	protected := api.Group("/p", identified...)
	for _, p := range plugins {
		p.RegisterRoutes(protected, cfg)
	}
}
