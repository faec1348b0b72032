package apps

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"github.com/gofiber/fiber/v2"
)

// Plugin defines the interface every concierge app must implement.
type Plugin interface {
	// ID returns the unique app identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterTools adds the app's tools to the shared registry.
	// Tool names are global across plugins.
	RegisterTools(registry *tools.Registry)

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group is already prefixed with /api/p and has identity middleware applied.
	RegisterRoutes(router fiber.Router, cfg *config.Config)
}
