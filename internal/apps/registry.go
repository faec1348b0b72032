package apps

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/coffee"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/shopping"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/tools"
	"gorm.io/gorm"
)

// Default builds the concierge plugins over one database and catalog.
func Default(db *gorm.DB, cat *catalog.Catalog) []Plugin {
	prof := profile.New(db)
	return []Plugin{
		prof,
		shopping.New(db, cat),
		coffee.New(db, prof.Service()),
	}
}

// Migrate runs AutoMigrate for every plugin's models.
func Migrate(db *gorm.DB, plugins []Plugin) error {
	for _, p := range plugins {
		models := p.Models()
		if len(models) == 0 {
			continue
		}
		if err := database.MigrateModels(db, models); err != nil {
			return fmt.Errorf("plugin %s migration failed: %w", p.ID(), err)
		}
		slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
	}
	return nil
}

// Tools returns a registry holding every plugin's tools.
func Tools(plugins []Plugin) *tools.Registry {
	reg := tools.NewRegistry()
	for _, p := range plugins {
		p.RegisterTools(reg)
	}
	return reg
}

// Bootstrap migrates the shared and plugin schemas and returns the plugins
// with their tool registry.
func Bootstrap(db *gorm.DB, cat *catalog.Catalog) ([]Plugin, *tools.Registry, error) {
	if err := database.MigrateShared(db); err != nil {
		return nil, nil, fmt.Errorf("shared migration failed: %w", err)
	}
	plugins := Default(db, cat)
	if err := Migrate(db, plugins); err != nil {
		return nil, nil, err
	}
	return plugins, Tools(plugins), nil
}
