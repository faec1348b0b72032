package coffee

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/apps/profile"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	service *CoffeeService
}

func New(db *gorm.DB, profiles *profile.ProfileService) *Plugin {
	return &Plugin{service: NewCoffeeService(db, profiles)}
}

func (p *Plugin) ID() string { return "coffee" }

func (p *Plugin) Models() []interface{} { return nil }

func (p *Plugin) RegisterRoutes(router fiber.Router, cfg *config.Config) {
	h := NewCoffeeHandler(p.service)

	router.Get("/coffee/menu", h.GetMenu)
	router.Post("/coffee/orders", h.PlaceOrder)
}
