package profile

import (
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Plugin struct {
	service *ProfileService
}

func New(db *gorm.DB) *Plugin {
	return &Plugin{service: NewProfileService(db)}
}

func (p *Plugin) ID() string { return "profile" }

// Models is empty: the attribute tables are shared models.
func (p *Plugin) Models() []interface{} { return nil }

// Service exposes the attribute store to other apps.
func (p *Plugin) Service() *ProfileService { return p.service }

func (p *Plugin) RegisterRoutes(router fiber.Router, cfg *config.Config) {
	h := NewProfileHandler(p.service)

	router.Get("/profile", h.GetProfile)
	router.Put("/profile/address", h.SetAddress)
	router.Put("/profile/payment", h.SetPayment)
	router.Put("/profile/preferences/:key", h.SetPreference)
}
